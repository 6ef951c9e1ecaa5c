package op

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/mail"

	"mergeverse/internal/domain/merge"
)

// HashPassword is the credential hash shared by registration and the
// header-auth verifier.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func validateRegister(_ *merge.PlayerState, cmd Command) error {
	if cmd.Password == "" {
		return ErrEmptyPassword
	}
	return nil
}

func applyRegister(ctx context.Context, r *Resolver, oc *opContext) error {
	s := oc.State
	hash := HashPassword(oc.Cmd.Password)
	s.Profile.PasswordHash = &hash
	if oc.Cmd.UserName != nil {
		s.Profile.UserName = oc.Cmd.UserName
	}

	// The relational rows are written inside one transaction so a registered
	// player is either fully visible to cross-player queries or not at all.
	err := r.TxManager.RunInTx(ctx, func(ctx context.Context) error {
		if err := r.Records.UpsertProfile(ctx, s.Profile.PlayerID, s.Profile); err != nil {
			return err
		}
		if err := r.Records.UpsertGameState(ctx, s.Profile.PlayerID, s.Game); err != nil {
			return err
		}
		if err := r.Records.UpsertProgress(ctx, s.Profile.PlayerID, s.Progress); err != nil {
			return err
		}
		if err := r.Records.UpsertSocial(ctx, s.Profile.PlayerID, s.Social); err != nil {
			return err
		}
		return r.Records.UpsertLeague(ctx, s.Profile.PlayerID, s.League)
	})
	if err != nil {
		return fmt.Errorf("register %s: %w", s.Profile.PlayerID, err)
	}

	oc.Payload = stateResponse{State: *s}
	return nil
}

func validateUpdateEmail(_ *merge.PlayerState, cmd Command) error {
	if _, err := mail.ParseAddress(cmd.Email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

func applyUpdateEmail(_ context.Context, _ *Resolver, oc *opContext) error {
	email := oc.Cmd.Email
	oc.State.Profile.Email = &email
	oc.Payload = profileUpdateResponse{Status: "ok", Email: email}
	return nil
}

func applyUpdateUserName(_ context.Context, _ *Resolver, oc *opContext) error {
	oc.State.Profile.UserName = oc.Cmd.UserName
	oc.Payload = profileUpdateResponse{Status: "ok", UserName: oc.State.Profile.UserName}
	return nil
}

func validateUpdatePassword(_ *merge.PlayerState, cmd Command) error {
	if cmd.Password == "" {
		return ErrEmptyPassword
	}
	return nil
}

func applyUpdatePassword(_ context.Context, _ *Resolver, oc *opContext) error {
	hash := HashPassword(oc.Cmd.Password)
	oc.State.Profile.PasswordHash = &hash
	oc.Payload = profileUpdateResponse{Status: "ok"}
	return nil
}

func applyUpdateAvatar(_ context.Context, _ *Resolver, oc *opContext) error {
	oc.State.Profile.Avatar = oc.Cmd.Avatar
	oc.Payload = profileUpdateResponse{Status: "ok", Avatar: oc.State.Profile.Avatar}
	return nil
}

func applyGetState(_ context.Context, _ *Resolver, oc *opContext) error {
	s := oc.State
	reward := s.ApplyLoginStreak(oc.Now, oc.Rng)
	if passive := s.ApplyPassiveGrant(oc.Now); passive != nil {
		if reward == nil {
			reward = passive
		} else {
			for k, v := range passive.Items {
				reward.Items[k] = v
			}
		}
	}
	oc.Payload = stateResponse{State: *s, Reward: reward}
	return nil
}

func applyPing(_ context.Context, _ *Resolver, oc *opContext) error {
	oc.Payload = syncResponse{Status: "pong"}
	return nil
}
