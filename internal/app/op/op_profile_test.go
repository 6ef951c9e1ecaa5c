package op

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRegister_PersistsAllRecordRows(t *testing.T) {
	kit := newResolverKit(t)

	res := kit.apply(t, Command{Type: TypeRegister, Password: "hunter2"})

	if kit.state.Profile.PasswordHash == nil || *kit.state.Profile.PasswordHash != HashPassword("hunter2") {
		t.Fatalf("password hash not stored")
	}
	r := kit.records
	if r.profiles != 1 || r.gameStates != 1 || r.progresses != 1 || r.socials != 1 || r.leagues != 1 {
		t.Fatalf("expected one upsert per record table, got %+v", r)
	}
	if _, ok := res.Payload.(stateResponse); !ok {
		t.Fatalf("expected a full state payload, got %T", res.Payload)
	}
}

func TestRegister_StoresOptionalUserName(t *testing.T) {
	kit := newResolverKit(t)
	name := "kingmaker"

	kit.apply(t, Command{Type: TypeRegister, Password: "pw", UserName: &name})

	if kit.state.Profile.UserName == nil || *kit.state.Profile.UserName != name {
		t.Fatalf("user name not stored: %+v", kit.state.Profile)
	}
}

func TestRegister_RejectsEmptyPassword(t *testing.T) {
	kit := newResolverKit(t)
	if err := kit.applyErr(t, Command{Type: TypeRegister}); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestRegister_FailsWhenTheTransactionFails(t *testing.T) {
	kit := newResolverKit(t)
	kit.resolver.TxManager = stubTxManager{err: errors.New("db down")}

	_, err := kit.resolver.Apply(context.Background(), &kit.state, Command{Type: TypeRegister, Password: "pw"}, kit.rng)
	if err == nil {
		t.Fatalf("expected the transaction error to surface")
	}
}

func TestUpdateEmail_ValidatesAddress(t *testing.T) {
	kit := newResolverKit(t)

	if err := kit.applyErr(t, Command{Type: TypeUpdateEmail, Email: "not-an-email"}); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("expected ErrInvalidEmail, got %v", err)
	}

	res := kit.apply(t, Command{Type: TypeUpdateEmail, Email: "king@example.com"})
	if kit.state.Profile.Email == nil || *kit.state.Profile.Email != "king@example.com" {
		t.Fatalf("email not stored")
	}
	if res.Payload.(profileUpdateResponse).Email != "king@example.com" {
		t.Fatalf("payload email mismatch")
	}
}

func TestUpdatePasswordAndAvatar(t *testing.T) {
	kit := newResolverKit(t)

	kit.apply(t, Command{Type: TypeUpdatePassword, Password: "next"})
	if *kit.state.Profile.PasswordHash != HashPassword("next") {
		t.Fatalf("password hash not rotated")
	}

	kit.apply(t, Command{Type: TypeUpdateAvatar, Avatar: 4})
	if kit.state.Profile.Avatar != 4 {
		t.Fatalf("avatar = %d, want 4", kit.state.Profile.Avatar)
	}
}

func TestGetState_GrantsTimeGatedRewards(t *testing.T) {
	kit := newResolverKit(t)
	kit.resolver.Now = func() time.Time { return fixedNow.Add(30 * time.Hour) }
	balance := kit.state.Progress.Balance
	inventory := kit.state.Game.Inventory

	res := kit.apply(t, Command{Type: TypeGetState})

	payload := res.Payload.(stateResponse)
	if payload.Reward == nil || !payload.Reward.Granted {
		t.Fatalf("expected a reward after a day away, got %+v", payload.Reward)
	}
	if kit.state.Progress.Streak != 1 {
		t.Fatalf("streak = %d, want 1", kit.state.Progress.Streak)
	}
	if kit.state.Progress.Balance != balance+20 {
		t.Fatalf("balance = %d, want %d", kit.state.Progress.Balance, balance+20)
	}
	// The passive hourly grant fires in the same read.
	if kit.state.Game.Inventory != inventory+3 {
		t.Fatalf("inventory = %d, want %d", kit.state.Game.Inventory, inventory+3)
	}
	if payload.Reward.Items["inventory"] != "3" {
		t.Fatalf("merged reward missing the passive grant: %+v", payload.Reward.Items)
	}
	if !res.Mutated {
		t.Fatalf("a rewarded read must persist")
	}
}

func TestGetState_NoRewardWithinTheSameDay(t *testing.T) {
	kit := newResolverKit(t)
	kit.resolver.Now = func() time.Time { return fixedNow.Add(10 * time.Minute) }

	res := kit.apply(t, Command{Type: TypeGetState})

	if res.Payload.(stateResponse).Reward != nil {
		t.Fatalf("unexpected reward on an immediate re-read")
	}
}

func TestPing(t *testing.T) {
	kit := newResolverKit(t)
	res := kit.apply(t, Command{Type: TypePing})
	if res.Payload.(syncResponse).Status != "pong" {
		t.Fatalf("ping payload = %+v", res.Payload)
	}
	if res.Mutated {
		t.Fatalf("ping must not persist")
	}
}

func TestHashPassword_Deterministic(t *testing.T) {
	if HashPassword("a") != HashPassword("a") {
		t.Fatalf("hash is not deterministic")
	}
	if HashPassword("a") == HashPassword("b") {
		t.Fatalf("distinct passwords collided")
	}
	if len(HashPassword("a")) != 64 {
		t.Fatalf("expected a hex sha256 digest")
	}
}
