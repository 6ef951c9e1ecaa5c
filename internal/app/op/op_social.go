package op

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"mergeverse/internal/app/ports"
	"mergeverse/internal/domain/merge"
)

const (
	referralSocialBonus  = 10
	referralBalanceBonus = 25
)

func validateUseReferral(s *merge.PlayerState, cmd Command) error {
	if cmd.Code == "" {
		return ErrInvalidReferral
	}
	if cmd.Code == s.Social.ReferralCode {
		return ErrSelfReferral
	}
	return nil
}

func applyUseReferral(ctx context.Context, r *Resolver, oc *opContext) error {
	s := oc.State
	ownerID, err := r.Records.FindPlayerByReferralCode(ctx, oc.Cmd.Code)
	if errors.Is(err, ports.ErrNotFound) {
		return ErrInvalidReferral
	}
	if err != nil {
		return fmt.Errorf("referral lookup: %w", err)
	}
	if ownerID == s.Profile.PlayerID {
		return ErrSelfReferral
	}

	s.Social.PlayersReferred++
	oc.queue(ownerID, merge.Notification{
		ID:        uuid.NewString(),
		PlayerID:  ownerID,
		Type:      merge.NotificationReferral,
		Message:   "Your referral code was used!",
		Timestamp: oc.Now.Unix(),
		Metadata:  map[string]string{"referrer": s.Profile.PlayerID},
	})

	oc.Payload = referralResponse{
		Status:          "referral recorded",
		Referrer:        ownerID,
		PlayersReferred: s.Social.PlayersReferred,
	}
	return nil
}

func validateApplyNotification(_ *merge.PlayerState, cmd Command) error {
	if cmd.Notification == nil {
		return ErrMissingNotification
	}
	return nil
}

func applyApplyNotification(_ context.Context, _ *Resolver, oc *opContext) error {
	s := oc.State
	n := *oc.Cmd.Notification

	switch n.Type {
	case merge.NotificationReferral:
		s.Social.PlayersReferred++
		s.Progress.SocialScore += referralSocialBonus
		s.Progress.Balance += referralBalanceBonus
		s.RecalcProduct()
	case merge.NotificationPerformance:
		if d, ok := metadataDelta(n.Metadata, "balance"); ok {
			s.Progress.Balance += d
		}
		if d, ok := metadataDelta(n.Metadata, "iq"); ok {
			s.Progress.IQ += d
			if s.Progress.IQ < 0 {
				s.Progress.IQ = 0
			}
		}
		s.RecalcProduct()
	}

	s.AddNotification(n)
	oc.Payload = notificationResponse{
		Status:          "notification applied",
		NotificationID:  n.ID,
		PlayersReferred: s.Social.PlayersReferred,
	}
	return nil
}

func metadataDelta(metadata map[string]string, key string) (int, bool) {
	raw, ok := metadata[key]
	if !ok {
		return 0, false
	}
	d, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return d, true
}

func validateNotificationID(s *merge.PlayerState, cmd Command) error {
	for i := range s.Notifications {
		if s.Notifications[i].ID == cmd.NotificationID {
			return nil
		}
	}
	return ErrUnknownNotification
}

func applyMarkNotificationRead(_ context.Context, _ *Resolver, oc *opContext) error {
	s := oc.State
	for i := range s.Notifications {
		if s.Notifications[i].ID == oc.Cmd.NotificationID {
			s.Notifications[i].Read = true
			break
		}
	}
	oc.Payload = notificationResponse{
		Status:         "marked as read",
		NotificationID: oc.Cmd.NotificationID,
		Notifications:  s.Notifications,
	}
	return nil
}

func applyConsumeNotification(_ context.Context, _ *Resolver, oc *opContext) error {
	s := oc.State
	for i := range s.Notifications {
		if s.Notifications[i].ID == oc.Cmd.NotificationID {
			s.Notifications = append(s.Notifications[:i], s.Notifications[i+1:]...)
			break
		}
	}
	oc.Payload = notificationResponse{
		Status:         "consumed",
		NotificationID: oc.Cmd.NotificationID,
		Notifications:  s.Notifications,
	}
	return nil
}
