package op

import (
	"errors"
	"testing"

	"mergeverse/internal/app/ports"
	"mergeverse/internal/domain/merge"
)

func TestUseReferral_CreditsCallerAndQueuesNotification(t *testing.T) {
	kit := newResolverKit(t)
	kit.records.codeOwner = "p2"

	res := kit.apply(t, Command{Type: TypeUseReferral, Code: "FRIEND99"})

	if kit.state.Social.PlayersReferred != 1 {
		t.Fatalf("players referred = %d, want 1", kit.state.Social.PlayersReferred)
	}
	if len(res.Outbox) != 1 {
		t.Fatalf("outbox = %d messages, want 1", len(res.Outbox))
	}
	out := res.Outbox[0]
	if out.TargetPlayerID != "p2" {
		t.Fatalf("outbound target = %q, want p2", out.TargetPlayerID)
	}
	if out.Notification.Type != merge.NotificationReferral {
		t.Fatalf("outbound type = %q", out.Notification.Type)
	}
	if out.Notification.Metadata["referrer"] != "p1" {
		t.Fatalf("outbound metadata = %+v", out.Notification.Metadata)
	}
	payload := res.Payload.(referralResponse)
	if payload.Referrer != "p2" || payload.PlayersReferred != 1 {
		t.Fatalf("payload = %+v", payload)
	}
}

func TestUseReferral_Rejections(t *testing.T) {
	kit := newResolverKit(t)

	if err := kit.applyErr(t, Command{Type: TypeUseReferral}); !errors.Is(err, ErrInvalidReferral) {
		t.Fatalf("empty code: got %v", err)
	}
	if err := kit.applyErr(t, Command{Type: TypeUseReferral, Code: kit.state.Social.ReferralCode}); !errors.Is(err, ErrSelfReferral) {
		t.Fatalf("own code: got %v", err)
	}

	kit.records.codeErr = ports.ErrNotFound
	if err := kit.applyErr(t, Command{Type: TypeUseReferral, Code: "GHOST123"}); !errors.Is(err, ErrInvalidReferral) {
		t.Fatalf("unknown code: got %v", err)
	}

	// A code resolving to the caller through a lookup is still a self referral.
	kit.records.codeErr = nil
	kit.records.codeOwner = "p1"
	if err := kit.applyErr(t, Command{Type: TypeUseReferral, Code: "MYOWNALT"}); !errors.Is(err, ErrSelfReferral) {
		t.Fatalf("own code via lookup: got %v", err)
	}
	if kit.state.Social.PlayersReferred != 0 {
		t.Fatalf("rejected referrals must not credit the caller")
	}
}

func TestApplyNotification_ReferralCreditsRecipient(t *testing.T) {
	kit := newResolverKit(t)
	social := kit.state.Progress.SocialScore
	balance := kit.state.Progress.Balance

	res := kit.apply(t, Command{Type: TypeApplyNotification, Notification: &merge.Notification{
		ID:       "n-1",
		PlayerID: "p1",
		Type:     merge.NotificationReferral,
		Message:  "Your referral code was used!",
		Metadata: map[string]string{"referrer": "p9"},
	}})

	if kit.state.Progress.SocialScore != social+10 {
		t.Fatalf("social score = %d, want %d", kit.state.Progress.SocialScore, social+10)
	}
	if kit.state.Progress.Balance != balance+25 {
		t.Fatalf("balance = %d, want %d", kit.state.Progress.Balance, balance+25)
	}
	if kit.state.Social.PlayersReferred != 1 {
		t.Fatalf("players referred = %d, want 1", kit.state.Social.PlayersReferred)
	}
	if len(kit.state.Notifications) != 2 {
		t.Fatalf("notification not stored: %d", len(kit.state.Notifications))
	}
	if res.Payload.(notificationResponse).NotificationID != "n-1" {
		t.Fatalf("payload = %+v", res.Payload)
	}
}

func TestApplyNotification_PerformanceDeltas(t *testing.T) {
	kit := newResolverKit(t)
	kit.state.Progress.IQ = 5
	balance := kit.state.Progress.Balance

	kit.apply(t, Command{Type: TypeApplyNotification, Notification: &merge.Notification{
		ID:   "n-2",
		Type: merge.NotificationPerformance,
		Metadata: map[string]string{
			"balance": "12",
			"iq":      "-9",
		},
	}})

	if kit.state.Progress.Balance != balance+12 {
		t.Fatalf("balance = %d, want %d", kit.state.Progress.Balance, balance+12)
	}
	if kit.state.Progress.IQ != 0 {
		t.Fatalf("iq = %d, want clamped to 0", kit.state.Progress.IQ)
	}
}

func TestApplyNotification_RejectsMissingBody(t *testing.T) {
	kit := newResolverKit(t)
	if err := kit.applyErr(t, Command{Type: TypeApplyNotification}); !errors.Is(err, ErrMissingNotification) {
		t.Fatalf("expected ErrMissingNotification, got %v", err)
	}
}

func TestMarkNotificationRead(t *testing.T) {
	kit := newResolverKit(t)
	id := kit.state.Notifications[0].ID

	res := kit.apply(t, Command{Type: TypeMarkNotificationRead, NotificationID: id})

	if !kit.state.Notifications[0].Read {
		t.Fatalf("notification not marked read")
	}
	if res.Payload.(notificationResponse).NotificationID != id {
		t.Fatalf("payload = %+v", res.Payload)
	}

	if err := kit.applyErr(t, Command{Type: TypeMarkNotificationRead, NotificationID: "missing"}); !errors.Is(err, ErrUnknownNotification) {
		t.Fatalf("expected ErrUnknownNotification, got %v", err)
	}
}

func TestConsumeNotification_RemovesIt(t *testing.T) {
	kit := newResolverKit(t)
	id := kit.state.Notifications[0].ID

	res := kit.apply(t, Command{Type: TypeConsumeNotification, NotificationID: id})

	if len(kit.state.Notifications) != 0 {
		t.Fatalf("notification not removed: %+v", kit.state.Notifications)
	}
	if got := res.Payload.(notificationResponse).Notifications; len(got) != 0 {
		t.Fatalf("payload still lists %d notifications", len(got))
	}
}
