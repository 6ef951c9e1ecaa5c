package actor

import (
	"context"

	"mergeverse/internal/app/op"
	"mergeverse/internal/app/ports"
	"mergeverse/internal/domain/merge"
)

// Messenger delivers a notification to another player's actor by dispatching
// an internal apply-notification command through the registry. The target
// actor persists the notification before Send returns; there is no retry and
// no transaction spanning sender and receiver.
type Messenger struct {
	Registry *Registry
}

var _ ports.Messenger = Messenger{}

func (m Messenger) Send(ctx context.Context, targetPlayerID string, n merge.Notification) error {
	_, err := m.Registry.Dispatch(ctx, op.Envelope{
		PlayerID: targetPlayerID,
		Op:       op.Command{Type: op.TypeApplyNotification, Notification: &n},
	})
	return err
}
