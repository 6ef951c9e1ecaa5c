package op

import (
	"context"
	"fmt"
)

func applySync(ctx context.Context, r *Resolver, oc *opContext) error {
	if err := r.Reconciler.Reconcile(ctx, *oc.State); err != nil {
		return fmt.Errorf("reconcile %s: %w", oc.State.Profile.PlayerID, err)
	}
	oc.Payload = syncResponse{Status: "synced"}
	return nil
}
