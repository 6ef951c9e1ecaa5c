package sync

import (
	"context"
	"errors"
	"fmt"
	"log"

	"mergeverse/internal/app/ports"
	"mergeverse/internal/domain/merge"
)

// Reconciler copies one player's aggregate into the relational store, one
// upsert per sub-table. The writes are independent: a failed sub-table is
// logged and reported, the others still land, and a later pass self-heals
// because the actor's own store stays authoritative.
type Reconciler struct {
	Records ports.PlayerRecordRepository
	Logger  *log.Logger
}

func (r *Reconciler) Reconcile(ctx context.Context, state merge.PlayerState) error {
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}
	playerID := state.Profile.PlayerID

	steps := []struct {
		table string
		write func(context.Context) error
	}{
		{"profile", func(ctx context.Context) error { return r.Records.UpsertProfile(ctx, playerID, state.Profile) }},
		{"game_state", func(ctx context.Context) error { return r.Records.UpsertGameState(ctx, playerID, state.Game) }},
		{"progress", func(ctx context.Context) error { return r.Records.UpsertProgress(ctx, playerID, state.Progress) }},
		{"social", func(ctx context.Context) error { return r.Records.UpsertSocial(ctx, playerID, state.Social) }},
		{"league", func(ctx context.Context) error { return r.Records.UpsertLeague(ctx, playerID, state.League) }},
	}

	var errs []error
	for _, step := range steps {
		if err := step.write(ctx); err != nil {
			logger.Printf("reconcile %s: %s upsert failed: %v", playerID, step.table, err)
			errs = append(errs, fmt.Errorf("%s: %w", step.table, err))
		}
	}
	return errors.Join(errs...)
}
