package sync

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"mergeverse/internal/app/ports"
	"mergeverse/internal/domain/merge"
)

// Snapshotter hands out a point-in-time copy of one player's aggregate. The
// actor registry satisfies it.
type Snapshotter interface {
	Snapshot(ctx context.Context, playerID string) (merge.PlayerState, error)
}

// Sweeper periodically reconciles every known player. Each player's leg is
// independent: one failing player is logged and skipped, never aborting the
// sweep.
type Sweeper struct {
	Records     ports.PlayerRecordRepository
	Actors      Snapshotter
	Reconciler  *Reconciler
	Interval    time.Duration
	Concurrency int
	Logger      *log.Logger
}

const defaultConcurrency = 8

// Run sweeps on the configured interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.SweepOnce(ctx)
		}
	}
}

// SweepOnce reconciles all players known to the relational store.
func (s *Sweeper) SweepOnce(ctx context.Context) {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}

	ids, err := s.Records.ListPlayerIDs(ctx)
	if err != nil {
		logger.Printf("sweep: listing players failed: %v", err)
		return
	}

	limit := s.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, id := range ids {
		id := id
		g.Go(func() error {
			state, err := s.Actors.Snapshot(ctx, id)
			if err != nil {
				logger.Printf("sweep: snapshot of %s failed: %v", id, err)
				return nil
			}
			if err := s.Reconciler.Reconcile(ctx, state); err != nil {
				logger.Printf("sweep: reconcile of %s failed: %v", id, err)
			}
			return nil
		})
	}
	_ = g.Wait()
}
