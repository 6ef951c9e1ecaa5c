package sync

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"mergeverse/internal/domain/merge"
)

type fakeSnapshotter struct {
	states  map[string]merge.PlayerState
	failFor string
}

func (f fakeSnapshotter) Snapshot(_ context.Context, playerID string) (merge.PlayerState, error) {
	if playerID == f.failFor {
		return merge.PlayerState{}, errors.New("actor stopped")
	}
	return f.states[playerID], nil
}

func TestSweepOnce_ReconcilesEveryListedPlayer(t *testing.T) {
	repo := newRecordingRepo()
	repo.listIDs = []string{"p1", "p2", "p3"}
	snaps := fakeSnapshotter{states: map[string]merge.PlayerState{
		"p1": testState("p1"),
		"p2": testState("p2"),
		"p3": testState("p3"),
	}}
	s := &Sweeper{
		Records:    repo,
		Actors:     snaps,
		Reconciler: &Reconciler{Records: repo},
		Logger:     log.New(io.Discard, "", 0),
	}

	s.SweepOnce(context.Background())

	for _, id := range repo.listIDs {
		if repo.profiles[id].PlayerID != id {
			t.Fatalf("player %s not reconciled", id)
		}
	}
}

func TestSweepOnce_OneFailingPlayerDoesNotAbortTheSweep(t *testing.T) {
	repo := newRecordingRepo()
	repo.listIDs = []string{"p1", "p2", "p3"}
	snaps := fakeSnapshotter{
		states: map[string]merge.PlayerState{
			"p1": testState("p1"),
			"p3": testState("p3"),
		},
		failFor: "p2",
	}
	s := &Sweeper{
		Records:    repo,
		Actors:     snaps,
		Reconciler: &Reconciler{Records: repo},
		Logger:     log.New(io.Discard, "", 0),
	}

	s.SweepOnce(context.Background())

	if _, ok := repo.profiles["p2"]; ok {
		t.Fatalf("failed snapshot still reconciled")
	}
	if _, ok := repo.profiles["p1"]; !ok {
		t.Fatalf("p1 skipped")
	}
	if _, ok := repo.profiles["p3"]; !ok {
		t.Fatalf("p3 skipped")
	}
}

func TestSweepOnce_ListFailureIsANoOp(t *testing.T) {
	repo := newRecordingRepo()
	repo.listErr = errors.New("db down")
	s := &Sweeper{
		Records:    repo,
		Actors:     fakeSnapshotter{},
		Reconciler: &Reconciler{Records: repo},
		Logger:     log.New(io.Discard, "", 0),
	}

	s.SweepOnce(context.Background())

	if len(repo.profiles) != 0 {
		t.Fatalf("sweep wrote records without a player list")
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	repo := newRecordingRepo()
	s := &Sweeper{
		Records:    repo,
		Actors:     fakeSnapshotter{},
		Reconciler: &Reconciler{Records: repo},
		Interval:   time.Millisecond,
		Logger:     log.New(io.Discard, "", 0),
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	time.Sleep(5 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("sweeper did not stop on cancel")
	}
}
