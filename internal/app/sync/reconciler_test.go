package sync

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"testing"

	"mergeverse/internal/app/ports"
	"mergeverse/internal/domain/merge"
)

type recordingRepo struct {
	mu          sync.Mutex
	profiles    map[string]merge.Profile
	gameStates  map[string]merge.GameState
	progresses  map[string]merge.Progress
	socials     map[string]merge.Social
	leagues     map[string]merge.League
	failTable   string
	failErr     error
	listIDs     []string
	listErr     error
}

var _ ports.PlayerRecordRepository = (*recordingRepo)(nil)

func newRecordingRepo() *recordingRepo {
	return &recordingRepo{
		profiles:   map[string]merge.Profile{},
		gameStates: map[string]merge.GameState{},
		progresses: map[string]merge.Progress{},
		socials:    map[string]merge.Social{},
		leagues:    map[string]merge.League{},
	}
}

func (r *recordingRepo) fail(table string) error {
	if r.failTable == table {
		return r.failErr
	}
	return nil
}

func (r *recordingRepo) UpsertProfile(_ context.Context, playerID string, p merge.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("profile"); err != nil {
		return err
	}
	r.profiles[playerID] = p
	return nil
}

func (r *recordingRepo) UpsertGameState(_ context.Context, playerID string, g merge.GameState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("game_state"); err != nil {
		return err
	}
	r.gameStates[playerID] = g
	return nil
}

func (r *recordingRepo) UpsertProgress(_ context.Context, playerID string, p merge.Progress) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("progress"); err != nil {
		return err
	}
	r.progresses[playerID] = p
	return nil
}

func (r *recordingRepo) UpsertSocial(_ context.Context, playerID string, s merge.Social) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("social"); err != nil {
		return err
	}
	r.socials[playerID] = s
	return nil
}

func (r *recordingRepo) UpsertLeague(_ context.Context, playerID string, l merge.League) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.fail("league"); err != nil {
		return err
	}
	r.leagues[playerID] = l
	return nil
}

func (r *recordingRepo) IsRegistered(context.Context, string) (bool, error) { return false, nil }

func (r *recordingRepo) GetCredentials(context.Context, string) (ports.PlayerCredentials, error) {
	return ports.PlayerCredentials{}, ports.ErrNotFound
}

func (r *recordingRepo) FindPlayerByReferralCode(context.Context, string) (string, error) {
	return "", ports.ErrNotFound
}

func (r *recordingRepo) ListPlayerIDs(context.Context) ([]string, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.listIDs, nil
}

func testState(playerID string) merge.PlayerState {
	var s merge.PlayerState
	s.Profile.PlayerID = playerID
	s.Game.KingLevel = 4
	s.Progress.Balance = 120
	s.Social.ReferralCode = "AAAA1111"
	s.League = merge.LeagueGold
	return s
}

func TestReconcile_WritesEverySubTable(t *testing.T) {
	repo := newRecordingRepo()
	r := &Reconciler{Records: repo}

	if err := r.Reconcile(context.Background(), testState("p1")); err != nil {
		t.Fatalf("reconcile: %v", err)
	}

	if repo.profiles["p1"].PlayerID != "p1" {
		t.Fatalf("profile not written")
	}
	if repo.gameStates["p1"].KingLevel != 4 {
		t.Fatalf("game state not written")
	}
	if repo.progresses["p1"].Balance != 120 {
		t.Fatalf("progress not written")
	}
	if repo.socials["p1"].ReferralCode != "AAAA1111" {
		t.Fatalf("social not written")
	}
	if repo.leagues["p1"] != merge.LeagueGold {
		t.Fatalf("league not written")
	}
}

func TestReconcile_PartialFailureStillWritesTheRest(t *testing.T) {
	repo := newRecordingRepo()
	repo.failTable = "progress"
	repo.failErr = errors.New("deadlock detected")
	r := &Reconciler{Records: repo, Logger: log.New(io.Discard, "", 0)}

	err := r.Reconcile(context.Background(), testState("p1"))
	if err == nil {
		t.Fatalf("expected the progress failure to surface")
	}
	if !strings.Contains(err.Error(), "progress") {
		t.Fatalf("error does not name the failed table: %v", err)
	}
	if _, ok := repo.progresses["p1"]; ok {
		t.Fatalf("failed table was written")
	}
	// The remaining tables landed regardless.
	if _, ok := repo.profiles["p1"]; !ok {
		t.Fatalf("profile skipped after the failure")
	}
	if _, ok := repo.leagues["p1"]; !ok {
		t.Fatalf("league skipped after the failure")
	}
}
