package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "actors.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStateRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := s.GetState(ctx, "p1"); err != nil || ok {
		t.Fatalf("fresh store: ok=%v err=%v", ok, err)
	}

	if err := s.PutState(ctx, "p1", []byte(`{"balance":95}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	data, ok, err := s.GetState(ctx, "p1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if string(data) != `{"balance":95}` {
		t.Fatalf("data = %s", data)
	}

	// Put overwrites in place.
	if err := s.PutState(ctx, "p1", []byte(`{"balance":100}`)); err != nil {
		t.Fatalf("second put: %v", err)
	}
	data, _, _ = s.GetState(ctx, "p1")
	if string(data) != `{"balance":100}` {
		t.Fatalf("data after overwrite = %s", data)
	}
}

func TestStateIsolationBetweenPlayers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.PutState(ctx, "p1", []byte("a")); err != nil {
		t.Fatalf("put p1: %v", err)
	}
	if _, ok, _ := s.GetState(ctx, "p2"); ok {
		t.Fatalf("p2 sees p1's state")
	}
}

func TestSessionIdentityRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, ok, err := s.GetSessionIdentity(ctx, "p1"); err != nil || ok {
		t.Fatalf("fresh store: ok=%v err=%v", ok, err)
	}
	if err := s.PutSessionIdentity(ctx, "p1", "p1"); err != nil {
		t.Fatalf("put: %v", err)
	}
	identity, ok, err := s.GetSessionIdentity(ctx, "p1")
	if err != nil || !ok || identity != "p1" {
		t.Fatalf("get: identity=%q ok=%v err=%v", identity, ok, err)
	}

	if err := s.ClearSessionIdentity(ctx, "p1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := s.GetSessionIdentity(ctx, "p1"); ok {
		t.Fatalf("identity survived the clear")
	}

	// Clearing an unbound player is a no-op, not an error.
	if err := s.ClearSessionIdentity(ctx, "p9"); err != nil {
		t.Fatalf("clear unbound: %v", err)
	}
}

func TestSessionDoesNotCollideWithState(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.PutState(ctx, "p1", []byte("state")); err != nil {
		t.Fatalf("put state: %v", err)
	}
	if err := s.PutSessionIdentity(ctx, "p1", "p1"); err != nil {
		t.Fatalf("put session: %v", err)
	}

	data, ok, _ := s.GetState(ctx, "p1")
	if !ok || string(data) != "state" {
		t.Fatalf("state clobbered by the session key: %q", data)
	}
}
