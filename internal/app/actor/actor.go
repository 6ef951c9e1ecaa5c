package actor

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"

	"mergeverse/internal/app/op"
	"mergeverse/internal/domain/merge"
)

// Actor owns one player's aggregate. All access goes through its mailbox, so
// every command and every session-identity change runs to completion before
// the next one starts. That queue is the only per-player consistency
// mechanism in the system.
type Actor struct {
	playerID string
	reg      *Registry
	inbox    chan request
	stop     chan struct{}
	done     chan struct{}

	// Owned by the run goroutine; never touched from outside it.
	state         *merge.PlayerState
	loaded        bool
	sessionID     string
	sessionLoaded bool
	rng           *rand.Rand
}

type request struct {
	ctx  context.Context
	run  func(ctx context.Context, a *Actor) (any, error)
	resp chan response
}

type response struct {
	payload any
	err     error
}

func (a *Actor) run() {
	defer close(a.done)
	for {
		select {
		case req := <-a.inbox:
			payload, err := req.run(req.ctx, a)
			req.resp <- response{payload: payload, err: err}
		case <-a.stop:
			return
		}
	}
}

// do runs fn inside the actor goroutine and waits for its result. A caller
// going away mid-command does not cancel the command; it always runs to
// completion once started.
func (a *Actor) do(ctx context.Context, fn func(ctx context.Context, a *Actor) (any, error)) (any, error) {
	req := request{ctx: ctx, run: fn, resp: make(chan response, 1)}
	select {
	case a.inbox <- req:
	case <-a.done:
		return nil, ErrActorStopped
	}
	select {
	case r := <-req.resp:
		return r.payload, r.err
	case <-a.done:
		// The result may have landed just before the stop; prefer it.
		select {
		case r := <-req.resp:
			return r.payload, r.err
		default:
			return nil, ErrActorStopped
		}
	}
}

// ensureState lazily loads the aggregate from the durable store, building the
// default aggregate the first time this player is ever addressed.
func (a *Actor) ensureState(ctx context.Context) error {
	if a.loaded {
		return nil
	}
	data, ok, err := a.reg.store.GetState(ctx, a.playerID)
	if err != nil {
		return fmt.Errorf("load state %s: %w", a.playerID, err)
	}
	if !ok {
		s := merge.NewPlayerState(a.playerID, a.reg.now(), a.rng)
		a.state = &s
		a.loaded = true
		return nil
	}
	var s merge.PlayerState
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode state %s: %w", a.playerID, err)
	}
	a.state = &s
	a.loaded = true
	return nil
}

func (a *Actor) persist(ctx context.Context) error {
	data, err := json.Marshal(a.state)
	if err != nil {
		return fmt.Errorf("encode state %s: %w", a.playerID, err)
	}
	if err := a.reg.store.PutState(ctx, a.playerID, data); err != nil {
		return fmt.Errorf("persist state %s: %w", a.playerID, err)
	}
	return nil
}

// apply is the full command path: load, resolve, persist on mutation, then
// hand any queued cross-actor notifications to the messenger. The in-memory
// state may already have advanced when persistence fails; the command still
// fails as a whole so the caller never sees a success that was not stored.
func (a *Actor) apply(ctx context.Context, cmd op.Command) (any, error) {
	if err := a.ensureState(ctx); err != nil {
		return nil, err
	}
	result, err := a.reg.resolver.Apply(ctx, a.state, cmd, a.rng)
	if err != nil {
		return nil, err
	}
	if result.Mutated {
		if err := a.persist(ctx); err != nil {
			a.loaded = false
			return nil, err
		}
	}
	if len(result.Outbox) > 0 {
		a.reg.deliver(result.Outbox)
	}
	return result.Payload, nil
}

// snapshot applies a state read and returns a copy of the aggregate.
func (a *Actor) snapshot(ctx context.Context) (merge.PlayerState, error) {
	if _, err := a.apply(ctx, op.Command{Type: op.TypeGetState}); err != nil {
		return merge.PlayerState{}, err
	}
	return *a.state, nil
}

func (a *Actor) bindSession(ctx context.Context, identity string) error {
	if err := a.reg.store.PutSessionIdentity(ctx, a.playerID, identity); err != nil {
		return fmt.Errorf("bind session %s: %w", a.playerID, err)
	}
	a.sessionID = identity
	a.sessionLoaded = true
	return nil
}

// sessionIdentity returns the bound identity, rehydrating from the durable
// store when actor memory was lost to a restart mid-session.
func (a *Actor) sessionIdentity(ctx context.Context) (string, bool, error) {
	if a.sessionLoaded {
		return a.sessionID, a.sessionID != "", nil
	}
	identity, ok, err := a.reg.store.GetSessionIdentity(ctx, a.playerID)
	if err != nil {
		return "", false, fmt.Errorf("load session %s: %w", a.playerID, err)
	}
	a.sessionLoaded = true
	if ok {
		a.sessionID = identity
	}
	return a.sessionID, ok, nil
}

func (a *Actor) clearSession(ctx context.Context) error {
	if err := a.reg.store.ClearSessionIdentity(ctx, a.playerID); err != nil {
		return fmt.Errorf("clear session %s: %w", a.playerID, err)
	}
	a.sessionID = ""
	a.sessionLoaded = true
	return nil
}
