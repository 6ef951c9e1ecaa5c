package actor

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"mergeverse/internal/app/op"
	"mergeverse/internal/app/ports"
	"mergeverse/internal/domain/merge"
)

var ErrActorStopped = errors.New("actor stopped")

const inboxDepth = 32

// Registry creates and addresses actors by player id. Actors are created on
// first use and live until Close; their state lives in the durable store, so
// an evicted or restarted process just rehydrates on the next command.
type Registry struct {
	resolver  *op.Resolver
	store     ports.ActorStateStore
	metrics   ports.OpMetrics
	messenger ports.Messenger
	logger    *log.Logger
	now       func() time.Time
	seed      func(playerID string) int64

	mu     sync.Mutex
	actors map[string]*Actor
	closed bool
}

type RegistryOptions struct {
	Resolver *op.Resolver
	Store    ports.ActorStateStore
	Metrics  ports.OpMetrics
	Logger   *log.Logger
	Now      func() time.Time
	// Seed derives the per-actor rng seed; tests pin it for determinism.
	Seed func(playerID string) int64
	// Messenger overrides the default registry-backed delivery, for tests.
	Messenger ports.Messenger
}

func NewRegistry(opts RegistryOptions) *Registry {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Seed == nil {
		opts.Seed = func(string) int64 { return time.Now().UnixNano() }
	}
	r := &Registry{
		resolver: opts.Resolver,
		store:    opts.Store,
		metrics:  opts.Metrics,
		logger:   opts.Logger,
		now:      opts.Now,
		seed:     opts.Seed,
		actors:   make(map[string]*Actor),
	}
	r.messenger = opts.Messenger
	if r.messenger == nil {
		r.messenger = Messenger{Registry: r}
	}
	return r
}

func (r *Registry) actor(playerID string) (*Actor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, ErrActorStopped
	}
	if a, ok := r.actors[playerID]; ok {
		return a, nil
	}
	a := &Actor{
		playerID: playerID,
		reg:      r,
		inbox:    make(chan request, inboxDepth),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
		rng:      rand.New(rand.NewSource(r.seed(playerID))),
	}
	r.actors[playerID] = a
	go a.run()
	return a, nil
}

// Dispatch routes one command envelope to the addressed actor and waits for
// the result.
func (r *Registry) Dispatch(ctx context.Context, env op.Envelope) (any, error) {
	a, err := r.actor(env.PlayerID)
	if err != nil {
		return nil, err
	}
	payload, err := a.do(ctx, func(ctx context.Context, a *Actor) (any, error) {
		return a.apply(ctx, env.Op)
	})
	r.record(string(env.Op.Type), err)
	return payload, err
}

func (r *Registry) record(opType string, err error) {
	if r.metrics == nil {
		return
	}
	switch {
	case err == nil:
		r.metrics.RecordSuccess(opType)
	case errors.Is(err, ports.ErrNotFound) || op.IsRejection(err):
		r.metrics.RecordRejected(opType)
	default:
		r.metrics.RecordFailure(opType)
	}
}

// Snapshot runs a state read on the actor and returns a copy of the
// aggregate, used by the reconciliation sweep.
func (r *Registry) Snapshot(ctx context.Context, playerID string) (merge.PlayerState, error) {
	a, err := r.actor(playerID)
	if err != nil {
		return merge.PlayerState{}, err
	}
	payload, err := a.do(ctx, func(ctx context.Context, a *Actor) (any, error) {
		return a.snapshot(ctx)
	})
	if err != nil {
		return merge.PlayerState{}, err
	}
	return payload.(merge.PlayerState), nil
}

// BindSession records the session identity in actor memory and in the
// durable store.
func (r *Registry) BindSession(ctx context.Context, playerID, identity string) error {
	a, err := r.actor(playerID)
	if err != nil {
		return err
	}
	_, err = a.do(ctx, func(ctx context.Context, a *Actor) (any, error) {
		return nil, a.bindSession(ctx, identity)
	})
	return err
}

// SessionIdentity returns the bound identity, rehydrated from the durable
// store if actor memory was cleared by a restart.
func (r *Registry) SessionIdentity(ctx context.Context, playerID string) (string, bool, error) {
	a, err := r.actor(playerID)
	if err != nil {
		return "", false, err
	}
	payload, err := a.do(ctx, func(ctx context.Context, a *Actor) (any, error) {
		identity, ok, err := a.sessionIdentity(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return "", nil
		}
		return identity, nil
	})
	if err != nil {
		return "", false, err
	}
	identity := payload.(string)
	return identity, identity != "", nil
}

func (r *Registry) ClearSession(ctx context.Context, playerID string) error {
	a, err := r.actor(playerID)
	if err != nil {
		return err
	}
	_, err = a.do(ctx, func(ctx context.Context, a *Actor) (any, error) {
		return nil, a.clearSession(ctx)
	})
	return err
}

// deliver fans the outbox out off the sender's goroutine so two actors
// messaging each other can never block one another. Delivery is at-most-once;
// failures are logged and the sender's command stays committed.
func (r *Registry) deliver(outbox []op.Outbound) {
	msgs := make([]op.Outbound, len(outbox))
	copy(msgs, outbox)
	go func() {
		ctx := context.Background()
		for _, m := range msgs {
			if err := r.messenger.Send(ctx, m.TargetPlayerID, m.Notification); err != nil {
				r.logger.Printf("notification delivery to %s failed: %v", m.TargetPlayerID, err)
			}
		}
	}()
}

// Close stops all actors. In-flight commands finish; new dispatches fail
// with ErrActorStopped.
func (r *Registry) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	actors := make([]*Actor, 0, len(r.actors))
	for _, a := range r.actors {
		actors = append(actors, a)
	}
	r.mu.Unlock()

	for _, a := range actors {
		close(a.stop)
		<-a.done
	}
}
