package op

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"mergeverse/internal/app/ports"
	"mergeverse/internal/domain/merge"
)

var (
	ErrUnknownOp           = errors.New("unknown op")
	ErrInvalidSlot         = errors.New("slot index out of range")
	ErrSelfMerge           = errors.New("cannot merge a slot with itself")
	ErrEmptyInventory      = errors.New("no creatures in inventory")
	ErrGridFull            = errors.New("grid is full")
	ErrKingProtected       = errors.New("cannot delete the king creature")
	ErrInvalidPowerUp      = errors.New("invalid power-up index")
	ErrInvalidEmail        = errors.New("invalid email address")
	ErrEmptyPassword       = errors.New("password must not be empty")
	ErrDailyTooSoon        = errors.New("daily tasks were generated too recently")
	ErrUnknownTask         = errors.New("unknown task id")
	ErrTaskCompleted       = errors.New("task already completed")
	ErrRewardLocked        = errors.New("daily reward tier not reached")
	ErrInvalidReferral     = errors.New("invalid referral code")
	ErrSelfReferral        = errors.New("cannot use your own referral code")
	ErrUnknownNotification = errors.New("notification not found")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrMissingNotification = errors.New("missing notification body")
)

var rejections = []error{
	ErrUnknownOp, ErrInvalidSlot, ErrSelfMerge, ErrEmptyInventory, ErrGridFull,
	ErrKingProtected, ErrInvalidPowerUp, ErrInvalidEmail, ErrEmptyPassword,
	ErrDailyTooSoon, ErrUnknownTask, ErrTaskCompleted, ErrRewardLocked,
	ErrInvalidReferral, ErrSelfReferral, ErrUnknownNotification,
	ErrInsufficientBalance, ErrMissingNotification,
}

// IsRejection reports whether err is a validation or precondition failure,
// as opposed to a collaborator or storage failure.
func IsRejection(err error) bool {
	for _, r := range rejections {
		if errors.Is(err, r) {
			return true
		}
	}
	return false
}

// Reconciler copies one aggregate into the relational store. Declared here so
// the resolver does not depend on the sync package.
type Reconciler interface {
	Reconcile(ctx context.Context, state merge.PlayerState) error
}

// Resolver applies commands to a player aggregate. It holds every external
// collaborator a command may need; per-actor inputs (the state, the rng) come
// in through Apply so one resolver serves all actors.
type Resolver struct {
	Records    ports.PlayerRecordRepository
	Tasks      ports.TaskContentProvider
	Ledger     ports.Ledger
	Links      ports.LinkProvider
	Reconciler Reconciler
	TxManager  ports.TxManager
	Now        func() time.Time
}

// opContext is the per-command working set shared by a handler's validate and
// apply steps.
type opContext struct {
	State   *merge.PlayerState
	Cmd     Command
	Rng     *rand.Rand
	Now     time.Time
	Payload any
	Outbox  []Outbound
}

func (oc *opContext) queue(target string, n merge.Notification) {
	oc.Outbox = append(oc.Outbox, Outbound{TargetPlayerID: target, Notification: n})
}

type opSpec struct {
	Type     Type
	Mutating bool
	Validate func(*merge.PlayerState, Command) error
	Apply    func(context.Context, *Resolver, *opContext) error
}

func registry() map[Type]opSpec {
	specs := []opSpec{
		{Type: TypeMerge, Mutating: true, Validate: validateMerge, Apply: applyMerge},
		{Type: TypeSpawnInventory, Mutating: true, Apply: applySpawnInventory},
		{Type: TypePlaceFromInventory, Mutating: true, Validate: validatePlaceFromInventory, Apply: applyPlaceFromInventory},
		{Type: TypeDeleteSlot, Mutating: true, Validate: validateDeleteSlot, Apply: applyDeleteSlot},
		{Type: TypeSwapSlots, Mutating: true, Validate: validateSwapSlots, Apply: applySwapSlots},
		{Type: TypeUsePowerUp, Mutating: true, Validate: validateUsePowerUp, Apply: applyUsePowerUp},

		{Type: TypeRegister, Mutating: true, Validate: validateRegister, Apply: applyRegister},
		{Type: TypeUpdateEmail, Mutating: true, Validate: validateUpdateEmail, Apply: applyUpdateEmail},
		{Type: TypeUpdateUserName, Mutating: true, Apply: applyUpdateUserName},
		{Type: TypeUpdatePassword, Mutating: true, Validate: validateUpdatePassword, Apply: applyUpdatePassword},
		{Type: TypeUpdateAvatar, Mutating: true, Apply: applyUpdateAvatar},
		{Type: TypeGetState, Mutating: true, Apply: applyGetState},
		{Type: TypePing, Apply: applyPing},

		{Type: TypeGenerateDaily, Mutating: true, Apply: applyGenerateDaily},
		{Type: TypeCheckDaily, Mutating: true, Apply: applyCheckDaily},
		{Type: TypeSubmitMcq, Mutating: true, Validate: validateSubmitMcq, Apply: applySubmitMcq},
		{Type: TypeSubmitText, Mutating: true, Validate: validateSubmitText, Apply: applySubmitText},
		{Type: TypeClaimDailyReward, Mutating: true, Validate: validateClaimDailyReward, Apply: applyClaimDailyReward},

		{Type: TypeUseReferral, Mutating: true, Validate: validateUseReferral, Apply: applyUseReferral},
		{Type: TypeApplyNotification, Mutating: true, Validate: validateApplyNotification, Apply: applyApplyNotification},
		{Type: TypeMarkNotificationRead, Mutating: true, Validate: validateNotificationID, Apply: applyMarkNotificationRead},
		{Type: TypeConsumeNotification, Mutating: true, Validate: validateNotificationID, Apply: applyConsumeNotification},

		{Type: TypeSync, Apply: applySync},
		{Type: TypeQuoteExchange, Validate: validateQuoteExchange, Apply: applyQuoteExchange},
		{Type: TypeExchange, Mutating: true, Validate: validateExchange, Apply: applyExchange},
	}
	out := make(map[Type]opSpec, len(specs))
	for _, s := range specs {
		out[s.Type] = s
	}
	return out
}

var opRegistry = registry()

// IsKnown reports whether the command type is registered.
func IsKnown(t Type) bool {
	_, ok := opRegistry[t]
	return ok
}

// IsInternal reports whether the command type may only be generated inside
// the system, never accepted from a client.
func IsInternal(t Type) bool {
	return t == TypeApplyNotification
}

// Apply runs one command against the aggregate: validate (no mutation on
// error), reduce, project the response. The caller owns persistence and
// outbox dispatch; Apply never touches the actor's durable store.
func (r *Resolver) Apply(ctx context.Context, state *merge.PlayerState, cmd Command, rng *rand.Rand) (Result, error) {
	spec, ok := opRegistry[cmd.Type]
	if !ok {
		return Result{}, ErrUnknownOp
	}
	if spec.Validate != nil {
		if err := spec.Validate(state, cmd); err != nil {
			return Result{}, err
		}
	}

	nowFn := r.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	oc := &opContext{State: state, Cmd: cmd, Rng: rng, Now: nowFn()}
	if err := spec.Apply(ctx, r, oc); err != nil {
		return Result{}, err
	}
	return Result{Payload: oc.Payload, Mutated: spec.Mutating, Outbox: oc.Outbox}, nil
}
