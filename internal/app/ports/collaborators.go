package ports

import (
	"context"

	"mergeverse/internal/domain/merge"
)

// TaskContentProvider is the external datapoint service that hands out and
// grades annotation tasks.
type TaskContentProvider interface {
	FetchMcqTasks(ctx context.Context, n int) ([]merge.McqTask, error)
	FetchTextTasks(ctx context.Context, n int) ([]merge.TextTask, error)
	SubmitMcqAnswers(ctx context.Context, playerID, datapointID string, answers map[int]string) error
	SubmitTextAnswer(ctx context.Context, playerID, datapointID string, questionIndex int, text string) error
}

// Ledger quotes and executes currency-to-crypto exchanges. Quote fails when
// the symbol is unknown or the player's skill score is below the symbol's
// eligibility floor.
type Ledger interface {
	Quote(ctx context.Context, amount int, symbol string, iq int) (float64, error)
	Transfer(ctx context.Context, amount int, symbol, address string) (string, error)
}

// LinkProvider is a read-only pool of daily link-visit tasks.
type LinkProvider interface {
	RandomLinks(n int) []merge.LinkTask
}

// Messenger delivers a one-shot internal command to another player's actor.
// Delivery is at-most-once; callers treat failure as degraded-but-non-fatal.
type Messenger interface {
	Send(ctx context.Context, targetPlayerID string, n merge.Notification) error
}
