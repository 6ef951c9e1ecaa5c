package memory

import "context"

// TxManager is a pass-through: the per-method store lock already makes each
// write atomic, and the in-memory store offers no rollback.
type TxManager struct{}

func NewTxManager() TxManager {
	return TxManager{}
}

func (TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
