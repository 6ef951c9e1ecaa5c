package gormrepo

import (
	"context"

	"gorm.io/gorm"
)

// TxManager satisfies ports.TxManager over a gorm connection. The
// transaction handle travels in the context, so code inside fn can keep
// calling the usual repo methods and have every write land in one
// transaction.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) TxManager {
	return TxManager{db: db}
}

func (t TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(withTx(ctx, tx))
	})
}
