package gormrepo

import (
	"context"

	"gorm.io/gorm"
)

type txKeyType struct{}

var txKey = txKeyType{}

// withTx stashes an open transaction in the context so the record repo
// methods join it instead of using their own connection. Registration
// writes five player tables and relies on this to commit them atomically.
func withTx(ctx context.Context, tx *gorm.DB) context.Context {
	return context.WithValue(ctx, txKey, tx)
}

// getDBFromCtx returns the transaction carried by ctx, or base when the
// caller runs outside a transaction.
func getDBFromCtx(ctx context.Context, base *gorm.DB) *gorm.DB {
	if v := ctx.Value(txKey); v != nil {
		if tx, ok := v.(*gorm.DB); ok && tx != nil {
			return tx
		}
	}
	return base
}
