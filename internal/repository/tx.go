package repository

import (
	"context"

	"gorm.io/gorm"
)

type txKey struct{}

// TxManager gives services an explicit transaction boundary: WithinTx opens a
// database transaction and runs fn with the transaction handle stored in the
// context. Repositories called through that context join the transaction, so
// booking, inventory and wallet writes commit or roll back together.
type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

func (m *TxManager) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFrom returns the transaction handle carried by ctx, or the repository's
// own connection when the caller did not open one.
func dbFrom(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
