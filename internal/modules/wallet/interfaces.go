package wallet

import (
	"context"

	"stayhub/internal/domain"

	"github.com/google/uuid"
)

type TransactionRepository interface {
	CreateTransaction(ctx context.Context, t *domain.WalletTransaction) error
	BalanceByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
}
