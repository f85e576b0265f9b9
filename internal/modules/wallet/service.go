package wallet

import (
	"context"
	"log"

	"stayhub/internal/domain"

	"github.com/google/uuid"
)

// Service is an append-only wallet ledger. Balance is derived from the
// transaction history, never stored.
type Service struct {
	transactions TransactionRepository
	loggerf      func(format string, args ...interface{})
}

func NewService(transactions TransactionRepository, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = log.Printf
	}
	return &Service{transactions: transactions, loggerf: loggerf}
}

// AddRefund credits amount to the user's wallet with an audit memo.
func (s *Service) AddRefund(ctx context.Context, userID uuid.UUID, amount int64, memo string) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	t := &domain.WalletTransaction{
		UserID: userID,
		Type:   domain.WalletRefund,
		Amount: amount,
		Memo:   memo,
	}
	if err := s.transactions.CreateTransaction(ctx, t); err != nil {
		return err
	}
	s.loggerf("level=info msg=wallet credited user_id=%s amount=%d tx_id=%s", userID, amount, t.ID)
	return nil
}

func (s *Service) Balance(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.transactions.BalanceByUserID(ctx, userID)
}
