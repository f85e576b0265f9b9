package refund

import (
	"context"
	"log"

	"github.com/google/uuid"
)

// Service coordinates the money side of a cancellation: the wallet credit and
// the commission ledger. Refund errors propagate to the caller so a failed
// credit aborts the enclosing cancellation; commission bookkeeping is
// best-effort and only logged, it must never block a booking transition.
type Service struct {
	wallet  WalletCrediter
	revenue RevenueRecorder
	loggerf func(format string, args ...interface{})
}

func NewService(wallet WalletCrediter, revenue RevenueRecorder, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = log.Printf
	}
	return &Service{wallet: wallet, revenue: revenue, loggerf: loggerf}
}

func (s *Service) Refund(ctx context.Context, userID uuid.UUID, amount int64, memo string) error {
	if err := s.wallet.AddRefund(ctx, userID, amount, memo); err != nil {
		return err
	}
	s.loggerf("level=info msg=wallet refund credited user_id=%s amount=%d", userID, amount)
	return nil
}

func (s *Service) RecordCommission(ctx context.Context, bookingID uuid.UUID) {
	if err := s.revenue.RecordBookingRevenue(ctx, bookingID); err != nil {
		s.loggerf("level=warn msg=failed to record hotel revenue booking_id=%s err=%v", bookingID, err)
	}
}

func (s *Service) RevertCommission(ctx context.Context, bookingID uuid.UUID) {
	if err := s.revenue.RevertBookingRevenue(ctx, bookingID); err != nil {
		s.loggerf("level=warn msg=failed to revert hotel revenue booking_id=%s err=%v", bookingID, err)
	}
}
