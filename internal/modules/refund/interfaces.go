package refund

import (
	"context"

	"github.com/google/uuid"
)

// WalletCrediter credits refunds to a guest wallet.
type WalletCrediter interface {
	AddRefund(ctx context.Context, userID uuid.UUID, amount int64, memo string) error
}

// RevenueRecorder maintains the hotel revenue ledger.
type RevenueRecorder interface {
	RecordBookingRevenue(ctx context.Context, bookingID uuid.UUID) error
	RevertBookingRevenue(ctx context.Context, bookingID uuid.UUID) error
}
