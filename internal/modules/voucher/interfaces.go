package voucher

import (
	"context"
	"time"

	"stayhub/internal/domain"

	"github.com/google/uuid"
)

type VoucherRepository interface {
	Create(ctx context.Context, v *domain.Voucher) error
	Save(ctx context.Context, v *domain.Voucher) error
	GetByCode(ctx context.Context, code string) (*domain.Voucher, error)
	ListActive(ctx context.Context, now time.Time) ([]domain.Voucher, error)
	IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error)
	CreateUsage(ctx context.Context, u *domain.VoucherUsage) error
	DeleteUsagesByBookingID(ctx context.Context, bookingID uuid.UUID) error
}
