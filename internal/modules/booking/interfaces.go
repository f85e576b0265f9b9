package booking

import (
	"context"
	"time"

	"stayhub/internal/domain"
	"stayhub/internal/repository"

	"github.com/google/uuid"
)

// BookingRepository is the booking-row store as this service consumes it.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	Save(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
	GetByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*domain.Booking, error)
	GetByIDAndHotelOwnerID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Booking, error)
	ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Booking, error)
	ListByHotelOwnerID(ctx context.Context, ownerID uuid.UUID, f repository.BookingFilters, limit, offset int) ([]domain.Booking, error)
	ListAll(ctx context.Context, f repository.BookingFilters, limit, offset int) ([]domain.Booking, error)
	CountConflicting(ctx context.Context, roomTypeID uuid.UUID, checkIn, checkOut time.Time, excludeID *uuid.UUID) (int64, error)
	ReferenceExists(ctx context.Context, reference string) (bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CountByHotelOwnerID(ctx context.Context, ownerID uuid.UUID, status string) (int64, error)
	RevenueByHotelOwnerID(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

// RoomTypeRepository is the inventory counter. Reserve and Release are
// atomic guarded updates; both report whether a unit actually moved.
type RoomTypeRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.RoomType, error)
	Reserve(ctx context.Context, id uuid.UUID) (bool, error)
	Release(ctx context.Context, id uuid.UUID) (bool, error)
}

type HotelRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Hotel, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

// TxRunner scopes a unit of work to one database transaction. Inventory,
// booking and refund writes inside fn commit or roll back together.
type TxRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RefundCoordinator fronts the wallet and revenue collaborators. Refund
// errors propagate so the enclosing transition can abort; the commission
// calls are best-effort and never return an error.
type RefundCoordinator interface {
	Refund(ctx context.Context, userID uuid.UUID, amount int64, memo string) error
	RecordCommission(ctx context.Context, bookingID uuid.UUID)
	RevertCommission(ctx context.Context, bookingID uuid.UUID)
}

type VoucherApplier interface {
	Apply(ctx context.Context, code string, userID, bookingID uuid.UUID, amount int64, hotelID uuid.UUID) error
	DeleteUsagesByBookingID(ctx context.Context, bookingID uuid.UUID) error
}

type PaymentTransactionRepository interface {
	Create(ctx context.Context, t *domain.PaymentTransaction) error
	DeleteByBookingID(ctx context.Context, bookingID uuid.UUID) error
}
