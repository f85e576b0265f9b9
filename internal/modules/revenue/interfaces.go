package revenue

import (
	"context"

	"stayhub/internal/domain"

	"github.com/google/uuid"
)

type RevenueRepository interface {
	Create(ctx context.Context, rev *domain.HotelRevenue) error
	GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.HotelRevenue, error)
	MarkReverted(ctx context.Context, bookingID uuid.UUID) (bool, error)
}

type BookingReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)
}

type HotelReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Hotel, error)
}
