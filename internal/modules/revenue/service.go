package revenue

import (
	"context"
	"errors"
	"log"
	"math"

	"stayhub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrRevenueNotFound = errors.New("revenue entry not found")

// Service keeps the per-booking commission ledger. One RECORDED entry per
// paid booking; cancelling a paid booking flips it to REVERTED.
type Service struct {
	revenues RevenueRepository
	bookings BookingReader
	hotels   HotelReader
	loggerf  func(format string, args ...interface{})
}

func NewService(revenues RevenueRepository, bookings BookingReader, hotels HotelReader, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = log.Printf
	}
	return &Service{revenues: revenues, bookings: bookings, hotels: hotels, loggerf: loggerf}
}

// RecordBookingRevenue writes the commission entry for a paid booking.
// Recording twice is a no-op; the existing entry wins.
func (s *Service) RecordBookingRevenue(ctx context.Context, bookingID uuid.UUID) error {
	if existing, err := s.revenues.GetByBookingID(ctx, bookingID); err == nil {
		s.loggerf("level=info msg=revenue already recorded booking_id=%s status=%s", bookingID, existing.Status)
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	hotel, err := s.hotels.GetByID(ctx, b.HotelID)
	if err != nil {
		return err
	}

	rev := &domain.HotelRevenue{
		BookingID:  b.ID,
		HotelID:    b.HotelID,
		Amount:     b.TotalAmount,
		Commission: commissionOf(b.TotalAmount, hotel.CommissionRate),
		Status:     domain.RevenueRecorded,
	}
	if err := s.revenues.Create(ctx, rev); err != nil {
		return err
	}
	s.loggerf("level=info msg=hotel revenue recorded booking_id=%s amount=%d commission=%d", b.ID, rev.Amount, rev.Commission)
	return nil
}

// RevertBookingRevenue flips the RECORDED entry to REVERTED. A booking with
// no recorded entry is not an error; there is just nothing to revert.
func (s *Service) RevertBookingRevenue(ctx context.Context, bookingID uuid.UUID) error {
	reverted, err := s.revenues.MarkReverted(ctx, bookingID)
	if err != nil {
		return err
	}
	if !reverted {
		s.loggerf("level=info msg=no recorded revenue to revert booking_id=%s", bookingID)
		return nil
	}
	s.loggerf("level=info msg=hotel revenue reverted booking_id=%s", bookingID)
	return nil
}

func (s *Service) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.HotelRevenue, error) {
	rev, err := s.revenues.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRevenueNotFound
		}
		return nil, err
	}
	return rev, nil
}

// commissionOf rounds half up to the nearest whole VND.
func commissionOf(amount int64, rate float64) int64 {
	return int64(math.Round(float64(amount) * rate))
}
