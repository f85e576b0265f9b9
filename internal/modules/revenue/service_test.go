package revenue

import (
	"context"
	"testing"

	"stayhub/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRevenueRepo struct {
	byBooking map[uuid.UUID]*domain.HotelRevenue
	created   []domain.HotelRevenue
	reverted  []uuid.UUID
}

func newFakeRevenueRepo() *fakeRevenueRepo {
	return &fakeRevenueRepo{byBooking: map[uuid.UUID]*domain.HotelRevenue{}}
}

func (f *fakeRevenueRepo) Create(ctx context.Context, rev *domain.HotelRevenue) error {
	f.created = append(f.created, *rev)
	f.byBooking[rev.BookingID] = rev
	return nil
}

func (f *fakeRevenueRepo) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.HotelRevenue, error) {
	rev, ok := f.byBooking[bookingID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return rev, nil
}

func (f *fakeRevenueRepo) MarkReverted(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	rev, ok := f.byBooking[bookingID]
	if !ok || rev.Status != domain.RevenueRecorded {
		return false, nil
	}
	rev.Status = domain.RevenueReverted
	f.reverted = append(f.reverted, bookingID)
	return true, nil
}

type fakeBookings struct {
	booking *domain.Booking
}

func (f *fakeBookings) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	if f.booking == nil || f.booking.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.booking, nil
}

type fakeHotels struct {
	hotel *domain.Hotel
}

func (f *fakeHotels) GetByID(ctx context.Context, id uuid.UUID) (*domain.Hotel, error) {
	if f.hotel == nil || f.hotel.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.hotel, nil
}

func newTestService() (*Service, *fakeRevenueRepo, *domain.Booking) {
	hotelID := uuid.New()
	booking := &domain.Booking{
		ID:          uuid.New(),
		HotelID:     hotelID,
		TotalAmount: 2_000_000,
	}
	repo := newFakeRevenueRepo()
	svc := NewService(
		repo,
		&fakeBookings{booking: booking},
		&fakeHotels{hotel: &domain.Hotel{ID: hotelID, CommissionRate: 0.12}},
		func(string, ...interface{}) {},
	)
	return svc, repo, booking
}

func TestRecordBookingRevenue(t *testing.T) {
	svc, repo, booking := newTestService()

	err := svc.RecordBookingRevenue(context.Background(), booking.ID)
	require.NoError(t, err)

	require.Len(t, repo.created, 1)
	rev := repo.created[0]
	assert.Equal(t, booking.ID, rev.BookingID)
	assert.Equal(t, int64(2_000_000), rev.Amount)
	assert.Equal(t, int64(240_000), rev.Commission)
	assert.Equal(t, domain.RevenueRecorded, rev.Status)
}

func TestRecordBookingRevenue_Idempotent(t *testing.T) {
	svc, repo, booking := newTestService()

	require.NoError(t, svc.RecordBookingRevenue(context.Background(), booking.ID))
	require.NoError(t, svc.RecordBookingRevenue(context.Background(), booking.ID))
	assert.Len(t, repo.created, 1)
}

func TestRevertBookingRevenue(t *testing.T) {
	svc, repo, booking := newTestService()
	require.NoError(t, svc.RecordBookingRevenue(context.Background(), booking.ID))

	require.NoError(t, svc.RevertBookingRevenue(context.Background(), booking.ID))
	assert.Equal(t, domain.RevenueReverted, repo.byBooking[booking.ID].Status)

	// Reverting again or reverting a booking without an entry is harmless.
	require.NoError(t, svc.RevertBookingRevenue(context.Background(), booking.ID))
	require.NoError(t, svc.RevertBookingRevenue(context.Background(), uuid.New()))
	assert.Len(t, repo.reverted, 1)
}

func TestCommissionRounding(t *testing.T) {
	assert.Equal(t, int64(125), commissionOf(1000, 0.125))
	assert.Equal(t, int64(0), commissionOf(1000, 0))
	assert.Equal(t, int64(167), commissionOf(1000, 0.1665))
}
