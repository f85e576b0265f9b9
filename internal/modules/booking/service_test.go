package booking

import (
	"context"
	"testing"
	"time"

	"stayhub/internal/domain"
	"stayhub/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Fake collaborators

type fakeBookingRepo struct {
	bookings  map[uuid.UUID]*domain.Booking
	ownerID   uuid.UUID // owner of every seeded booking's hotel
	conflicts int64
	refTaken  map[string]bool
	saveCalls int
	saveErr   error
	deleted   []uuid.UUID
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings: map[uuid.UUID]*domain.Booking{},
		refTaken: map[string]bool{},
	}
}

func (f *fakeBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) Save(ctx context.Context, b *domain.Booking) error {
	f.saveCalls++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok || b.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) GetByIDAndHotelOwnerID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Booking, error) {
	b, ok := f.bookings[id]
	if !ok || ownerID != f.ownerID {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (f *fakeBookingRepo) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) ListByHotelOwnerID(ctx context.Context, ownerID uuid.UUID, fl repository.BookingFilters, limit, offset int) ([]domain.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) ListAll(ctx context.Context, fl repository.BookingFilters, limit, offset int) ([]domain.Booking, error) {
	return nil, nil
}

func (f *fakeBookingRepo) CountConflicting(ctx context.Context, roomTypeID uuid.UUID, checkIn, checkOut time.Time, excludeID *uuid.UUID) (int64, error) {
	return f.conflicts, nil
}

func (f *fakeBookingRepo) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	return f.refTaken[reference], nil
}

func (f *fakeBookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingRepo) CountByHotelOwnerID(ctx context.Context, ownerID uuid.UUID, status string) (int64, error) {
	return 0, nil
}

func (f *fakeBookingRepo) RevenueByHotelOwnerID(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeRoomTypes struct {
	rt           *domain.RoomType
	reserveOK    bool
	reserveCalls int
	releaseCalls int
}

func (f *fakeRoomTypes) GetByID(ctx context.Context, id uuid.UUID) (*domain.RoomType, error) {
	if f.rt == nil || f.rt.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.rt, nil
}

func (f *fakeRoomTypes) Reserve(ctx context.Context, id uuid.UUID) (bool, error) {
	f.reserveCalls++
	return f.reserveOK, nil
}

func (f *fakeRoomTypes) Release(ctx context.Context, id uuid.UUID) (bool, error) {
	f.releaseCalls++
	return true, nil
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

type fakeUsers struct {
	user *domain.User
}

func (f *fakeUsers) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return f.user, nil
}

type fakeRefunds struct {
	refundErr    error
	refundCalls  int
	refundUser   uuid.UUID
	refundAmount int64
	refundMemo   string
	recordCalls  int
	revertCalls  int
}

func (f *fakeRefunds) Refund(ctx context.Context, userID uuid.UUID, amount int64, memo string) error {
	f.refundCalls++
	f.refundUser = userID
	f.refundAmount = amount
	f.refundMemo = memo
	return f.refundErr
}

func (f *fakeRefunds) RecordCommission(ctx context.Context, bookingID uuid.UUID) { f.recordCalls++ }
func (f *fakeRefunds) RevertCommission(ctx context.Context, bookingID uuid.UUID) { f.revertCalls++ }

type fakeVouchers struct {
	applyErr    error
	applyCalls  int
	deleteCalls int
}

func (f *fakeVouchers) Apply(ctx context.Context, code string, userID, bookingID uuid.UUID, amount int64, hotelID uuid.UUID) error {
	f.applyCalls++
	return f.applyErr
}

func (f *fakeVouchers) DeleteUsagesByBookingID(ctx context.Context, bookingID uuid.UUID) error {
	f.deleteCalls++
	return nil
}

type fakePayments struct {
	created     []domain.PaymentTransaction
	deleteCalls int
}

func (f *fakePayments) Create(ctx context.Context, t *domain.PaymentTransaction) error {
	f.created = append(f.created, *t)
	return nil
}

func (f *fakePayments) DeleteByBookingID(ctx context.Context, bookingID uuid.UUID) error {
	f.deleteCalls++
	return nil
}

type passTx struct{}

func (passTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Fixture

type fixture struct {
	svc       *Service
	bookings  *fakeBookingRepo
	roomTypes *fakeRoomTypes
	hotels    *fakeHotels
	users     *fakeUsers
	refunds   *fakeRefunds
	vouchers  *fakeVouchers
	payments  *fakePayments

	userID     uuid.UUID
	hostID     uuid.UUID
	hotelID    uuid.UUID
	roomTypeID uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		bookings:   newFakeBookingRepo(),
		refunds:    &fakeRefunds{},
		vouchers:   &fakeVouchers{},
		payments:   &fakePayments{},
		userID:     uuid.New(),
		hostID:     uuid.New(),
		hotelID:    uuid.New(),
		roomTypeID: uuid.New(),
	}
	f.hotels = &fakeHotels{hotel: &domain.Hotel{
		ID: f.hotelID, OwnerID: f.hostID, Active: true, CommissionRate: 0.1,
	}}
	f.roomTypes = &fakeRoomTypes{
		rt: &domain.RoomType{
			ID: f.roomTypeID, HotelID: f.hotelID,
			MaxOccupancy: 4, TotalRooms: 5, AvailableRooms: 5, PricePerNight: 900_000,
		},
		reserveOK: true,
	}
	f.users = &fakeUsers{user: &domain.User{
		ID: f.userID, Username: "guest", Name: "Nguyen Van A", Email: "guest@example.com", Role: domain.RoleGuest,
	}}
	f.bookings.ownerID = f.hostID

	f.svc = &Service{
		bookings:  f.bookings,
		roomTypes: f.roomTypes,
		hotels:    f.hotels,
		users:     f.users,
		payments:  f.payments,
		vouchers:  f.vouchers,
		refunds:   f.refunds,
		tx:        passTx{},
		randInt:   func(n int) int { return 1234 },
		loggerf:   func(string, ...interface{}) {},
	}
	return f
}

func (f *fixture) createRequest() CreateBookingRequest {
	now := time.Now().UTC()
	return CreateBookingRequest{
		HotelID:      f.hotelID,
		RoomTypeID:   f.roomTypeID,
		CheckInDate:  now.AddDate(0, 0, 7),
		CheckOutDate: now.AddDate(0, 0, 10),
		Guests:       2,
		TotalAmount:  2_700_000,
	}
}

func (f *fixture) seedBooking(status domain.BookingStatus, payment domain.PaymentStatus) *domain.Booking {
	b := &domain.Booking{
		ID:               uuid.New(),
		BookingReference: "BK202608301234",
		HotelID:          f.hotelID,
		RoomTypeID:       f.roomTypeID,
		UserID:           f.userID,
		CheckInDate:      time.Now().UTC().AddDate(0, 0, 7),
		CheckOutDate:     time.Now().UTC().AddDate(0, 0, 10),
		Guests:           2,
		TotalAmount:      2_700_000,
		Status:           status,
		PaymentStatus:    payment,
	}
	f.bookings.bookings[b.ID] = b
	return b
}

// Create

func TestCreateBooking_Success(t *testing.T) {
	f := newFixture()

	b, err := f.svc.CreateBooking(context.Background(), f.userID, f.createRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, domain.PaymentPending, b.PaymentStatus)
	assert.Regexp(t, `^BK\d{8}\d{4}$`, b.BookingReference)
	assert.Equal(t, "Nguyen Van A", b.GuestName)
	assert.Equal(t, "guest@example.com", b.GuestEmail)
	assert.Equal(t, 1, f.roomTypes.reserveCalls)
}

func TestCreateBooking_NoCounterLeft(t *testing.T) {
	f := newFixture()
	f.roomTypes.rt.AvailableRooms = 0

	_, err := f.svc.CreateBooking(context.Background(), f.userID, f.createRequest())
	assert.ErrorIs(t, err, ErrNoRoomsAvailable)
	assert.Equal(t, 0, f.roomTypes.reserveCalls)
}

func TestCreateBooking_ConflictsAtCapacity(t *testing.T) {
	f := newFixture()
	// Counter is stale but the overlap count says the window is full.
	f.roomTypes.rt.AvailableRooms = 1
	f.bookings.conflicts = int64(f.roomTypes.rt.TotalRooms)

	_, err := f.svc.CreateBooking(context.Background(), f.userID, f.createRequest())
	assert.ErrorIs(t, err, ErrNoRoomsAvailable)
	assert.Equal(t, 0, f.roomTypes.reserveCalls)
}

func TestCreateBooking_ReserveLosesRace(t *testing.T) {
	f := newFixture()
	f.roomTypes.reserveOK = false

	_, err := f.svc.CreateBooking(context.Background(), f.userID, f.createRequest())
	assert.ErrorIs(t, err, ErrNoRoomsAvailable)
	assert.Equal(t, 1, f.roomTypes.reserveCalls)
	assert.Empty(t, f.bookings.bookings)
}

func TestCreateBooking_DateValidation(t *testing.T) {
	now := time.Now().UTC()
	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     error
	}{
		{"past check-in", now.AddDate(0, 0, -2), now.AddDate(0, 0, 3), ErrCheckInDatePast},
		{"check-out equals check-in", now.AddDate(0, 0, 5), now.AddDate(0, 0, 5), ErrCheckOutNotAfterCheckIn},
		{"check-out before check-in", now.AddDate(0, 0, 5), now.AddDate(0, 0, 4), ErrCheckOutNotAfterCheckIn},
		{"too far ahead", now.AddDate(2, 0, 10), now.AddDate(2, 0, 12), ErrCheckInTooFarAhead},
		{"stay too long", now.AddDate(0, 0, 5), now.AddDate(0, 0, 40), ErrStayTooLong},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			req := f.createRequest()
			req.CheckInDate = tc.checkIn
			req.CheckOutDate = tc.checkOut

			_, err := f.svc.CreateBooking(context.Background(), f.userID, req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreateBooking_GuestValidation(t *testing.T) {
	cases := []struct {
		name   string
		guests int
		maxOcc int
		want   error
	}{
		{"zero guests", 0, 4, ErrInvalidGuestCount},
		{"negative guests", -1, 4, ErrInvalidGuestCount},
		{"exceeds capacity", 5, 4, ErrGuestsExceedCapacity},
		{"large group", 9, 12, ErrLargeGroupNeedsApproval},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture()
			f.roomTypes.rt.MaxOccupancy = tc.maxOcc
			req := f.createRequest()
			req.Guests = tc.guests

			_, err := f.svc.CreateBooking(context.Background(), f.userID, req)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestCreateBooking_InactiveHotel(t *testing.T) {
	f := newFixture()
	f.hotels.hotel.Active = false

	_, err := f.svc.CreateBooking(context.Background(), f.userID, f.createRequest())
	assert.ErrorIs(t, err, ErrHotelNotBookable)
}

func TestCreateBooking_RoomTypeOfAnotherHotel(t *testing.T) {
	f := newFixture()
	f.roomTypes.rt.HotelID = uuid.New()

	_, err := f.svc.CreateBooking(context.Background(), f.userID, f.createRequest())
	assert.ErrorIs(t, err, ErrRoomTypeNotFound)
}

func TestCreateBooking_UnknownUser(t *testing.T) {
	f := newFixture()

	_, err := f.svc.CreateBooking(context.Background(), uuid.New(), f.createRequest())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestCreateBooking_VoucherFailureDoesNotAbort(t *testing.T) {
	f := newFixture()
	f.vouchers.applyErr = assert.AnError

	req := f.createRequest()
	req.VoucherCode = "WELCOME10"

	b, err := f.svc.CreateBooking(context.Background(), f.userID, req)
	require.NoError(t, err)
	assert.Equal(t, 1, f.vouchers.applyCalls)
	assert.Equal(t, domain.BookingPending, b.Status)
}

// Guest cancellation

func TestCancelMyBooking_Unpaid(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(domain.BookingPending, domain.PaymentPending)

	got, err := f.svc.CancelMyBooking(context.Background(), f.userID, b.ID, "plans changed")
	require.NoError(t, err)

	assert.Equal(t, domain.BookingCancelledByGuest, got.Status)
	assert.Equal(t, domain.PaymentNoPayment, got.PaymentStatus)
	assert.Equal(t, "plans changed", got.CancellationReason)
	assert.Equal(t, 1, f.roomTypes.releaseCalls)
	assert.Equal(t, 0, f.refunds.refundCalls)
}

func TestCancelMyBooking_PaidGetsFullRefund(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(domain.BookingConfirmed, domain.PaymentPaid)

	got, err := f.svc.CancelMyBooking(context.Background(), f.userID, b.ID, "emergency")
	require.NoError(t, err)

	assert.Equal(t, domain.BookingCancelledByGuest, got.Status)
	assert.Equal(t, domain.PaymentRefunded, got.PaymentStatus)
	require.NotNil(t, got.RefundAmount)
	assert.Equal(t, b.TotalAmount, *got.RefundAmount)

	assert.Equal(t, 1, f.refunds.refundCalls)
	assert.Equal(t, f.userID, f.refunds.refundUser)
	assert.Equal(t, b.TotalAmount, f.refunds.refundAmount)
	assert.Contains(t, f.refunds.refundMemo, b.BookingReference)

	assert.Equal(t, 1, f.roomTypes.releaseCalls)
	assert.Equal(t, 1, f.refunds.revertCalls)
}

func TestCancelMyBooking_RefundFailureRollsBack(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(domain.BookingConfirmed, domain.PaymentPaid)
	f.refunds.refundErr = assert.AnError

	_, err := f.svc.CancelMyBooking(context.Background(), f.userID, b.ID, "emergency")
	assert.ErrorIs(t, err, ErrRefundProcessingFailed)

	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, domain.PaymentPaid, b.PaymentStatus)
	assert.Nil(t, b.RefundAmount)
	assert.Equal(t, 0, f.refunds.revertCalls)
}

func TestCancelMyBooking_Guards(t *testing.T) {
	f := newFixture()

	cancelled := f.seedBooking(domain.BookingCancelledByGuest, domain.PaymentNoPayment)
	_, err := f.svc.CancelMyBooking(context.Background(), f.userID, cancelled.ID, "again")
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	completed := f.seedBooking(domain.BookingCompleted, domain.PaymentPaid)
	_, err = f.svc.CancelMyBooking(context.Background(), f.userID, completed.ID, "late")
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_NoShowDoesNotReleaseInventory(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(domain.BookingNoShow, domain.PaymentPending)

	got, err := f.svc.CancelBookingByHost(context.Background(), f.hostID, b.ID, "no show")
	require.NoError(t, err)

	// NO_SHOW already gave its unit back; cancelling must not release twice.
	assert.Equal(t, 0, f.roomTypes.releaseCalls)
	assert.Equal(t, domain.BookingCancelledByHost, got.Status)
}

// Host transitions

func TestCancelBookingByHost_PendingPayment(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(domain.BookingPending, domain.PaymentPending)

	got, err := f.svc.CancelBookingByHost(context.Background(), f.hostID, b.ID, "overbooked")
	require.NoError(t, err)

	assert.Equal(t, domain.BookingCancelledByHost, got.Status)
	assert.Equal(t, domain.PaymentCancelled, got.PaymentStatus)
	assert.Equal(t, 1, f.roomTypes.releaseCalls)
}

func TestHostActions_ForeignOwnerDenied(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(domain.BookingPending, domain.PaymentPending)
	stranger := uuid.New()

	_, err := f.svc.GetHostBooking(context.Background(), stranger, b.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.ConfirmBooking(context.Background(), stranger, b.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = f.svc.CancelBookingByHost(context.Background(), stranger, b.ID, "not mine")
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, domain.BookingPending, b.Status)

	// A booking that does not exist at all stays a not-found.
	_, err = f.svc.GetHostBooking(context.Background(), stranger, uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
	_, err = f.svc.GetHostBooking(context.Background(), f.hostID, uuid.New())
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestConfirmBooking(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(domain.BookingPending, domain.PaymentPending)

	got, err := f.svc.ConfirmBooking(context.Background(), f.hostID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, got.Status)
	// The room was already held at creation.
	assert.Equal(t, 0, f.roomTypes.reserveCalls)

	_, err = f.svc.ConfirmBooking(context.Background(), f.hostID, b.ID)
	assert.ErrorIs(t, err, ErrAlreadyConfirmed)

	cancelled := f.seedBooking(domain.BookingCancelled, domain.PaymentCancelled)
	_, err = f.svc.ConfirmBooking(context.Background(), f.hostID, cancelled.ID)
	assert.ErrorIs(t, err, ErrCannotConfirm)
}

func TestCompleteBooking(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(domain.BookingConfirmed, domain.PaymentPaid)

	got, err := f.svc.CompleteBooking(context.Background(), f.hostID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, got.Status)
	assert.Equal(t, 1, f.roomTypes.releaseCalls)

	// Completing again is a no-op; nothing else is released.
	got, err = f.svc.CompleteBooking(context.Background(), f.hostID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCompleted, got.Status)
	assert.Equal(t, 1, f.roomTypes.releaseCalls)

	cancelled := f.seedBooking(domain.BookingCancelledByGuest, domain.PaymentNoPayment)
	_, err = f.svc.CompleteBooking(context.Background(), f.hostID, cancelled.ID)
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestConfirmPayment(t *testing.T) {
	f := newFixture()
	f.users.user.Role = domain.RoleHost
	f.users.user.ID = f.hostID
	b := f.seedBooking(domain.BookingConfirmed, domain.PaymentPending)

	got, err := f.svc.ConfirmPayment(context.Background(), f.hostID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
	assert.Equal(t, 1, f.refunds.recordCalls)
	require.Len(t, f.payments.created, 1)
	assert.Equal(t, b.TotalAmount, f.payments.created[0].Amount)

	// Idempotent re-confirmation, no second commission entry.
	got, err = f.svc.ConfirmPayment(context.Background(), f.hostID, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, got.PaymentStatus)
	assert.Equal(t, 1, f.refunds.recordCalls)
}

func TestConfirmPayment_Guards(t *testing.T) {
	f := newFixture()
	f.users.user.Role = domain.RoleHost
	f.users.user.ID = f.hostID

	failed := f.seedBooking(domain.BookingPending, domain.PaymentFailed)
	_, err := f.svc.ConfirmPayment(context.Background(), f.hostID, failed.ID)
	assert.ErrorIs(t, err, ErrPaymentFailed)

	cancelled := f.seedBooking(domain.BookingCancelledByHost, domain.PaymentCancelled)
	_, err = f.svc.ConfirmPayment(context.Background(), f.hostID, cancelled.ID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
}

// Explicit-refund cancellation

func TestProcessCancellation_PartialRefund(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(domain.BookingConfirmed, domain.PaymentPaid)

	got, err := f.svc.ProcessCancellation(context.Background(), f.hostID, b.ID, ProcessCancellationRequest{
		RefundAmount: b.TotalAmount / 2,
		Reason:       "late cancellation policy",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.BookingCancelledByHost, got.Status)
	assert.Equal(t, domain.PaymentPartiallyRefunded, got.PaymentStatus)
	require.NotNil(t, got.RefundAmount)
	assert.Equal(t, b.TotalAmount/2, *got.RefundAmount)
	assert.Equal(t, 1, f.refunds.refundCalls)
	assert.Equal(t, 1, f.refunds.revertCalls)
}

func TestProcessCancellation_FullRefund(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(domain.BookingConfirmed, domain.PaymentPaid)

	got, err := f.svc.ProcessCancellation(context.Background(), f.hostID, b.ID, ProcessCancellationRequest{
		RefundAmount: b.TotalAmount,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentRefunded, got.PaymentStatus)
}

func TestProcessCancellation_RefundExceedsTotal(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(domain.BookingConfirmed, domain.PaymentPaid)

	_, err := f.svc.ProcessCancellation(context.Background(), f.hostID, b.ID, ProcessCancellationRequest{
		RefundAmount: b.TotalAmount + 1,
	})
	assert.ErrorIs(t, err, ErrRefundExceedsTotal)
	assert.Equal(t, 0, f.refunds.refundCalls)
}

func TestProcessCancellation_NoRefundForUnpaid(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(domain.BookingPending, domain.PaymentPending)

	got, err := f.svc.ProcessCancellation(context.Background(), f.hostID, b.ID, ProcessCancellationRequest{
		RefundAmount: 100_000,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCancelled, got.PaymentStatus)
	assert.Equal(t, 0, f.refunds.refundCalls)
}

func TestProcessCancellation_SaveFailureRestoresSnapshot(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(domain.BookingConfirmed, domain.PaymentPaid)
	f.bookings.saveErr = assert.AnError

	_, err := f.svc.ProcessCancellation(context.Background(), f.hostID, b.ID, ProcessCancellationRequest{
		RefundAmount: b.TotalAmount / 2,
		Reason:       "late cancellation policy",
	})
	require.Error(t, err)

	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, domain.PaymentPaid, b.PaymentStatus)
	assert.Nil(t, b.RefundAmount)
	assert.Empty(t, b.CancellationReason)
	assert.Equal(t, 0, f.refunds.revertCalls)
}

// Status edits and reconciliation

func TestUpdateBooking_StatusFlipReleasesRoom(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(domain.BookingConfirmed, domain.PaymentPaid)

	status := domain.BookingNoShow
	got, err := f.svc.UpdateBooking(context.Background(), uuid.New(), b.ID, UpdateBookingRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, domain.BookingNoShow, got.Status)
	assert.Equal(t, 1, f.roomTypes.releaseCalls)
	assert.Equal(t, 0, f.roomTypes.reserveCalls)
}

func TestUpdateBooking_StatusFlipReservesRoom(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(domain.BookingNoShow, domain.PaymentPending)

	status := domain.BookingConfirmed
	got, err := f.svc.UpdateBooking(context.Background(), uuid.New(), b.ID, UpdateBookingRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, domain.BookingConfirmed, got.Status)
	assert.Equal(t, 1, f.roomTypes.reserveCalls)
	assert.Equal(t, 0, f.roomTypes.releaseCalls)
}

func TestUpdateBooking_ReserveFailureKeepsStatus(t *testing.T) {
	f := newFixture()
	f.roomTypes.reserveOK = false
	b := f.seedBooking(domain.BookingCancelled, domain.PaymentCancelled)

	status := domain.BookingConfirmed
	_, err := f.svc.UpdateBooking(context.Background(), uuid.New(), b.ID, UpdateBookingRequest{Status: &status})
	assert.ErrorIs(t, err, ErrNoRoomsAvailable)
	assert.Equal(t, domain.BookingCancelled, b.Status)
}

func TestUpdateBooking_InvalidStatus(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(domain.BookingPending, domain.PaymentPending)

	status := domain.BookingStatus("TELEPORTED")
	_, err := f.svc.UpdateBooking(context.Background(), uuid.New(), b.ID, UpdateBookingRequest{Status: &status})
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestUpdateMyBooking_OnlyWhilePending(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(domain.BookingConfirmed, domain.PaymentPaid)

	guests := 3
	_, err := f.svc.UpdateMyBooking(context.Background(), f.userID, b.ID, UpdateBookingRequest{Guests: &guests})
	assert.ErrorIs(t, err, ErrInvalidStatusTransition)
}

func TestUpdateMyBooking_Pending(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(domain.BookingPending, domain.PaymentPending)

	guests := 3
	name := "Nguyen Van B"
	got, err := f.svc.UpdateMyBooking(context.Background(), f.userID, b.ID, UpdateBookingRequest{
		Guests:    &guests,
		GuestName: &name,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, got.Guests)
	assert.Equal(t, "Nguyen Van B", got.GuestName)
}

// Check-in

func TestCheckInBooking(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(domain.BookingConfirmed, domain.PaymentPaid)

	got, err := f.svc.CheckInBooking(context.Background(), f.hostID, b.ID)
	require.NoError(t, err)
	assert.True(t, got.QRCodeUsed)

	_, err = f.svc.CheckInBooking(context.Background(), f.hostID, b.ID)
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
}

// Delete

func TestDeleteBooking_ReleasesAndCleansUp(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(domain.BookingPending, domain.PaymentPending)

	err := f.svc.DeleteBooking(context.Background(), b.ID)
	require.NoError(t, err)

	assert.Equal(t, 1, f.roomTypes.releaseCalls)
	assert.Equal(t, 1, f.payments.deleteCalls)
	assert.Equal(t, 1, f.vouchers.deleteCalls)
	assert.Contains(t, f.bookings.deleted, b.ID)
}

func TestDeleteBooking_TerminalDoesNotRelease(t *testing.T) {
	f := newFixture()
	b := f.seedBooking(domain.BookingCompleted, domain.PaymentPaid)

	err := f.svc.DeleteBooking(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, f.roomTypes.releaseCalls)
}

// Availability

func TestIsRoomAvailable(t *testing.T) {
	f := newFixture()
	checkIn := time.Now().UTC().AddDate(0, 0, 7)
	checkOut := checkIn.AddDate(0, 0, 3)

	ok, err := f.svc.IsRoomAvailable(context.Background(), f.roomTypeID, checkIn, checkOut, nil)
	require.NoError(t, err)
	assert.True(t, ok)

	f.bookings.conflicts = int64(f.roomTypes.rt.TotalRooms)
	ok, err = f.svc.IsRoomAvailable(context.Background(), f.roomTypeID, checkIn, checkOut, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}
