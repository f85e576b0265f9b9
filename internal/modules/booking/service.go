package booking

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"time"

	"stayhub/internal/domain"
	"stayhub/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	maxStayNights    = 30
	maxAdvanceYears  = 2
	largeGroupGuests = 8
)

// Service owns the booking lifecycle: it is the only writer of booking rows
// and the only caller of the room-type inventory counter. Every mutating
// operation runs inside a transaction opened through tx, so booking, inventory
// and refund writes land together or not at all.
type Service struct {
	bookings  BookingRepository
	roomTypes RoomTypeRepository
	hotels    HotelRepository
	users     UserRepository
	payments  PaymentTransactionRepository
	vouchers  VoucherApplier
	refunds   RefundCoordinator
	tx        TxRunner

	randInt func(n int) int
	loggerf func(format string, args ...interface{})
}

func NewService(
	bookings BookingRepository,
	roomTypes RoomTypeRepository,
	hotels HotelRepository,
	users UserRepository,
	payments PaymentTransactionRepository,
	vouchers VoucherApplier,
	refunds RefundCoordinator,
	tx TxRunner,
	loggerf func(format string, args ...interface{}),
) *Service {
	if loggerf == nil {
		loggerf = log.Printf
	}
	return &Service{
		bookings:  bookings,
		roomTypes: roomTypes,
		hotels:    hotels,
		users:     users,
		payments:  payments,
		vouchers:  vouchers,
		refunds:   refunds,
		tx:        tx,
		randInt:   rand.Intn,
		loggerf:   loggerf,
	}
}

// ===== GUEST OPERATIONS =====

func (s *Service) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*domain.Booking, error) {
	user, err := s.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	checkIn, checkOut := dateOnly(req.CheckInDate), dateOnly(req.CheckOutDate)
	if err := validateBookingDates(checkIn, checkOut); err != nil {
		return nil, err
	}

	hotel, err := s.hotels.GetByID(ctx, req.HotelID)
	if err != nil {
		return nil, mapNotFound(err, ErrHotelNotFound)
	}
	if !hotel.Active {
		s.loggerf("level=warn msg=booking attempt on inactive hotel hotel_id=%s", hotel.ID)
		return nil, ErrHotelNotBookable
	}

	roomType, err := s.roomTypes.GetByID(ctx, req.RoomTypeID)
	if err != nil {
		return nil, mapNotFound(err, ErrRoomTypeNotFound)
	}
	if roomType.HotelID != hotel.ID {
		return nil, ErrRoomTypeNotFound
	}

	if err := validateGuestCount(req.Guests, roomType.MaxOccupancy); err != nil {
		return nil, err
	}

	var b *domain.Booking
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		ok, err := s.isAvailable(ctx, roomType, checkIn, checkOut, nil)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNoRoomsAvailable
		}
		if s.underMaintenance(roomType.ID, checkIn, checkOut) {
			return ErrRoomUnderMaintenance
		}

		ref, err := s.generateReference(ctx)
		if err != nil {
			return err
		}

		// The atomic decrement is the authoritative gate: under concurrent
		// requests for the last unit, exactly one reserve succeeds.
		reserved, err := s.roomTypes.Reserve(ctx, roomType.ID)
		if err != nil {
			return err
		}
		if !reserved {
			return ErrNoRoomsAvailable
		}

		b = &domain.Booking{
			BookingReference: ref,
			HotelID:          hotel.ID,
			RoomTypeID:       roomType.ID,
			UserID:           user.ID,
			GuestName:        user.Name,
			GuestEmail:       user.Email,
			GuestPhone:       user.Tel,
			CheckInDate:      checkIn,
			CheckOutDate:     checkOut,
			Guests:           req.Guests,
			TotalAmount:      req.TotalAmount,
			Status:           domain.BookingPending,
			PaymentStatus:    domain.PaymentPending,
			SpecialRequests:  req.SpecialRequests,
			CreatedBy:        &user.ID,
		}
		if err := s.bookings.Create(ctx, b); err != nil {
			if isDuplicateReference(err) {
				return ErrDuplicateReference
			}
			return err
		}

		if req.VoucherCode != "" {
			if verr := s.vouchers.Apply(ctx, req.VoucherCode, user.ID, b.ID, req.TotalAmount, hotel.ID); verr != nil {
				// Voucher application is best-effort: the booking stands.
				s.loggerf("level=warn msg=voucher application failed code=%s booking_id=%s err=%v", req.VoucherCode, b.ID, verr)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.loggerf("level=info msg=booking created booking_id=%s reference=%s", b.ID, b.BookingReference)
	return b, nil
}

func (s *Service) GetMyBookings(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Booking, error) {
	return s.bookings.ListByUserID(ctx, userID, limit, offset)
}

func (s *Service) GetMyBooking(ctx context.Context, userID, bookingID uuid.UUID) (*domain.Booking, error) {
	b, err := s.bookings.GetByIDAndUserID(ctx, bookingID, userID)
	if err != nil {
		return nil, mapNotFound(err, ErrBookingNotFound)
	}
	return b, nil
}

func (s *Service) UpdateMyBooking(ctx context.Context, userID, bookingID uuid.UUID, req UpdateBookingRequest) (*domain.Booking, error) {
	b, err := s.bookings.GetByIDAndUserID(ctx, bookingID, userID)
	if err != nil {
		return nil, mapNotFound(err, ErrBookingNotFound)
	}

	// Guests may only touch bookings that are still pending.
	if b.Status != domain.BookingPending {
		return nil, ErrInvalidStatusTransition
	}

	if req.CheckInDate != nil && req.CheckOutDate != nil {
		checkIn, checkOut := dateOnly(*req.CheckInDate), dateOnly(*req.CheckOutDate)
		if err := validateBookingDates(checkIn, checkOut); err != nil {
			return nil, err
		}
		ok, err := s.IsRoomAvailable(ctx, b.RoomTypeID, checkIn, checkOut, &b.ID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNoRoomsAvailable
		}
		b.CheckInDate = checkIn
		b.CheckOutDate = checkOut
	}

	if req.Guests != nil {
		roomType, err := s.roomTypes.GetByID(ctx, b.RoomTypeID)
		if err != nil {
			return nil, mapNotFound(err, ErrRoomTypeNotFound)
		}
		if err := validateGuestCount(*req.Guests, roomType.MaxOccupancy); err != nil {
			return nil, err
		}
		b.Guests = *req.Guests
	}

	applyGuestFields(b, req)
	b.UpdatedBy = &userID

	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// CancelMyBooking cancels on behalf of the guest. An unpaid booking resolves
// to NO_PAYMENT; a paid one triggers a full wallet refund inside the same
// transaction, so a refund failure aborts the cancellation entirely.
func (s *Service) CancelMyBooking(ctx context.Context, userID, bookingID uuid.UUID, reason string) (*domain.Booking, error) {
	b, err := s.bookings.GetByIDAndUserID(ctx, bookingID, userID)
	if err != nil {
		return nil, mapNotFound(err, ErrBookingNotFound)
	}
	return s.cancel(ctx, b, domain.BookingCancelledByGuest, domain.PaymentNoPayment, reason, userID,
		"Booking cancellation refund - "+b.BookingReference)
}

// ===== HOST OPERATIONS =====

func (s *Service) ListHostBookings(ctx context.Context, hostID uuid.UUID, q ListQuery) ([]domain.Booking, error) {
	f := repository.BookingFilters{Status: q.Status, PaymentStatus: q.PaymentStatus}
	return s.bookings.ListByHotelOwnerID(ctx, hostID, f, q.Limit, q.Offset)
}

func (s *Service) GetHostBooking(ctx context.Context, hostID, bookingID uuid.UUID) (*domain.Booking, error) {
	b, err := s.hostBooking(ctx, hostID, bookingID)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) ConfirmBooking(ctx context.Context, hostID, bookingID uuid.UUID) (*domain.Booking, error) {
	b, err := s.hostBooking(ctx, hostID, bookingID)
	if err != nil {
		return nil, err
	}

	if b.Status == domain.BookingConfirmed {
		return nil, ErrAlreadyConfirmed
	}
	if b.Status != domain.BookingPending {
		return nil, ErrCannotConfirm
	}

	// Confirmation keeps the room held; no inventory movement.
	b.Status = domain.BookingConfirmed
	b.UpdatedBy = &hostID
	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) CancelBookingByHost(ctx context.Context, hostID, bookingID uuid.UUID, reason string) (*domain.Booking, error) {
	b, err := s.hostBooking(ctx, hostID, bookingID)
	if err != nil {
		return nil, err
	}
	memo := "Host cancelled booking refund - " + b.BookingReference
	if reason != "" {
		memo += " | Reason: " + reason
	}
	return s.cancel(ctx, b, domain.BookingCancelledByHost, domain.PaymentCancelled, reason, hostID, memo)
}

// ProcessCancellation is the host-driven cancellation with an explicit refund
// amount. Anything below the total is a partial refund; amounts above the
// total are rejected outright.
func (s *Service) ProcessCancellation(ctx context.Context, hostID, bookingID uuid.UUID, req ProcessCancellationRequest) (*domain.Booking, error) {
	b, err := s.hostBooking(ctx, hostID, bookingID)
	if err != nil {
		return nil, err
	}
	if err := cancellable(b); err != nil {
		return nil, err
	}

	refunded := false
	oldStatus := b.Status
	oldPayment := b.PaymentStatus
	oldReason := b.CancellationReason

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if b.PaymentStatus == domain.PaymentPaid && req.RefundAmount > 0 {
			if req.RefundAmount > b.TotalAmount {
				return ErrRefundExceedsTotal
			}

			memo := "Host cancelled booking refund - " + b.BookingReference
			if req.Reason != "" {
				memo += " | Reason: " + req.Reason
			}
			if err := s.refunds.Refund(ctx, b.UserID, req.RefundAmount, memo); err != nil {
				s.loggerf("level=error msg=refund failed during cancellation booking_id=%s err=%v", b.ID, err)
				return ErrRefundProcessingFailed
			}

			amount := req.RefundAmount
			b.RefundAmount = &amount
			if amount == b.TotalAmount {
				b.PaymentStatus = domain.PaymentRefunded
			} else {
				b.PaymentStatus = domain.PaymentPartiallyRefunded
			}
			refunded = true
		} else {
			b.PaymentStatus = domain.PaymentCancelled
		}

		b.Status = domain.BookingCancelledByHost
		b.CancellationReason = req.Reason
		b.UpdatedBy = &hostID

		if oldStatus.UsesRoom() {
			if _, err := s.roomTypes.Release(ctx, b.RoomTypeID); err != nil {
				return err
			}
		}
		return s.bookings.Save(ctx, b)
	})
	if err != nil {
		// The transaction rolled back; restore the in-memory snapshot so
		// callers never observe a half-applied transition.
		b.Status = oldStatus
		b.PaymentStatus = oldPayment
		b.RefundAmount = nil
		b.CancellationReason = oldReason
		return nil, err
	}

	if refunded {
		s.refunds.RevertCommission(ctx, b.ID)
	}
	return b, nil
}

// CompleteBooking is idempotent: completing an already completed booking
// returns it unchanged and releases nothing.
func (s *Service) CompleteBooking(ctx context.Context, hostID, bookingID uuid.UUID) (*domain.Booking, error) {
	b, err := s.hostBooking(ctx, hostID, bookingID)
	if err != nil {
		return nil, err
	}

	if b.Status.Cancelled() {
		return nil, ErrInvalidStatusTransition
	}
	if b.Status == domain.BookingCompleted {
		return b, nil
	}

	oldStatus := b.Status
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		b.Status = domain.BookingCompleted
		b.UpdatedBy = &hostID
		if oldStatus.UsesRoom() {
			if _, err := s.roomTypes.Release(ctx, b.RoomTypeID); err != nil {
				return err
			}
		}
		return s.bookings.Save(ctx, b)
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ConfirmPayment marks a booking paid. Admins may confirm any booking, hosts
// only bookings of hotels they own. Re-confirming a paid booking is a no-op.
func (s *Service) ConfirmPayment(ctx context.Context, actorID, bookingID uuid.UUID) (*domain.Booking, error) {
	actor, err := s.requireUser(ctx, actorID)
	if err != nil {
		return nil, err
	}

	var b *domain.Booking
	if actor.Role == domain.RoleAdmin {
		b, err = s.bookings.GetByID(ctx, bookingID)
		if err != nil {
			return nil, mapNotFound(err, ErrBookingNotFound)
		}
	} else {
		b, err = s.hostBooking(ctx, actorID, bookingID)
		if err != nil {
			return nil, err
		}
	}

	if b.Status.Cancelled() {
		return nil, ErrAlreadyCancelled
	}
	if b.PaymentStatus == domain.PaymentPaid {
		return b, nil
	}
	if b.PaymentStatus == domain.PaymentFailed {
		return nil, ErrPaymentFailed
	}

	b.PaymentStatus = domain.PaymentPaid
	b.UpdatedBy = &actorID
	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}

	if err := s.payments.Create(ctx, &domain.PaymentTransaction{
		BookingID: b.ID,
		Amount:    b.TotalAmount,
		Provider:  "manual",
		Reference: b.BookingReference,
	}); err != nil {
		s.loggerf("level=warn msg=failed to record payment transaction booking_id=%s err=%v", b.ID, err)
	}

	s.refunds.RecordCommission(ctx, b.ID)
	return b, nil
}

func (s *Service) UpdateHostBooking(ctx context.Context, hostID, bookingID uuid.UUID, req UpdateBookingRequest) (*domain.Booking, error) {
	b, err := s.hostBooking(ctx, hostID, bookingID)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, b, req, hostID)
}

// CheckInBooking marks the stay as checked in via the booking's QR code.
func (s *Service) CheckInBooking(ctx context.Context, hostID, bookingID uuid.UUID) (*domain.Booking, error) {
	b, err := s.hostBooking(ctx, hostID, bookingID)
	if err != nil {
		return nil, err
	}
	if b.QRCodeUsed {
		return nil, ErrAlreadyCheckedIn
	}
	b.QRCodeUsed = true
	b.UpdatedBy = &hostID
	if err := s.bookings.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) GetHostStats(ctx context.Context, hostID uuid.UUID) (*HostStats, error) {
	stats := &HostStats{}
	var err error
	if stats.TotalBookings, err = s.bookings.CountByHotelOwnerID(ctx, hostID, ""); err != nil {
		return nil, err
	}
	if stats.PendingBookings, err = s.bookings.CountByHotelOwnerID(ctx, hostID, string(domain.BookingPending)); err != nil {
		return nil, err
	}
	if stats.ConfirmedBookings, err = s.bookings.CountByHotelOwnerID(ctx, hostID, string(domain.BookingConfirmed)); err != nil {
		return nil, err
	}
	if stats.CompletedBookings, err = s.bookings.CountByHotelOwnerID(ctx, hostID, string(domain.BookingCompleted)); err != nil {
		return nil, err
	}
	if stats.TotalRevenue, err = s.bookings.RevenueByHotelOwnerID(ctx, hostID); err != nil {
		return nil, err
	}
	return stats, nil
}

// ===== ADMIN OPERATIONS =====

func (s *Service) ListAllBookings(ctx context.Context, q ListQuery) ([]domain.Booking, error) {
	f := repository.BookingFilters{Status: q.Status, PaymentStatus: q.PaymentStatus}
	return s.bookings.ListAll(ctx, f, q.Limit, q.Offset)
}

func (s *Service) GetBooking(ctx context.Context, bookingID uuid.UUID) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, mapNotFound(err, ErrBookingNotFound)
	}
	return b, nil
}

func (s *Service) UpdateBooking(ctx context.Context, adminID, bookingID uuid.UUID, req UpdateBookingRequest) (*domain.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, mapNotFound(err, ErrBookingNotFound)
	}
	return s.applyUpdate(ctx, b, req, adminID)
}

// DeleteBooking removes the booking and its dependent records. Inventory is
// released first when the booking still holds a unit; dependent-record
// cleanup failures are logged but do not block the delete.
func (s *Service) DeleteBooking(ctx context.Context, bookingID uuid.UUID) error {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return mapNotFound(err, ErrBookingNotFound)
	}

	return s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if b.Status.UsesRoom() {
			if _, err := s.roomTypes.Release(ctx, b.RoomTypeID); err != nil {
				return err
			}
		}
		if err := s.payments.DeleteByBookingID(ctx, b.ID); err != nil {
			s.loggerf("level=warn msg=failed to delete payment transactions booking_id=%s err=%v", b.ID, err)
		}
		if err := s.vouchers.DeleteUsagesByBookingID(ctx, b.ID); err != nil {
			s.loggerf("level=warn msg=failed to delete voucher usages booking_id=%s err=%v", b.ID, err)
		}
		return s.bookings.Delete(ctx, b.ID)
	})
}

// ===== AVAILABILITY =====

// IsRoomAvailable reports whether a room of the type can be reserved for
// [checkIn, checkOut). excludeID drops one booking from the conflict count,
// used when revalidating a booking's own date change.
func (s *Service) IsRoomAvailable(ctx context.Context, roomTypeID uuid.UUID, checkIn, checkOut time.Time, excludeID *uuid.UUID) (bool, error) {
	roomType, err := s.roomTypes.GetByID(ctx, roomTypeID)
	if err != nil {
		return false, mapNotFound(err, ErrRoomTypeNotFound)
	}
	return s.isAvailable(ctx, roomType, checkIn, checkOut, excludeID)
}

// isAvailable short-circuits on the availability counter, then lets the
// conflict count decide: available iff overlapping room-using bookings stay
// below capacity.
func (s *Service) isAvailable(ctx context.Context, roomType *domain.RoomType, checkIn, checkOut time.Time, excludeID *uuid.UUID) (bool, error) {
	if roomType.AvailableRooms <= 0 {
		return false, nil
	}
	conflicts, err := s.bookings.CountConflicting(ctx, roomType.ID, checkIn, checkOut, excludeID)
	if err != nil {
		return false, err
	}
	return conflicts < int64(roomType.TotalRooms), nil
}

// TODO: query the maintenance schedule table once it exists.
func (s *Service) underMaintenance(roomTypeID uuid.UUID, checkIn, checkOut time.Time) bool {
	return false
}

// ===== INTERNAL =====

func (s *Service) requireUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, mapNotFound(err, ErrUnauthenticated)
	}
	return u, nil
}

// hostBooking loads a booking through the owner scope. A booking that exists
// under another owner's hotel is an authorization failure, not a missing row.
func (s *Service) hostBooking(ctx context.Context, hostID, bookingID uuid.UUID) (*domain.Booking, error) {
	b, err := s.bookings.GetByIDAndHotelOwnerID(ctx, bookingID, hostID)
	if err == nil {
		return b, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if _, err := s.bookings.GetByID(ctx, bookingID); err != nil {
		return nil, mapNotFound(err, ErrBookingNotFound)
	}
	return nil, ErrAccessDenied
}

func cancellable(b *domain.Booking) error {
	if b.Status.Cancelled() {
		return ErrAlreadyCancelled
	}
	if b.Status == domain.BookingCompleted {
		return ErrCannotCancel
	}
	return nil
}

// cancel runs the shared cancellation transition. pendingTo is the payment
// resolution for a not-yet-paid booking: NO_PAYMENT for guest cancellations,
// CANCELLED for host ones. A paid booking is refunded in full; if the wallet
// credit fails the transaction rolls back and the booking keeps its previous
// status, with the payment flagged REFUND_PENDING only inside the failed
// attempt, never persisted.
func (s *Service) cancel(ctx context.Context, b *domain.Booking, target domain.BookingStatus, pendingTo domain.PaymentStatus, reason string, actorID uuid.UUID, refundMemo string) (*domain.Booking, error) {
	if err := cancellable(b); err != nil {
		return nil, err
	}

	oldStatus := b.Status
	originalPayment := b.PaymentStatus

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		b.Status = target
		b.CancellationReason = reason
		b.UpdatedBy = &actorID

		switch originalPayment {
		case domain.PaymentPending:
			b.PaymentStatus = pendingTo
		case domain.PaymentFailed:
			b.PaymentStatus = domain.PaymentCancelled
		case domain.PaymentPaid:
			amount := b.TotalAmount
			b.RefundAmount = &amount
			b.PaymentStatus = domain.PaymentRefunded
			if err := s.refunds.Refund(ctx, b.UserID, amount, refundMemo); err != nil {
				s.loggerf("level=error msg=refund failed during cancellation booking_id=%s err=%v", b.ID, err)
				b.PaymentStatus = domain.PaymentRefundPending
				b.RefundAmount = nil
				return ErrRefundProcessingFailed
			}
		default:
			b.PaymentStatus = domain.PaymentCancelled
			s.loggerf("level=info msg=booking cancelled payment_status=%s booking_id=%s", originalPayment, b.ID)
		}

		if oldStatus.UsesRoom() {
			if _, err := s.roomTypes.Release(ctx, b.RoomTypeID); err != nil {
				return err
			}
		}
		return s.bookings.Save(ctx, b)
	})
	if err != nil {
		// The transaction rolled back; restore the in-memory snapshot so
		// callers never observe a half-applied transition.
		b.Status = oldStatus
		b.PaymentStatus = originalPayment
		b.RefundAmount = nil
		b.CancellationReason = ""
		return nil, err
	}

	if originalPayment == domain.PaymentPaid {
		s.refunds.RevertCommission(ctx, b.ID)
	}
	return b, nil
}

// applyUpdate applies a host/admin field diff. A status change triggers
// inventory reconciliation: usage flipping off releases the unit, flipping on
// reserves one and fails with ErrNoRoomsAvailable when none is free.
func (s *Service) applyUpdate(ctx context.Context, b *domain.Booking, req UpdateBookingRequest, actorID uuid.UUID) (*domain.Booking, error) {
	if req.CheckInDate != nil && req.CheckOutDate != nil {
		checkIn, checkOut := dateOnly(*req.CheckInDate), dateOnly(*req.CheckOutDate)
		if err := validateBookingDates(checkIn, checkOut); err != nil {
			return nil, err
		}
		b.CheckInDate = checkIn
		b.CheckOutDate = checkOut
	}
	applyGuestFields(b, req)
	if req.Guests != nil {
		b.Guests = *req.Guests
	}
	b.UpdatedBy = &actorID

	oldStatus := b.Status
	statusChanged := req.Status != nil && *req.Status != oldStatus
	if statusChanged {
		if !req.Status.Valid() {
			return nil, ErrInvalidStatusTransition
		}
		b.Status = *req.Status
	}

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if statusChanged {
			if err := s.reconcileInventory(ctx, b, oldStatus, b.Status); err != nil {
				return err
			}
		}
		return s.bookings.Save(ctx, b)
	})
	if err != nil {
		b.Status = oldStatus
		return nil, err
	}
	return b, nil
}

func (s *Service) reconcileInventory(ctx context.Context, b *domain.Booking, oldStatus, newStatus domain.BookingStatus) error {
	wasUsing, isUsing := oldStatus.UsesRoom(), newStatus.UsesRoom()
	switch {
	case wasUsing && !isUsing:
		if _, err := s.roomTypes.Release(ctx, b.RoomTypeID); err != nil {
			return err
		}
		s.loggerf("level=info msg=room released on status change booking_id=%s %s->%s", b.ID, oldStatus, newStatus)
	case !wasUsing && isUsing:
		reserved, err := s.roomTypes.Reserve(ctx, b.RoomTypeID)
		if err != nil {
			return err
		}
		if !reserved {
			return ErrNoRoomsAvailable
		}
		s.loggerf("level=info msg=room reserved on status change booking_id=%s %s->%s", b.ID, oldStatus, newStatus)
	}
	return nil
}

func applyGuestFields(b *domain.Booking, req UpdateBookingRequest) {
	if req.GuestName != nil {
		b.GuestName = *req.GuestName
	}
	if req.GuestEmail != nil {
		b.GuestEmail = *req.GuestEmail
	}
	if req.GuestPhone != nil {
		b.GuestPhone = *req.GuestPhone
	}
	if req.SpecialRequests != nil {
		b.SpecialRequests = *req.SpecialRequests
	}
}

// ===== VALIDATION =====

func validateBookingDates(checkIn, checkOut time.Time) error {
	today := dateOnly(time.Now().UTC())

	if checkIn.Before(today) {
		return ErrCheckInDatePast
	}
	if !checkOut.After(checkIn) {
		return ErrCheckOutNotAfterCheckIn
	}
	if checkIn.After(today.AddDate(maxAdvanceYears, 0, 0)) {
		return ErrCheckInTooFarAhead
	}
	if int(checkOut.Sub(checkIn).Hours()/24) > maxStayNights {
		return ErrStayTooLong
	}
	return nil
}

func validateGuestCount(guests, maxOccupancy int) error {
	if guests <= 0 {
		return ErrInvalidGuestCount
	}
	if guests > maxOccupancy {
		return ErrGuestsExceedCapacity
	}
	if guests > largeGroupGuests {
		return ErrLargeGroupNeedsApproval
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func mapNotFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
