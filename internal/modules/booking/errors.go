package booking

import "errors"

var (
	ErrBookingNotFound  = errors.New("booking not found")
	ErrHotelNotFound    = errors.New("hotel not found")
	ErrRoomTypeNotFound = errors.New("room type not found")
	ErrUnauthenticated  = errors.New("authentication required")
	ErrAccessDenied     = errors.New("access denied")

	ErrHotelNotBookable = errors.New("hotel is not accepting bookings")

	ErrCheckInDatePast         = errors.New("check-in date is in the past")
	ErrCheckOutNotAfterCheckIn = errors.New("check-out date must be after check-in date")
	ErrCheckInTooFarAhead      = errors.New("check-in date is too far in the future")
	ErrStayTooLong             = errors.New("stay duration exceeds the maximum")

	ErrInvalidGuestCount       = errors.New("invalid guest count")
	ErrGuestsExceedCapacity    = errors.New("guest count exceeds room capacity")
	ErrLargeGroupNeedsApproval = errors.New("large groups need manual approval")

	ErrNoRoomsAvailable     = errors.New("no rooms available")
	ErrRoomUnderMaintenance = errors.New("room type is under maintenance")

	ErrAlreadyCancelled        = errors.New("booking is already cancelled")
	ErrCannotCancel            = errors.New("booking cannot be cancelled")
	ErrAlreadyConfirmed        = errors.New("booking is already confirmed")
	ErrCannotConfirm           = errors.New("only pending bookings can be confirmed")
	ErrInvalidStatusTransition = errors.New("invalid booking status transition")
	ErrAlreadyCheckedIn        = errors.New("booking is already checked in")

	ErrPaymentFailed          = errors.New("payment already failed for this booking")
	ErrRefundProcessingFailed = errors.New("refund processing failed")
	ErrRefundExceedsTotal     = errors.New("refund amount exceeds booking total")

	ErrReferenceExhausted = errors.New("booking reference space exhausted")
	ErrDuplicateReference = errors.New("booking reference collision")
)
