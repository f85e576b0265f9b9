package domain

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingPending          BookingStatus = "PENDING"
	BookingConfirmed        BookingStatus = "CONFIRMED"
	BookingCompleted        BookingStatus = "COMPLETED"
	BookingCancelled        BookingStatus = "CANCELLED"
	BookingCancelledByGuest BookingStatus = "CANCELLED_BY_GUEST"
	BookingCancelledByHost  BookingStatus = "CANCELLED_BY_HOST"
	BookingNoShow           BookingStatus = "NO_SHOW"
)

// UsesRoom reports whether a booking in this status holds one unit of its
// room type's inventory.
func (s BookingStatus) UsesRoom() bool {
	return s == BookingPending || s == BookingConfirmed
}

// Cancelled covers all three cancellation variants.
func (s BookingStatus) Cancelled() bool {
	return s == BookingCancelled || s == BookingCancelledByGuest || s == BookingCancelledByHost
}

func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingNoShow || s.Cancelled()
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted,
		BookingCancelled, BookingCancelledByGuest, BookingCancelledByHost, BookingNoShow:
		return true
	}
	return false
}

type PaymentStatus string

const (
	PaymentNoPayment         PaymentStatus = "NO_PAYMENT"
	PaymentPending           PaymentStatus = "PENDING"
	PaymentPaid              PaymentStatus = "PAID"
	PaymentFailed            PaymentStatus = "FAILED"
	PaymentRefunded          PaymentStatus = "REFUNDED"
	PaymentPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
	PaymentRefundPending     PaymentStatus = "REFUND_PENDING"
	PaymentCancelled         PaymentStatus = "CANCELLED"
)

// Booking amounts are VND, which has no fractional unit, so money is int64.
type Booking struct {
	ID                 uuid.UUID     `json:"id"`
	BookingReference   string        `json:"booking_reference"`
	HotelID            uuid.UUID     `json:"hotel_id"`
	RoomTypeID         uuid.UUID     `json:"room_type_id"`
	UserID             uuid.UUID     `json:"user_id"`
	GuestName          string        `json:"guest_name"`
	GuestEmail         string        `json:"guest_email"`
	GuestPhone         string        `json:"guest_phone,omitempty"`
	CheckInDate        time.Time     `json:"check_in_date"`
	CheckOutDate       time.Time     `json:"check_out_date"`
	Guests             int           `json:"guests"`
	TotalAmount        int64         `json:"total_amount"`
	RefundAmount       *int64        `json:"refund_amount,omitempty"`
	Status             BookingStatus `json:"status"`
	PaymentStatus      PaymentStatus `json:"payment_status"`
	CancellationReason string        `json:"cancellation_reason,omitempty"`
	SpecialRequests    string        `json:"special_requests,omitempty"`
	QRCodeUsed         bool          `json:"qr_code_used"`
	CreatedBy          *uuid.UUID    `json:"created_by,omitempty"`
	UpdatedBy          *uuid.UUID    `json:"updated_by,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}
