package booking

import (
	"time"

	"stayhub/internal/domain"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	HotelID         uuid.UUID `json:"hotel_id" binding:"required"`
	RoomTypeID      uuid.UUID `json:"room_type_id" binding:"required"`
	CheckInDate     time.Time `json:"check_in_date" binding:"required"`
	CheckOutDate    time.Time `json:"check_out_date" binding:"required"`
	Guests          int       `json:"guests" binding:"required"`
	TotalAmount     int64     `json:"total_amount" binding:"required"`
	VoucherCode     string    `json:"voucher_code"`
	SpecialRequests string    `json:"special_requests"`
}

// UpdateBookingRequest carries field diffs; nil means "leave unchanged".
// Status is honored for host/admin updates only.
type UpdateBookingRequest struct {
	GuestName       *string               `json:"guest_name"`
	GuestEmail      *string               `json:"guest_email"`
	GuestPhone      *string               `json:"guest_phone"`
	CheckInDate     *time.Time            `json:"check_in_date"`
	CheckOutDate    *time.Time            `json:"check_out_date"`
	Guests          *int                  `json:"guests"`
	SpecialRequests *string               `json:"special_requests"`
	Status          *domain.BookingStatus `json:"status"`
}

type CancellationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ProcessCancellationRequest struct {
	RefundAmount int64  `json:"refund_amount"`
	Reason       string `json:"reason"`
}

type ListQuery struct {
	Status        string `form:"status"`
	PaymentStatus string `form:"payment_status"`
	Limit         int    `form:"limit,default=20"`
	Offset        int    `form:"offset,default=0"`
}

type HostStats struct {
	TotalBookings     int64 `json:"total_bookings"`
	PendingBookings   int64 `json:"pending_bookings"`
	ConfirmedBookings int64 `json:"confirmed_bookings"`
	CompletedBookings int64 `json:"completed_bookings"`
	TotalRevenue      int64 `json:"total_revenue"`
}
