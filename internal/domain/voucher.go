package domain

import (
	"time"

	"github.com/google/uuid"
)

type VoucherStatus string

const (
	VoucherActive   VoucherStatus = "ACTIVE"
	VoucherInactive VoucherStatus = "INACTIVE"
	VoucherExpired  VoucherStatus = "EXPIRED"
	VoucherUsedUp   VoucherStatus = "USED_UP"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED"
)

type Voucher struct {
	ID            uuid.UUID     `json:"id"`
	Code          string        `json:"code"`
	HotelID       *uuid.UUID    `json:"hotel_id,omitempty"` // nil means platform-wide
	DiscountType  DiscountType  `json:"discount_type"`
	DiscountValue int64         `json:"discount_value"` // percent for PERCENTAGE, VND for FIXED
	MaxDiscount   *int64        `json:"max_discount,omitempty"`
	StartDate     time.Time     `json:"start_date"`
	EndDate       time.Time     `json:"end_date"`
	UsageLimit    *int          `json:"usage_limit,omitempty"`
	UsageCount    int           `json:"usage_count"`
	Status        VoucherStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

type VoucherUsage struct {
	ID             uuid.UUID `json:"id"`
	VoucherID      uuid.UUID `json:"voucher_id"`
	UserID         uuid.UUID `json:"user_id"`
	BookingID      uuid.UUID `json:"booking_id"`
	DiscountAmount int64     `json:"discount_amount"`
	CreatedAt      time.Time `json:"created_at"`
}
