package domain

import (
	"time"

	"github.com/google/uuid"
)

type RevenueStatus string

const (
	RevenueRecorded RevenueStatus = "RECORDED"
	RevenueReverted RevenueStatus = "REVERTED"
)

// HotelRevenue is one commission entry per paid booking. Cancelling a paid
// booking flips the entry to REVERTED instead of deleting it.
type HotelRevenue struct {
	ID         uuid.UUID     `json:"id"`
	BookingID  uuid.UUID     `json:"booking_id"`
	HotelID    uuid.UUID     `json:"hotel_id"`
	Amount     int64         `json:"amount"`
	Commission int64         `json:"commission"`
	Status     RevenueStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}
