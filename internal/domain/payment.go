package domain

import (
	"time"

	"github.com/google/uuid"
)

// PaymentTransaction is the audit row behind a payment confirmation. Rows
// are deleted together with their booking.
type PaymentTransaction struct {
	ID        uuid.UUID `json:"id"`
	BookingID uuid.UUID `json:"booking_id"`
	Amount    int64     `json:"amount"`
	Provider  string    `json:"provider"`
	Reference string    `json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}
