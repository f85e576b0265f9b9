package domain

import (
	"time"

	"github.com/google/uuid"
)

type Hotel struct {
	ID             uuid.UUID `json:"id"`
	OwnerID        uuid.UUID `json:"owner_id"`
	Name           string    `json:"name"`
	City           string    `json:"city,omitempty"`
	Address        string    `json:"address,omitempty"`
	Active         bool      `json:"active"`
	CommissionRate float64   `json:"commission_rate"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RoomType carries the inventory counter for one bookable room category.
// AvailableRooms stays within [0, TotalRooms]; every mutation goes through
// the room type repository's Reserve/Release so the bound holds under
// concurrent bookings.
type RoomType struct {
	ID             uuid.UUID `json:"id"`
	HotelID        uuid.UUID `json:"hotel_id"`
	Name           string    `json:"name"`
	MaxOccupancy   int       `json:"max_occupancy"`
	TotalRooms     int       `json:"total_rooms"`
	AvailableRooms int       `json:"available_rooms"`
	PricePerNight  int64     `json:"price_per_night"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
