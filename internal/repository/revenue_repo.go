package repository

import (
	"context"
	"time"

	"stayhub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RevenueRepository struct {
	db *gorm.DB
}

func NewRevenueRepository(db *gorm.DB) *RevenueRepository {
	return &RevenueRepository{db: db}
}

type hotelRevenueModel struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	BookingID  uuid.UUID `gorm:"column:booking_id;type:uuid;uniqueIndex"`
	HotelID    uuid.UUID `gorm:"column:hotel_id;type:uuid;index"`
	Amount     int64     `gorm:"column:amount"`
	Commission int64     `gorm:"column:commission"`
	Status     string    `gorm:"column:status"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (hotelRevenueModel) TableName() string { return "hotel_revenues" }

func (r *RevenueRepository) Create(ctx context.Context, rev *domain.HotelRevenue) error {
	m := hotelRevenueModel{
		ID:         rev.ID,
		BookingID:  rev.BookingID,
		HotelID:    rev.HotelID,
		Amount:     rev.Amount,
		Commission: rev.Commission,
		Status:     string(rev.Status),
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	tx := dbFrom(ctx, r.db).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	rev.ID = m.ID
	rev.CreatedAt = m.CreatedAt
	rev.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *RevenueRepository) GetByBookingID(ctx context.Context, bookingID uuid.UUID) (*domain.HotelRevenue, error) {
	var m hotelRevenueModel
	tx := dbFrom(ctx, r.db).First(&m, "booking_id = ?", bookingID)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &domain.HotelRevenue{
		ID:         m.ID,
		BookingID:  m.BookingID,
		HotelID:    m.HotelID,
		Amount:     m.Amount,
		Commission: m.Commission,
		Status:     domain.RevenueStatus(m.Status),
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}, nil
}

// MarkReverted flips a recorded entry to REVERTED. Returns false when there
// is no recorded entry for the booking.
func (r *RevenueRepository) MarkReverted(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	tx := dbFrom(ctx, r.db).
		Model(&hotelRevenueModel{}).
		Where("booking_id = ? AND status = ?", bookingID, string(domain.RevenueRecorded)).
		UpdateColumn("status", string(domain.RevenueReverted))
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
