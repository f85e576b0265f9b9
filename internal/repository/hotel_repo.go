package repository

import (
	"context"
	"time"

	"stayhub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

type hotelModel struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OwnerID        uuid.UUID `gorm:"column:owner_id;type:uuid;index"`
	Name           string    `gorm:"column:name"`
	City           *string   `gorm:"column:city"`
	Address        *string   `gorm:"column:address"`
	Active         bool      `gorm:"column:active"`
	CommissionRate float64   `gorm:"column:commission_rate"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (hotelModel) TableName() string { return "hotels" }

func toDomainHotel(m hotelModel) *domain.Hotel {
	return &domain.Hotel{
		ID:             m.ID,
		OwnerID:        m.OwnerID,
		Name:           m.Name,
		City:           strOrEmpty(m.City),
		Address:        strOrEmpty(m.Address),
		Active:         m.Active,
		CommissionRate: m.CommissionRate,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func (r *HotelRepository) Create(ctx context.Context, h *domain.Hotel) error {
	m := hotelModel{
		ID:             h.ID,
		OwnerID:        h.OwnerID,
		Name:           h.Name,
		City:           strOrNil(h.City),
		Address:        strOrNil(h.Address),
		Active:         h.Active,
		CommissionRate: h.CommissionRate,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	tx := dbFrom(ctx, r.db).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*h = *toDomainHotel(m)
	return nil
}

func (r *HotelRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Hotel, error) {
	var m hotelModel
	tx := dbFrom(ctx, r.db).First(&m, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainHotel(m), nil
}
