package repository

import (
	"context"
	"time"

	"stayhub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoomTypeRepository struct {
	db *gorm.DB
}

func NewRoomTypeRepository(db *gorm.DB) *RoomTypeRepository {
	return &RoomTypeRepository{db: db}
}

type roomTypeModel struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	HotelID        uuid.UUID `gorm:"column:hotel_id;type:uuid;index"`
	Name           string    `gorm:"column:name"`
	MaxOccupancy   int       `gorm:"column:max_occupancy"`
	TotalRooms     int       `gorm:"column:total_rooms"`
	AvailableRooms int       `gorm:"column:available_rooms"`
	PricePerNight  int64     `gorm:"column:price_per_night"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (roomTypeModel) TableName() string { return "room_types" }

func toDomainRoomType(m roomTypeModel) *domain.RoomType {
	return &domain.RoomType{
		ID:             m.ID,
		HotelID:        m.HotelID,
		Name:           m.Name,
		MaxOccupancy:   m.MaxOccupancy,
		TotalRooms:     m.TotalRooms,
		AvailableRooms: m.AvailableRooms,
		PricePerNight:  m.PricePerNight,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

func (r *RoomTypeRepository) Create(ctx context.Context, rt *domain.RoomType) error {
	m := roomTypeModel{
		ID:             rt.ID,
		HotelID:        rt.HotelID,
		Name:           rt.Name,
		MaxOccupancy:   rt.MaxOccupancy,
		TotalRooms:     rt.TotalRooms,
		AvailableRooms: rt.AvailableRooms,
		PricePerNight:  rt.PricePerNight,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	tx := dbFrom(ctx, r.db).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*rt = *toDomainRoomType(m)
	return nil
}

func (r *RoomTypeRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.RoomType, error) {
	var m roomTypeModel
	tx := dbFrom(ctx, r.db).First(&m, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainRoomType(m), nil
}

// Reserve takes one unit of inventory. The guard and decrement are a single
// UPDATE, so concurrent reservations serialize on the row: the last unit goes
// to exactly one caller. Returns false when no rooms are left.
func (r *RoomTypeRepository) Reserve(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := dbFrom(ctx, r.db).
		Model(&roomTypeModel{}).
		Where("id = ? AND available_rooms > 0", id).
		UpdateColumn("available_rooms", gorm.Expr("available_rooms - 1"))
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

// Release returns one unit. The available < total guard makes a duplicate
// release a no-op instead of pushing the counter past capacity.
func (r *RoomTypeRepository) Release(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := dbFrom(ctx, r.db).
		Model(&roomTypeModel{}).
		Where("id = ? AND available_rooms < total_rooms", id).
		UpdateColumn("available_rooms", gorm.Expr("available_rooms + 1"))
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
