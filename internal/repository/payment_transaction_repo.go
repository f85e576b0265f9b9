package repository

import (
	"context"
	"time"

	"stayhub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentTransactionRepository struct {
	db *gorm.DB
}

func NewPaymentTransactionRepository(db *gorm.DB) *PaymentTransactionRepository {
	return &PaymentTransactionRepository{db: db}
}

type paymentTransactionModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	BookingID uuid.UUID `gorm:"column:booking_id;type:uuid;index"`
	Amount    int64     `gorm:"column:amount"`
	Provider  string    `gorm:"column:provider"`
	Reference string    `gorm:"column:reference"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (paymentTransactionModel) TableName() string { return "payment_transactions" }

func (r *PaymentTransactionRepository) Create(ctx context.Context, t *domain.PaymentTransaction) error {
	m := paymentTransactionModel{
		ID:        t.ID,
		BookingID: t.BookingID,
		Amount:    t.Amount,
		Provider:  t.Provider,
		Reference: t.Reference,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	tx := dbFrom(ctx, r.db).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	t.ID = m.ID
	t.CreatedAt = m.CreatedAt
	return nil
}

func (r *PaymentTransactionRepository) DeleteByBookingID(ctx context.Context, bookingID uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&paymentTransactionModel{}, "booking_id = ?", bookingID).Error
}
