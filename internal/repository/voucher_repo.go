package repository

import (
	"context"
	"time"

	"stayhub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VoucherRepository struct {
	db *gorm.DB
}

func NewVoucherRepository(db *gorm.DB) *VoucherRepository {
	return &VoucherRepository{db: db}
}

type voucherModel struct {
	ID            uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Code          string     `gorm:"column:code;uniqueIndex"`
	HotelID       *uuid.UUID `gorm:"column:hotel_id;type:uuid;index"`
	DiscountType  string     `gorm:"column:discount_type"`
	DiscountValue int64      `gorm:"column:discount_value"`
	MaxDiscount   *int64     `gorm:"column:max_discount"`
	StartDate     time.Time  `gorm:"column:start_date"`
	EndDate       time.Time  `gorm:"column:end_date"`
	UsageLimit    *int       `gorm:"column:usage_limit"`
	UsageCount    int        `gorm:"column:usage_count"`
	Status        string     `gorm:"column:status;index"`
	CreatedAt     time.Time  `gorm:"column:created_at"`
	UpdatedAt     time.Time  `gorm:"column:updated_at"`
}

func (voucherModel) TableName() string { return "vouchers" }

type voucherUsageModel struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	VoucherID      uuid.UUID `gorm:"column:voucher_id;type:uuid;index"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;index"`
	BookingID      uuid.UUID `gorm:"column:booking_id;type:uuid;index"`
	DiscountAmount int64     `gorm:"column:discount_amount"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (voucherUsageModel) TableName() string { return "voucher_usages" }

func toDomainVoucher(m voucherModel) *domain.Voucher {
	return &domain.Voucher{
		ID:            m.ID,
		Code:          m.Code,
		HotelID:       m.HotelID,
		DiscountType:  domain.DiscountType(m.DiscountType),
		DiscountValue: m.DiscountValue,
		MaxDiscount:   m.MaxDiscount,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		UsageLimit:    m.UsageLimit,
		UsageCount:    m.UsageCount,
		Status:        domain.VoucherStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toVoucherModel(v *domain.Voucher) voucherModel {
	return voucherModel{
		ID:            v.ID,
		Code:          v.Code,
		HotelID:       v.HotelID,
		DiscountType:  string(v.DiscountType),
		DiscountValue: v.DiscountValue,
		MaxDiscount:   v.MaxDiscount,
		StartDate:     v.StartDate,
		EndDate:       v.EndDate,
		UsageLimit:    v.UsageLimit,
		UsageCount:    v.UsageCount,
		Status:        string(v.Status),
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func (r *VoucherRepository) Create(ctx context.Context, v *domain.Voucher) error {
	m := toVoucherModel(v)
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	tx := dbFrom(ctx, r.db).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*v = *toDomainVoucher(m)
	return nil
}

func (r *VoucherRepository) Save(ctx context.Context, v *domain.Voucher) error {
	m := toVoucherModel(v)
	tx := dbFrom(ctx, r.db).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*v = *toDomainVoucher(m)
	return nil
}

func (r *VoucherRepository) GetByCode(ctx context.Context, code string) (*domain.Voucher, error) {
	var m voucherModel
	tx := dbFrom(ctx, r.db).First(&m, "code = ?", code)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainVoucher(m), nil
}

// ListActive returns ACTIVE vouchers whose window has started; the sweep
// decides which of them to expire or mark used up.
func (r *VoucherRepository) ListActive(ctx context.Context, now time.Time) ([]domain.Voucher, error) {
	var ms []voucherModel
	tx := dbFrom(ctx, r.db).
		Where("status = ? AND start_date <= ?", string(domain.VoucherActive), now).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	out := make([]domain.Voucher, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainVoucher(m))
	}
	return out, nil
}

// IncrementUsage bumps usage_count atomically, refusing once the limit is hit.
func (r *VoucherRepository) IncrementUsage(ctx context.Context, id uuid.UUID) (bool, error) {
	tx := dbFrom(ctx, r.db).
		Model(&voucherModel{}).
		Where("id = ? AND (usage_limit IS NULL OR usage_count < usage_limit)", id).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *VoucherRepository) CreateUsage(ctx context.Context, u *domain.VoucherUsage) error {
	m := voucherUsageModel{
		ID:             u.ID,
		VoucherID:      u.VoucherID,
		UserID:         u.UserID,
		BookingID:      u.BookingID,
		DiscountAmount: u.DiscountAmount,
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	tx := dbFrom(ctx, r.db).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	u.ID = m.ID
	u.CreatedAt = m.CreatedAt
	return nil
}

func (r *VoucherRepository) DeleteUsagesByBookingID(ctx context.Context, bookingID uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&voucherUsageModel{}, "booking_id = ?", bookingID).Error
}
