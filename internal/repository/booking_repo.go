package repository

import (
	"context"
	"time"

	"stayhub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID                 uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	BookingReference   string     `gorm:"column:booking_reference;uniqueIndex"`
	HotelID            uuid.UUID  `gorm:"column:hotel_id;type:uuid;index"`
	RoomTypeID         uuid.UUID  `gorm:"column:room_type_id;type:uuid;index"`
	UserID             uuid.UUID  `gorm:"column:user_id;type:uuid;index"`
	GuestName          string     `gorm:"column:guest_name"`
	GuestEmail         string     `gorm:"column:guest_email"`
	GuestPhone         *string    `gorm:"column:guest_phone"`
	CheckInDate        time.Time  `gorm:"column:check_in_date"`
	CheckOutDate       time.Time  `gorm:"column:check_out_date"`
	Guests             int        `gorm:"column:guests"`
	TotalAmount        int64      `gorm:"column:total_amount"`
	RefundAmount       *int64     `gorm:"column:refund_amount"`
	Status             string     `gorm:"column:status;index"`
	PaymentStatus      string     `gorm:"column:payment_status;index"`
	CancellationReason *string    `gorm:"column:cancellation_reason"`
	SpecialRequests    *string    `gorm:"column:special_requests"`
	QRCodeUsed         bool       `gorm:"column:qr_code_used"`
	CreatedBy          *uuid.UUID `gorm:"column:created_by;type:uuid"`
	UpdatedBy          *uuid.UUID `gorm:"column:updated_by;type:uuid"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func strOrEmpty(p *string) string {
	if p != nil {
		return *p
	}
	return ""
}

func strOrNil(s string) *string {
	if s == "" {
		return nil
	}
	v := s
	return &v
}

func toDomainBooking(m bookingModel) *domain.Booking {
	return &domain.Booking{
		ID:                 m.ID,
		BookingReference:   m.BookingReference,
		HotelID:            m.HotelID,
		RoomTypeID:         m.RoomTypeID,
		UserID:             m.UserID,
		GuestName:          m.GuestName,
		GuestEmail:         m.GuestEmail,
		GuestPhone:         strOrEmpty(m.GuestPhone),
		CheckInDate:        m.CheckInDate,
		CheckOutDate:       m.CheckOutDate,
		Guests:             m.Guests,
		TotalAmount:        m.TotalAmount,
		RefundAmount:       m.RefundAmount,
		Status:             domain.BookingStatus(m.Status),
		PaymentStatus:      domain.PaymentStatus(m.PaymentStatus),
		CancellationReason: strOrEmpty(m.CancellationReason),
		SpecialRequests:    strOrEmpty(m.SpecialRequests),
		QRCodeUsed:         m.QRCodeUsed,
		CreatedBy:          m.CreatedBy,
		UpdatedBy:          m.UpdatedBy,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) bookingModel {
	return bookingModel{
		ID:                 b.ID,
		BookingReference:   b.BookingReference,
		HotelID:            b.HotelID,
		RoomTypeID:         b.RoomTypeID,
		UserID:             b.UserID,
		GuestName:          b.GuestName,
		GuestEmail:         b.GuestEmail,
		GuestPhone:         strOrNil(b.GuestPhone),
		CheckInDate:        b.CheckInDate,
		CheckOutDate:       b.CheckOutDate,
		Guests:             b.Guests,
		TotalAmount:        b.TotalAmount,
		RefundAmount:       b.RefundAmount,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		CancellationReason: strOrNil(b.CancellationReason),
		SpecialRequests:    strOrNil(b.SpecialRequests),
		QRCodeUsed:         b.QRCodeUsed,
		CreatedBy:          b.CreatedBy,
		UpdatedBy:          b.UpdatedBy,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	tx := dbFrom(ctx, r.db).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) Save(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	tx := dbFrom(ctx, r.db).Save(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	var m bookingModel
	tx := dbFrom(ctx, r.db).First(&m, "id = ?", id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) GetByIDAndUserID(ctx context.Context, id, userID uuid.UUID) (*domain.Booking, error) {
	var m bookingModel
	tx := dbFrom(ctx, r.db).First(&m, "id = ? AND user_id = ?", id, userID)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

// GetByIDAndHotelOwnerID scopes a lookup to bookings of hotels the given
// user owns. Host operations go through this instead of a separate
// ownership check.
func (r *BookingRepository) GetByIDAndHotelOwnerID(ctx context.Context, id, ownerID uuid.UUID) (*domain.Booking, error) {
	var m bookingModel
	tx := dbFrom(ctx, r.db).
		Joins("JOIN hotels ON hotels.id = bookings.hotel_id").
		Where("bookings.id = ? AND hotels.owner_id = ?", id, ownerID).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBooking(m), nil
}

func (r *BookingRepository) ListByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]domain.Booking, error) {
	var ms []bookingModel
	tx := dbFrom(ctx, r.db).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

type BookingFilters struct {
	Status        string
	PaymentStatus string
}

func (r *BookingRepository) ListByHotelOwnerID(ctx context.Context, ownerID uuid.UUID, f BookingFilters, limit, offset int) ([]domain.Booking, error) {
	q := dbFrom(ctx, r.db).
		Table("bookings").
		Joins("JOIN hotels ON hotels.id = bookings.hotel_id").
		Where("hotels.owner_id = ?", ownerID)
	q = applyBookingFilters(q, f)

	var ms []bookingModel
	tx := q.Order("bookings.created_at DESC").Limit(limit).Offset(offset).Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

func (r *BookingRepository) ListAll(ctx context.Context, f BookingFilters, limit, offset int) ([]domain.Booking, error) {
	q := applyBookingFilters(dbFrom(ctx, r.db).Model(&bookingModel{}), f)

	var ms []bookingModel
	tx := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&ms)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBookings(ms), nil
}

func applyBookingFilters(q *gorm.DB, f BookingFilters) *gorm.DB {
	if f.Status != "" {
		q = q.Where("bookings.status = ?", f.Status)
	}
	if f.PaymentStatus != "" {
		q = q.Where("bookings.payment_status = ?", f.PaymentStatus)
	}
	return q
}

func toDomainBookings(ms []bookingModel) []domain.Booking {
	out := make([]domain.Booking, 0, len(ms))
	for _, m := range ms {
		out = append(out, *toDomainBooking(m))
	}
	return out
}

// CountConflicting counts room-using bookings of the room type whose
// [check_in, check_out) range overlaps the given one. The overlap test and
// the status set must stay consistent with the inventory invariant: one held
// unit per PENDING/CONFIRMED booking.
func (r *BookingRepository) CountConflicting(ctx context.Context, roomTypeID uuid.UUID, checkIn, checkOut time.Time, excludeID *uuid.UUID) (int64, error) {
	q := dbFrom(ctx, r.db).
		Model(&bookingModel{}).
		Where("room_type_id = ?", roomTypeID).
		Where("status IN ?", []string{string(domain.BookingPending), string(domain.BookingConfirmed)}).
		Where("check_in_date < ? AND check_out_date > ?", checkOut, checkIn)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}

	var cnt int64
	tx := q.Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

func (r *BookingRepository) ReferenceExists(ctx context.Context, reference string) (bool, error) {
	var cnt int64
	tx := dbFrom(ctx, r.db).
		Model(&bookingModel{}).
		Where("booking_reference = ?", reference).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

func (r *BookingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&bookingModel{}, "id = ?", id).Error
}

func (r *BookingRepository) CountByHotelOwnerID(ctx context.Context, ownerID uuid.UUID, status string) (int64, error) {
	q := dbFrom(ctx, r.db).
		Table("bookings").
		Joins("JOIN hotels ON hotels.id = bookings.hotel_id").
		Where("hotels.owner_id = ?", ownerID)
	if status != "" {
		q = q.Where("bookings.status = ?", status)
	}

	var cnt int64
	tx := q.Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}

// RevenueByHotelOwnerID sums paid booking amounts across the owner's hotels.
func (r *BookingRepository) RevenueByHotelOwnerID(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var total *int64
	q := `
SELECT SUM(b.total_amount)
FROM bookings b
JOIN hotels h ON h.id = b.hotel_id
WHERE h.owner_id = ? AND b.payment_status = ?
`
	tx := dbFrom(ctx, r.db).Raw(q, ownerID, string(domain.PaymentPaid)).Scan(&total)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}
