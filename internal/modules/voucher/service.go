package voucher

import (
	"context"
	"errors"
	"log"
	"time"

	"stayhub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	vouchers VoucherRepository
	now      func() time.Time
	loggerf  func(format string, args ...interface{})
}

func NewService(vouchers VoucherRepository, loggerf func(format string, args ...interface{})) *Service {
	if loggerf == nil {
		loggerf = log.Printf
	}
	return &Service{vouchers: vouchers, now: time.Now, loggerf: loggerf}
}

// Apply validates the code against the booking and records a usage. The
// usage counter bump is atomic, so two concurrent applications of the last
// use cannot both succeed.
func (s *Service) Apply(ctx context.Context, code string, userID, bookingID uuid.UUID, amount int64, hotelID uuid.UUID) error {
	v, err := s.vouchers.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrVoucherNotFound
		}
		return err
	}

	if v.Status != domain.VoucherActive {
		return ErrVoucherInactive
	}
	now := s.now()
	if now.Before(v.StartDate) || now.After(v.EndDate) {
		return ErrVoucherNotOpen
	}
	if v.HotelID != nil && *v.HotelID != hotelID {
		return ErrVoucherWrongShop
	}

	ok, err := s.vouchers.IncrementUsage(ctx, v.ID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrVoucherUsedUp
	}

	usage := &domain.VoucherUsage{
		VoucherID:      v.ID,
		UserID:         userID,
		BookingID:      bookingID,
		DiscountAmount: CalculateDiscount(v, amount),
	}
	if err := s.vouchers.CreateUsage(ctx, usage); err != nil {
		return err
	}
	s.loggerf("level=info msg=voucher applied code=%s booking_id=%s discount=%d", code, bookingID, usage.DiscountAmount)
	return nil
}

func (s *Service) DeleteUsagesByBookingID(ctx context.Context, bookingID uuid.UUID) error {
	return s.vouchers.DeleteUsagesByBookingID(ctx, bookingID)
}

// CalculateDiscount never exceeds the booking amount. Percentage discounts
// respect the optional cap; fixed discounts clamp to the amount.
func CalculateDiscount(v *domain.Voucher, amount int64) int64 {
	var discount int64
	switch v.DiscountType {
	case domain.DiscountPercentage:
		discount = amount * v.DiscountValue / 100
		if v.MaxDiscount != nil && discount > *v.MaxDiscount {
			discount = *v.MaxDiscount
		}
	case domain.DiscountFixed:
		discount = v.DiscountValue
	}
	if discount > amount {
		discount = amount
	}
	if discount < 0 {
		discount = 0
	}
	return discount
}

// ExpireDue sweeps ACTIVE vouchers, expiring those past their end date and
// marking exhausted ones used up. Returns how many rows changed.
func (s *Service) ExpireDue(ctx context.Context) (int, error) {
	now := s.now()
	active, err := s.vouchers.ListActive(ctx, now)
	if err != nil {
		return 0, err
	}

	changed := 0
	for i := range active {
		v := &active[i]
		switch {
		case now.After(v.EndDate):
			v.Status = domain.VoucherExpired
		case v.UsageLimit != nil && v.UsageCount >= *v.UsageLimit:
			v.Status = domain.VoucherUsedUp
		default:
			continue
		}
		if err := s.vouchers.Save(ctx, v); err != nil {
			s.loggerf("level=warn msg=failed to update voucher status code=%s err=%v", v.Code, err)
			continue
		}
		changed++
	}
	if changed > 0 {
		s.loggerf("level=info msg=voucher sweep finished updated=%d", changed)
	}
	return changed, nil
}
