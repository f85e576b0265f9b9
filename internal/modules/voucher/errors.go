package voucher

import "errors"

var (
	ErrVoucherNotFound  = errors.New("voucher not found")
	ErrVoucherInactive  = errors.New("voucher is not active")
	ErrVoucherNotOpen   = errors.New("voucher is outside its validity window")
	ErrVoucherUsedUp    = errors.New("voucher usage limit reached")
	ErrVoucherWrongShop = errors.New("voucher is not valid for this hotel")
)
