package refund

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeWallet struct {
	err   error
	calls int
}

func (f *fakeWallet) AddRefund(ctx context.Context, userID uuid.UUID, amount int64, memo string) error {
	f.calls++
	return f.err
}

type fakeRevenue struct {
	recordErr   error
	revertErr   error
	recordCalls int
	revertCalls int
}

func (f *fakeRevenue) RecordBookingRevenue(ctx context.Context, bookingID uuid.UUID) error {
	f.recordCalls++
	return f.recordErr
}

func (f *fakeRevenue) RevertBookingRevenue(ctx context.Context, bookingID uuid.UUID) error {
	f.revertCalls++
	return f.revertErr
}

func TestRefund_PropagatesWalletError(t *testing.T) {
	wallet := &fakeWallet{err: errors.New("wallet down")}
	svc := NewService(wallet, &fakeRevenue{}, func(string, ...interface{}) {})

	err := svc.Refund(context.Background(), uuid.New(), 100_000, "memo")
	assert.Error(t, err)
	assert.Equal(t, 1, wallet.calls)
}

func TestRefund_Success(t *testing.T) {
	wallet := &fakeWallet{}
	svc := NewService(wallet, &fakeRevenue{}, func(string, ...interface{}) {})

	assert.NoError(t, svc.Refund(context.Background(), uuid.New(), 100_000, "memo"))
	assert.Equal(t, 1, wallet.calls)
}

func TestCommissionCalls_SwallowErrors(t *testing.T) {
	revenue := &fakeRevenue{
		recordErr: errors.New("ledger down"),
		revertErr: errors.New("ledger down"),
	}
	svc := NewService(&fakeWallet{}, revenue, func(string, ...interface{}) {})

	// Best-effort: neither call can fail the caller.
	svc.RecordCommission(context.Background(), uuid.New())
	svc.RevertCommission(context.Background(), uuid.New())

	assert.Equal(t, 1, revenue.recordCalls)
	assert.Equal(t, 1, revenue.revertCalls)
}
