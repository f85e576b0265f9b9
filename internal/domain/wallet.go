package domain

import (
	"time"

	"github.com/google/uuid"
)

type WalletTransactionType string

const (
	WalletRefund WalletTransactionType = "REFUND"
	WalletDebit  WalletTransactionType = "DEBIT"
)

type WalletTransaction struct {
	ID        uuid.UUID             `json:"id"`
	UserID    uuid.UUID             `json:"user_id"`
	Type      WalletTransactionType `json:"type"`
	Amount    int64                 `json:"amount"`
	Memo      string                `json:"memo,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
}
