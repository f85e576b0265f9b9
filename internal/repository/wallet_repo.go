package repository

import (
	"context"
	"time"

	"stayhub/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WalletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

type walletTransactionModel struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;index"`
	Type      string    `gorm:"column:type"`
	Amount    int64     `gorm:"column:amount"`
	Memo      *string   `gorm:"column:memo"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (walletTransactionModel) TableName() string { return "wallet_transactions" }

func (r *WalletRepository) CreateTransaction(ctx context.Context, t *domain.WalletTransaction) error {
	m := walletTransactionModel{
		ID:     t.ID,
		UserID: t.UserID,
		Type:   string(t.Type),
		Amount: t.Amount,
		Memo:   strOrNil(t.Memo),
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

// BalanceByUserID treats refunds as credits and debits as negatives.
func (r *WalletRepository) BalanceByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var balance *int64
	q := `
SELECT SUM(CASE WHEN type = 'DEBIT' THEN -amount ELSE amount END)
FROM wallet_transactions
WHERE user_id = ?
`
	tx := dbFrom(ctx, r.db).Raw(q, userID).Scan(&balance)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if balance == nil {
		return 0, nil
	}
	return *balance, nil
}
