package ledger

import (
	"context"
	"fmt"

	"github.com/nhz04/BANKING/internal/models"
	"github.com/nhz04/BANKING/internal/money"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionLog is the append-only per-account history. Append is the only
// mutator; there is deliberately no update or delete.
type TransactionLog struct {
	db *gorm.DB
}

func NewTransactionLog(db *gorm.DB) *TransactionLog {
	return &TransactionLog{db: db}
}

// withTx returns a log bound to the given transaction handle.
func (l *TransactionLog) withTx(tx *gorm.DB) *TransactionLog {
	return &TransactionLog{db: tx}
}

// Append writes one transaction record. balance is the account balance after
// the operation; the caller guarantees the account exists and holds its lock.
func (l *TransactionLog) Append(ctx context.Context, accountNo, txType string, amount, balance money.Money) (*models.Transaction, error) {
	tx := models.Transaction{
		TxID:      uuid.New().String(),
		AccountNo: accountNo,
		Type:      txType,
		Amount:    amount,
		Balance:   balance,
	}
	if err := l.db.WithContext(ctx).Create(&tx).Error; err != nil {
		return nil, fmt.Errorf("append transaction for %s: %w", accountNo, err)
	}
	return &tx, nil
}

// History returns all transactions for an account, oldest first. Append order
// (the primary key) is the tiebreaker for equal timestamps, so replaying the
// result reproduces every balance snapshot.
func (l *TransactionLog) History(ctx context.Context, accountNo string) ([]models.Transaction, error) {
	var txs []models.Transaction
	err := l.db.WithContext(ctx).
		Where("account_no = ?", accountNo).
		Order("id ASC").
		Find(&txs).Error
	if err != nil {
		return nil, fmt.Errorf("history for %s: %w", accountNo, err)
	}
	return txs, nil
}
