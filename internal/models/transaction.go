package models

import (
	"time"

	"github.com/nhz04/BANKING/internal/money"
)

// Transaction types. These are the only two; transfers are out of scope.
const (
	TxDeposit  = "deposit"
	TxWithdraw = "withdraw"
)

// Transaction is one immutable entry in an account's history.
// ID orders entries within an account (append order); TxID is the external
// identifier. Balance is the account balance after this entry was applied
// and is never recomputed.
type Transaction struct {
	ID        uint        `gorm:"primaryKey" json:"-"`
	TxID      string      `gorm:"size:36;uniqueIndex;not null" json:"id"`
	AccountNo string      `gorm:"size:6;index;not null" json:"account_no"`
	Type      string      `gorm:"size:16;not null" json:"type"`
	Amount    money.Money `gorm:"not null" json:"amount"`
	Balance   money.Money `gorm:"not null" json:"balance"`
	CreatedAt time.Time   `json:"timestamp"`
}
