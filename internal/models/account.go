package models

import (
	"time"

	"github.com/nhz04/BANKING/internal/money"
)

// Account is the authoritative record for one bank account.
// AccountNo is the external 6-digit identifier; ID is internal only.
// Balance is stored in cents, never negative.
type Account struct {
	ID        uint        `gorm:"primaryKey" json:"-"`
	AccountNo string      `gorm:"size:6;uniqueIndex;not null" json:"account_no"`
	Name      string      `gorm:"size:64;not null" json:"name"`
	Balance   money.Money `gorm:"not null" json:"balance"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"-"`
}
