package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhz04/BANKING/internal/models"
	"github.com/nhz04/BANKING/internal/money"

	"gorm.io/gorm"
)

// AccountStore owns account records, keyed by account number.
type AccountStore struct {
	db *gorm.DB
}

func NewAccountStore(db *gorm.DB) *AccountStore {
	return &AccountStore{db: db}
}

// withTx returns a store bound to the given transaction handle.
func (s *AccountStore) withTx(tx *gorm.DB) *AccountStore {
	return &AccountStore{db: tx}
}

// Create inserts a new account record. The caller has already validated the
// inputs and holds the per-account lock.
func (s *AccountStore) Create(ctx context.Context, accountNo, name string, balance money.Money) (*models.Account, error) {
	account := models.Account{
		AccountNo: accountNo,
		Name:      name,
		Balance:   balance,
	}
	if err := s.db.WithContext(ctx).Create(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyExists
		}
		return nil, fmt.Errorf("create account %s: %w", accountNo, err)
	}
	return &account, nil
}

// Get returns the account with the given number.
func (s *AccountStore) Get(ctx context.Context, accountNo string) (*models.Account, error) {
	var account models.Account
	err := s.db.WithContext(ctx).Where("account_no = ?", accountNo).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get account %s: %w", accountNo, err)
	}
	return &account, nil
}

// UpdateBalance sets the stored balance for an account.
func (s *AccountStore) UpdateBalance(ctx context.Context, accountNo string, balance money.Money) error {
	res := s.db.WithContext(ctx).
		Model(&models.Account{}).
		Where("account_no = ?", accountNo).
		Update("balance", balance)
	if res.Error != nil {
		return fmt.Errorf("update balance %s: %w", accountNo, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the account record. History rows are retained for audit.
func (s *AccountStore) Delete(ctx context.Context, accountNo string) error {
	res := s.db.WithContext(ctx).Where("account_no = ?", accountNo).Delete(&models.Account{})
	if res.Error != nil {
		return fmt.Errorf("delete account %s: %w", accountNo, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns all accounts in creation order.
func (s *AccountStore) List(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}
