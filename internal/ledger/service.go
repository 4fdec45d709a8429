package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhz04/BANKING/internal/models"
	"github.com/nhz04/BANKING/internal/money"
	"github.com/nhz04/BANKING/internal/util"

	"gorm.io/gorm"
)

// Service orchestrates all account mutations. Every mutation for a given
// account number runs under that account's lock and inside one database
// transaction, so the balance update and the log append are visible together
// or not at all. Operations on different accounts do not block each other.
type Service struct {
	db       *gorm.DB
	accounts *AccountStore
	txlog    *TransactionLog
	locks    *keyedMutex
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:       db,
		accounts: NewAccountStore(db),
		txlog:    NewTransactionLog(db),
		locks:    newKeyedMutex(),
	}
}

// Accounts exposes the underlying account store for read paths.
func (s *Service) Accounts() *AccountStore { return s.accounts }

// Log exposes the underlying transaction log for read paths.
func (s *Service) Log() *TransactionLog { return s.txlog }

// Create opens a new account. The initial balance must be >= 0; when it is
// positive an opening deposit is appended so the log explains every balance,
// including the first one.
func (s *Service) Create(ctx context.Context, accountNo, name string, initial money.Money) (*models.Account, error) {
	if err := util.ValidateAccountNo(accountNo); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := util.ValidateName(name); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if initial.IsNegative() {
		return nil, fmt.Errorf("%w: initial balance cannot be negative", ErrInvalidAmount)
	}

	unlock := s.locks.Lock(accountNo)
	defer unlock()

	var account *models.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.accounts.withTx(tx).Get(ctx, accountNo); err == nil {
			return ErrAlreadyExists
		} else if !errors.Is(err, ErrNotFound) {
			return err
		}

		var err error
		account, err = s.accounts.withTx(tx).Create(ctx, accountNo, name, initial)
		if err != nil {
			return err
		}
		if initial.IsPositive() {
			if _, err := s.txlog.withTx(tx).Append(ctx, accountNo, models.TxDeposit, initial, initial); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return account, nil
}

// Deposit adds a strictly positive amount to the account balance and appends
// the matching record as one atomic unit.
func (s *Service) Deposit(ctx context.Context, accountNo string, amount money.Money) (*models.Account, *models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: deposit amount must be positive", ErrInvalidAmount)
	}

	unlock := s.locks.Lock(accountNo)
	defer unlock()

	return s.apply(ctx, accountNo, models.TxDeposit, amount)
}

// Withdraw removes a strictly positive amount from the account balance.
// The balance never goes below zero; an oversized withdrawal fails with
// ErrInsufficientFunds and leaves no trace.
func (s *Service) Withdraw(ctx context.Context, accountNo string, amount money.Money) (*models.Account, *models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, nil, fmt.Errorf("%w: withdrawal amount must be positive", ErrInvalidAmount)
	}

	unlock := s.locks.Lock(accountNo)
	defer unlock()

	return s.apply(ctx, accountNo, models.TxWithdraw, amount)
}

// apply runs the read-modify-append sequence for one deposit or withdrawal.
// Caller holds the account lock.
func (s *Service) apply(ctx context.Context, accountNo, txType string, amount money.Money) (*models.Account, *models.Transaction, error) {
	var (
		account *models.Account
		record  *models.Transaction
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		account, err = s.accounts.withTx(tx).Get(ctx, accountNo)
		if err != nil {
			return err
		}

		var newBalance money.Money
		switch txType {
		case models.TxDeposit:
			newBalance = account.Balance.Add(amount)
		case models.TxWithdraw:
			if amount.Cmp(account.Balance) > 0 {
				return ErrInsufficientFunds
			}
			newBalance = account.Balance.Sub(amount)
		}

		if err := s.accounts.withTx(tx).UpdateBalance(ctx, accountNo, newBalance); err != nil {
			return err
		}
		record, err = s.txlog.withTx(tx).Append(ctx, accountNo, txType, amount, newBalance)
		if err != nil {
			return err
		}
		account.Balance = newBalance
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return account, record, nil
}

// Delete removes the account. There is no balance precondition. Transaction
// history is retained for audit; it simply stops being reachable through the
// API once the account is gone.
func (s *Service) Delete(ctx context.Context, accountNo string) error {
	unlock := s.locks.Lock(accountNo)
	defer unlock()

	return s.accounts.Delete(ctx, accountNo)
}
