package ledger

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/nhz04/BANKING/internal/config"
	"github.com/nhz04/BANKING/internal/database"
	"github.com/nhz04/BANKING/internal/models"
	"github.com/nhz04/BANKING/internal/money"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Init(config.DatabaseConfig{
		Path: filepath.Join(t.TempDir(), "ledger.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func amount(t *testing.T, s string) money.Money {
	t.Helper()
	m, err := money.FromString(s)
	require.NoError(t, err)
	return m
}

// TestAccountLifecycle walks the full scenario: create with opening balance,
// deposit, rejected overdraft, withdraw to zero, delete.
func TestAccountLifecycle(t *testing.T) {
	svc := NewService(openTestDB(t))
	ctx := context.Background()

	account, err := svc.Create(ctx, "000001", "Ana", amount(t, "100.00"))
	require.NoError(t, err)
	assert.Equal(t, "000001", account.AccountNo)
	assert.Equal(t, "100.00", account.Balance.String())

	// opening balance is explained by a synthetic deposit
	history, err := svc.Log().History(ctx, "000001")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, models.TxDeposit, history[0].Type)
	assert.Equal(t, "100.00", history[0].Amount.String())
	assert.Equal(t, "100.00", history[0].Balance.String())

	account, _, err = svc.Deposit(ctx, "000001", amount(t, "50.00"))
	require.NoError(t, err)
	assert.Equal(t, "150.00", account.Balance.String())

	// overdraft is rejected and leaves no trace
	_, _, err = svc.Withdraw(ctx, "000001", amount(t, "200.00"))
	require.ErrorIs(t, err, ErrInsufficientFunds)
	got, err := svc.Accounts().Get(ctx, "000001")
	require.NoError(t, err)
	assert.Equal(t, "150.00", got.Balance.String())
	history, err = svc.Log().History(ctx, "000001")
	require.NoError(t, err)
	assert.Len(t, history, 2)

	account, _, err = svc.Withdraw(ctx, "000001", amount(t, "150.00"))
	require.NoError(t, err)
	assert.Equal(t, "0.00", account.Balance.String())

	require.NoError(t, svc.Delete(ctx, "000001"))
	_, err = svc.Accounts().Get(ctx, "000001")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(openTestDB(t))
	ctx := context.Background()

	cases := []struct {
		name      string
		accountNo string
		holder    string
		initial   string
		wantErr   error
	}{
		{"short account number", "12345", "Ana", "0", ErrInvalidInput},
		{"non-numeric account number", "12345a", "Ana", "0", ErrInvalidInput},
		{"empty name", "000001", "", "0", ErrInvalidInput},
		{"name with digits", "000001", "Ana1", "0", ErrInvalidInput},
		{"negative initial balance", "000001", "Ana", "-1.00", ErrInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.accountNo, tc.holder, amount(t, tc.initial))
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

// TestCreateZeroBalance verifies a zero opening balance is allowed and
// produces no opening transaction.
func TestCreateZeroBalance(t *testing.T) {
	svc := NewService(openTestDB(t))
	ctx := context.Background()

	account, err := svc.Create(ctx, "000002", "Bob", money.Zero)
	require.NoError(t, err)
	assert.Equal(t, "0.00", account.Balance.String())

	history, err := svc.Log().History(ctx, "000002")
	require.NoError(t, err)
	assert.Empty(t, history)
}

// TestCreateDuplicate verifies the second create is rejected and leaves the
// first account untouched.
func TestCreateDuplicate(t *testing.T) {
	svc := NewService(openTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, "000001", "Ana", amount(t, "100.00"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, "000001", "Eve", amount(t, "999.00"))
	require.ErrorIs(t, err, ErrAlreadyExists)

	got, err := svc.Accounts().Get(ctx, "000001")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "100.00", got.Balance.String())

	history, err := svc.Log().History(ctx, "000001")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestMutationValidation(t *testing.T) {
	svc := NewService(openTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, "000001", "Ana", amount(t, "10.00"))
	require.NoError(t, err)

	_, _, err = svc.Deposit(ctx, "000001", money.Zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, _, err = svc.Deposit(ctx, "000001", amount(t, "-5.00"))
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, _, err = svc.Withdraw(ctx, "000001", money.Zero)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, _, err = svc.Deposit(ctx, "999999", amount(t, "5.00"))
	assert.ErrorIs(t, err, ErrNotFound)
	_, _, err = svc.Withdraw(ctx, "999999", amount(t, "5.00"))
	assert.ErrorIs(t, err, ErrNotFound)
	err = svc.Delete(ctx, "999999")
	assert.ErrorIs(t, err, ErrNotFound)
}

// TestHistoryReplay verifies that folding the per-transaction deltas from
// zero reproduces every stored balance snapshot.
func TestHistoryReplay(t *testing.T) {
	svc := NewService(openTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, "000001", "Ana", amount(t, "100.00"))
	require.NoError(t, err)
	for _, step := range []struct {
		op string
		v  string
	}{
		{"deposit", "25.50"},
		{"withdraw", "10.00"},
		{"deposit", "0.01"},
		{"withdraw", "115.51"},
		{"deposit", "7.77"},
	} {
		if step.op == "deposit" {
			_, _, err = svc.Deposit(ctx, "000001", amount(t, step.v))
		} else {
			_, _, err = svc.Withdraw(ctx, "000001", amount(t, step.v))
		}
		require.NoError(t, err)
	}

	history, err := svc.Log().History(ctx, "000001")
	require.NoError(t, err)
	require.Len(t, history, 6)

	running := money.Zero
	var prev *models.Transaction
	for i := range history {
		tx := history[i]
		switch tx.Type {
		case models.TxDeposit:
			running = running.Add(tx.Amount)
		case models.TxWithdraw:
			running = running.Sub(tx.Amount)
		}
		assert.True(t, running.Equal(tx.Balance),
			"replay mismatch at %d: got %s want %s", i, running, tx.Balance)
		assert.False(t, tx.Balance.IsNegative())
		if prev != nil {
			assert.False(t, tx.CreatedAt.Before(prev.CreatedAt),
				"timestamps must be non-decreasing within an account")
		}
		prev = &history[i]
	}

	got, err := svc.Accounts().Get(ctx, "000001")
	require.NoError(t, err)
	assert.True(t, running.Equal(got.Balance))
}

// TestConcurrentMutationsSameAccount hammers one account from many
// goroutines and verifies no update is lost and the balance stays
// consistent with the log.
func TestConcurrentMutationsSameAccount(t *testing.T) {
	svc := NewService(openTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, "000001", "Ana", amount(t, "1000.00"))
	require.NoError(t, err)

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				_, _, err := svc.Deposit(ctx, "000001", amount(t, "10.00"))
				assert.NoError(t, err)
			} else {
				_, _, err := svc.Withdraw(ctx, "000001", amount(t, "5.00"))
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	// 10 deposits of 10.00 and 10 withdrawals of 5.00
	got, err := svc.Accounts().Get(ctx, "000001")
	require.NoError(t, err)
	assert.Equal(t, "1050.00", got.Balance.String())

	history, err := svc.Log().History(ctx, "000001")
	require.NoError(t, err)
	assert.Len(t, history, workers+1)
	assert.True(t, history[len(history)-1].Balance.Equal(got.Balance))
}

// TestDeleteRetainsHistory verifies the audit-retention policy: deleting an
// account removes the record but keeps its transaction rows in storage.
func TestDeleteRetainsHistory(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, "000001", "Ana", amount(t, "100.00"))
	require.NoError(t, err)
	_, _, err = svc.Deposit(ctx, "000001", amount(t, "20.00"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "000001"))

	_, err = svc.Accounts().Get(ctx, "000001")
	assert.ErrorIs(t, err, ErrNotFound)

	// the query surface no longer serves the history
	q := NewQuery(svc.Accounts(), svc.Log())
	_, err = q.GetHistory(ctx, "000001")
	assert.ErrorIs(t, err, ErrNotFound)

	// but the rows survive for audit
	var count int64
	require.NoError(t, db.Model(&models.Transaction{}).
		Where("account_no = ?", "000001").Count(&count).Error)
	assert.Equal(t, int64(2), count)

	// and the number can be reused
	_, err = svc.Create(ctx, "000001", "Bea", money.Zero)
	require.NoError(t, err)
}

func TestListCreationOrder(t *testing.T) {
	svc := NewService(openTestDB(t))
	ctx := context.Background()

	for _, no := range []string{"000003", "000001", "000002"} {
		_, err := svc.Create(ctx, no, "Ana", money.Zero)
		require.NoError(t, err)
	}

	accounts, err := svc.Accounts().List(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, 3)
	assert.Equal(t, "000003", accounts[0].AccountNo)
	assert.Equal(t, "000001", accounts[1].AccountNo)
	assert.Equal(t, "000002", accounts[2].AccountNo)
}

func TestErrorsAreDistinguishable(t *testing.T) {
	svc := NewService(openTestDB(t))
	ctx := context.Background()

	_, err := svc.Create(ctx, "bad", "Ana", money.Zero)
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrInvalidAmount))
}
