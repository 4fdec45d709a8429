package ledger

import (
	"context"

	"github.com/nhz04/BANKING/internal/models"
)

// Query is the read-only surface: single-account lookups and history reads.
// No side effects, safe under unlimited concurrency.
type Query struct {
	accounts *AccountStore
	txlog    *TransactionLog
}

func NewQuery(accounts *AccountStore, txlog *TransactionLog) *Query {
	return &Query{accounts: accounts, txlog: txlog}
}

// GetAccount returns one account by number.
func (q *Query) GetAccount(ctx context.Context, accountNo string) (*models.Account, error) {
	return q.accounts.Get(ctx, accountNo)
}

// ListAccounts returns all accounts in creation order.
func (q *Query) ListAccounts(ctx context.Context) ([]models.Account, error) {
	return q.accounts.List(ctx)
}

// GetHistory returns an account's transactions, oldest first. The account
// must currently exist; a deleted account's retained history is not served.
func (q *Query) GetHistory(ctx context.Context, accountNo string) ([]models.Transaction, error) {
	if _, err := q.accounts.Get(ctx, accountNo); err != nil {
		return nil, err
	}
	return q.txlog.History(ctx, accountNo)
}
