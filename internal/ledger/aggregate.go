package ledger

import (
	"context"
	"log"

	"github.com/nhz04/BANKING/internal/models"
	"github.com/nhz04/BANKING/internal/money"
)

// accountLister and historyReader are the two reads the aggregation needs.
// They are satisfied by AccountStore and TransactionLog; tests substitute a
// failing history source to exercise partial-failure isolation.
type accountLister interface {
	List(ctx context.Context) ([]models.Account, error)
}

type historyReader interface {
	History(ctx context.Context, accountNo string) ([]models.Transaction, error)
}

// Stats is a fleet-wide snapshot. It is best effort, not transactionally
// consistent: mutations racing the scan may land in some accounts and not
// others. SkippedAccounts counts accounts whose history could not be read
// and therefore contribute nothing to the deposit/withdrawal totals.
type Stats struct {
	AccountCount     int         `json:"account_count"`
	TotalBalance     money.Money `json:"total_balance"`
	TotalDeposits    money.Money `json:"total_deposits"`
	TotalWithdrawals money.Money `json:"total_withdrawals"`
	SkippedAccounts  int         `json:"skipped_accounts"`
}

// Aggregator folds per-account results into fleet totals without holding any
// lock across accounts. A single unreachable history degrades only that
// account's contribution, never the whole snapshot.
type Aggregator struct {
	accounts accountLister
	history  historyReader
}

func NewAggregator(accounts accountLister, history historyReader) *Aggregator {
	return &Aggregator{accounts: accounts, history: history}
}

// Snapshot computes current fleet statistics. The balance total comes from
// the account rows alone and has no failure path beyond the initial listing;
// the deposit and withdrawal totals sum transaction amounts per account,
// skipping accounts whose history read fails.
func (a *Aggregator) Snapshot(ctx context.Context) (*Stats, error) {
	accounts, err := a.accounts.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{AccountCount: len(accounts)}
	for _, acct := range accounts {
		stats.TotalBalance = stats.TotalBalance.Add(acct.Balance)

		txs, err := a.history.History(ctx, acct.AccountNo)
		if err != nil {
			// skip-and-continue: one bad history must not poison the rest
			log.Printf("stats: skipping history of account %s: %v", acct.AccountNo, err)
			stats.SkippedAccounts++
			continue
		}
		for _, tx := range txs {
			switch tx.Type {
			case models.TxDeposit:
				stats.TotalDeposits = stats.TotalDeposits.Add(tx.Amount)
			case models.TxWithdraw:
				stats.TotalWithdrawals = stats.TotalWithdrawals.Add(tx.Amount)
			}
		}
	}
	return stats, nil
}
