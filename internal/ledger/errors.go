// Package ledger holds the account store, the append-only transaction log,
// the mutation service and the fleet-wide aggregation over both.
package ledger

import "errors"

// Domain errors. The HTTP layer maps these to status codes; everything else
// matches them with errors.Is.
var (
	// ErrNotFound means the account does not exist (never created or deleted).
	ErrNotFound = errors.New("account not found")

	// ErrAlreadyExists means an account with that number already exists.
	ErrAlreadyExists = errors.New("account already exists")

	// ErrInvalidInput means a malformed account number or name.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidAmount means an amount that violates the positivity rules:
	// negative initial balance, or non-positive deposit/withdrawal.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientFunds means a withdrawal larger than the current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")
)
