// Package chips defines the chip ledger the table engine settles against.
// The engine only ever calls Buy, Transfer, and Balance; any failure aborts
// the requested table action before table state is touched.
package chips

import "errors"

// ErrInsufficientFunds is an error when a store lacks the chips for a transfer
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrUnknownAccount is an error when the account does not exist
var ErrUnknownAccount = errors.New("unknown account")

// ErrInvalidAmount is an error when a zero or negative amount is supplied
var ErrInvalidAmount = errors.New("amount must be greater than zero")

// Ledger exchanges base currency for table chips and moves chips between stores
type Ledger interface {
	// Buy converts baseAmount of the base currency into chips at the
	// published exchange rate and credits the account. Returns the chips
	// credited.
	Buy(account string, baseAmount int) (int, error)

	// Transfer moves chips between two stores atomically
	Transfer(from, to string, amount int) error

	// Balance returns the chip balance of the account
	Balance(account string) (int, error)
}
