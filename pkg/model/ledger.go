package model

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"pokertable-server/pkg/chips"
	"pokertable-server/pkg/db"
)

const pqCheckViolationErrorCode pq.ErrorCode = "23514"

// Ledger is a chip store backed by the `accounts` table. Every movement also
// appends an `account_entries` row so balances can be audited.
type Ledger struct {
	exchangeRate int
}

var _ chips.Ledger = (*Ledger)(nil)

// NewLedger returns a Ledger converting at the given chips-per-base-unit
// rate. A rate of 0 uses chips.DefaultExchangeRate.
func NewLedger(exchangeRate int) *Ledger {
	if exchangeRate == 0 {
		exchangeRate = chips.DefaultExchangeRate
	}

	return &Ledger{exchangeRate: exchangeRate}
}

// ExchangeRate returns the published chips-per-base-unit rate
func (l *Ledger) ExchangeRate() int {
	return l.exchangeRate
}

// Buy converts base currency into chips and credits the account
func (l *Ledger) Buy(account string, baseAmount int) (int, error) {
	if baseAmount <= 0 {
		return 0, chips.ErrInvalidAmount
	}

	ctx := context.Background()
	amount := baseAmount * l.exchangeRate

	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	if err := adjustBalance(ctx, tx, account, amount, "buy", true); err != nil {
		rollback(tx)
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return amount, nil
}

// Transfer moves chips between two stores.
// The transfer either fully happens or doesn't happen at all.
func (l *Ledger) Transfer(from, to string, amount int) error {
	if amount <= 0 {
		return chips.ErrInvalidAmount
	}

	ctx := context.Background()

	tx, err := db.Instance().BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if err := adjustBalance(ctx, tx, from, -amount, "transfer:"+to, false); err != nil {
		rollback(tx)
		return err
	}

	if err := adjustBalance(ctx, tx, to, amount, "transfer:"+from, true); err != nil {
		rollback(tx)
		return err
	}

	return tx.Commit()
}

// Balance returns the chip balance of the account
func (l *Ledger) Balance(account string) (int, error) {
	const query = `
SELECT balance
FROM accounts
WHERE account = $1`

	var balance int
	row := db.Instance().QueryRowContext(context.Background(), query, account)
	if err := row.Scan(&balance); err != nil {
		if err == sql.ErrNoRows {
			return 0, chips.ErrUnknownAccount
		}

		return 0, err
	}

	return balance, nil
}

// adjustBalance applies a delta to an account inside tx and appends the audit
// entry. The balance check constraint turns an overdraft into
// chips.ErrInsufficientFunds; a debit from a missing account is
// chips.ErrUnknownAccount.
func adjustBalance(ctx context.Context, tx *sql.Tx, account string, delta int, reason string, createMissing bool) error {
	const upsert = `
INSERT INTO accounts (account, balance)
VALUES ($1, $2)
ON CONFLICT (account) DO UPDATE
    SET balance = accounts.balance + EXCLUDED.balance,
        updated = (NOW() AT TIME ZONE 'UTC')`

	const update = `
UPDATE accounts
SET balance = balance + $2, updated = (NOW() AT TIME ZONE 'UTC')
WHERE account = $1`

	var err error
	if createMissing {
		_, err = tx.ExecContext(ctx, upsert, account, delta)
	} else {
		var res sql.Result
		res, err = tx.ExecContext(ctx, update, account, delta)
		if err == nil {
			n, raErr := res.RowsAffected()
			if raErr != nil {
				return raErr
			}

			if n == 0 {
				return chips.ErrUnknownAccount
			}
		}
	}

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == pqCheckViolationErrorCode {
			return chips.ErrInsufficientFunds
		}

		return err
	}

	const entry = `
INSERT INTO account_entries (account, delta, reason)
VALUES ($1, $2, $3)`

	_, err = tx.ExecContext(ctx, entry, account, delta, reason)
	return err
}

func rollback(tx *sql.Tx) {
	_ = tx.Rollback()
}
