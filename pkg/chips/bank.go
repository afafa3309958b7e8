package chips

import "sync"

// TreasuryAccount collects service fees and reveal-timeout penalties
const TreasuryAccount = "treasury"

// DefaultExchangeRate is how many chips one unit of base currency buys
const DefaultExchangeRate = 100

// Bank is an in-memory Ledger. It is safe for concurrent use.
type Bank struct {
	exchangeRate int

	mu       sync.Mutex
	balances map[string]int
}

// NewBank returns a Bank converting at the given chips-per-base-unit rate.
// A rate of 0 uses DefaultExchangeRate.
func NewBank(exchangeRate int) *Bank {
	if exchangeRate == 0 {
		exchangeRate = DefaultExchangeRate
	}

	return &Bank{
		exchangeRate: exchangeRate,
		balances: map[string]int{
			TreasuryAccount: 0,
		},
	}
}

// ExchangeRate returns the published chips-per-base-unit rate
func (b *Bank) ExchangeRate() int {
	return b.exchangeRate
}

// Buy converts base currency into chips and credits the account
func (b *Bank) Buy(account string, baseAmount int) (int, error) {
	if baseAmount <= 0 {
		return 0, ErrInvalidAmount
	}

	amount := baseAmount * b.exchangeRate

	b.mu.Lock()
	b.balances[account] += amount
	b.mu.Unlock()

	return amount, nil
}

// Transfer moves chips between two stores.
// The transfer either fully happens or doesn't happen at all.
func (b *Bank) Transfer(from, to string, amount int) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	balance, ok := b.balances[from]
	if !ok {
		return ErrUnknownAccount
	}

	if balance < amount {
		return ErrInsufficientFunds
	}

	b.balances[from] = balance - amount
	b.balances[to] += amount

	return nil
}

// Balance returns the chip balance of the account
func (b *Bank) Balance(account string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	balance, ok := b.balances[account]
	if !ok {
		return 0, ErrUnknownAccount
	}

	return balance, nil
}
