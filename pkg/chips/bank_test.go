package chips

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBank_Buy(t *testing.T) {
	a := assert.New(t)

	b := NewBank(0)
	a.Equal(DefaultExchangeRate, b.ExchangeRate())

	amount, err := b.Buy("player-1", 5)
	a.NoError(err)
	a.Equal(500, amount)

	balance, err := b.Balance("player-1")
	a.NoError(err)
	a.Equal(500, balance)

	_, err = b.Buy("player-1", 0)
	a.Equal(ErrInvalidAmount, err)

	b = NewBank(7)
	amount, err = b.Buy("player-1", 3)
	a.NoError(err)
	a.Equal(21, amount)
}

func TestBank_Transfer(t *testing.T) {
	a := assert.New(t)

	b := NewBank(1)
	_, _ = b.Buy("player-1", 100)

	a.NoError(b.Transfer("player-1", TreasuryAccount, 40))

	balance, _ := b.Balance("player-1")
	a.Equal(60, balance)

	balance, _ = b.Balance(TreasuryAccount)
	a.Equal(40, balance)

	a.Equal(ErrInsufficientFunds, b.Transfer("player-1", TreasuryAccount, 61))
	a.Equal(ErrUnknownAccount, b.Transfer("nobody", TreasuryAccount, 1))
	a.Equal(ErrInvalidAmount, b.Transfer("player-1", TreasuryAccount, 0))

	// failed transfers leave balances untouched
	balance, _ = b.Balance("player-1")
	a.Equal(60, balance)
}

func TestBank_Balance(t *testing.T) {
	a := assert.New(t)

	b := NewBank(1)
	_, err := b.Balance("nobody")
	a.Equal(ErrUnknownAccount, err)

	balance, err := b.Balance(TreasuryAccount)
	a.NoError(err)
	a.Equal(0, balance)
}

func TestBank_concurrentAccess(t *testing.T) {
	a := assert.New(t)

	b := NewBank(1)
	_, _ = b.Buy("player-1", 1000)

	// run with -race: buys, transfers, and reads on shared accounts
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for j := 0; j < 100; j++ {
				_, _ = b.Buy("player-2", 1)
				_ = b.Transfer("player-1", TreasuryAccount, 1)
				_, _ = b.Balance("player-1")
			}
		}()
	}
	wg.Wait()

	balance, err := b.Balance("player-1")
	a.NoError(err)
	a.Equal(0, balance)

	balance, _ = b.Balance(TreasuryAccount)
	a.Equal(1000, balance)

	balance, _ = b.Balance("player-2")
	a.Equal(1000, balance)
}
