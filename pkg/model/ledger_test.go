package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pokertable-server/pkg/chips"
)

func TestNewLedger(t *testing.T) {
	a := assert.New(t)
	a.Equal(chips.DefaultExchangeRate, NewLedger(0).ExchangeRate())
	a.Equal(25, NewLedger(25).ExchangeRate())
}

func TestLedger_invalidAmounts(t *testing.T) {
	a := assert.New(t)
	l := NewLedger(1)

	_, err := l.Buy("p1", 0)
	a.Equal(chips.ErrInvalidAmount, err)

	_, err = l.Buy("p1", -5)
	a.Equal(chips.ErrInvalidAmount, err)

	a.Equal(chips.ErrInvalidAmount, l.Transfer("p1", "p2", 0))
}
