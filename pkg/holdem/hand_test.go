package holdem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokertable-server/pkg/chips"
	"pokertable-server/pkg/poker"
)

func balance(t *testing.T, bank *chips.Bank, account string) int {
	t.Helper()
	amount, err := bank.Balance(account)
	require.NoError(t, err)
	return amount
}

func TestTable_playHand(t *testing.T) {
	a := assert.New(t)
	tbl, bank, _ := newTestTable(t, testOptions(), 100, 100, 100)

	// button is seat 0, so seat 1 posts the small blind, seat 2 the big
	// blind, and seat 0 acts first
	startHand(t, tbl, "2c,7d,9h,4s,13c", map[int]string{
		0: "7s,10d",
		1: "9c,13d",
		2: "5h,6s",
	})

	a.Equal(StateHandInProgress, tbl.State())
	a.Equal(0, tbl.InTurn())

	apply(t, tbl, Action{Type: ActionRaise, Seat: 0, Amount: 10})

	owed, err := tbl.CallAmount(1)
	a.NoError(err)
	a.Equal(9, owed)

	apply(t, tbl, Action{Type: ActionCall, Seat: 1})
	apply(t, tbl, Action{Type: ActionFold, Seat: 2})

	// flop through river, checked down by the two live seats
	checkAround(t, tbl)

	a.Equal(-1, tbl.InTurn())
	revealSeat(t, tbl, 0, "7s,10d")
	revealSeat(t, tbl, 1, "9c,13d")

	a.Equal(StateSettled, tbl.State())

	result := tbl.LastResult()
	require.NotNil(t, result)

	// 10 + 10 + the folded big blind, too small for the fee to round to a chip
	a.Equal(0, result.Fee)
	a.Equal(map[int]int{1: 22}, result.Payouts)
	a.Equal(poker.OnePair, result.Ranks[0].Category)
	a.Equal(poker.TwoPair, result.Ranks[1].Category)
	a.Equal("2c,7d,9h,4s,13c", result.Board.String())

	seat0, _ := tbl.Seat(0)
	seat1, _ := tbl.Seat(1)
	seat2, _ := tbl.Seat(2)
	a.Equal(90, seat0.Stack)
	a.Equal(112, seat1.Stack)
	a.Equal(98, seat2.Stack)

	// every chip is still on the table
	a.Equal(300, balance(t, bank, tbl.Account()))
	a.Equal(0, balance(t, bank, chips.TreasuryAccount))

	a.Equal(1, tbl.Button())
}

func TestTable_sidePots(t *testing.T) {
	a := assert.New(t)
	tbl, bank, _ := newTestTable(t, testOptions(), 50, 200, 200)

	startHand(t, tbl, "2c,3d,9h,10s,12c", map[int]string{
		0: "14s,14d",
		1: "13h,13d",
		2: "5h,6s",
	})

	// seat 0 opens all-in for its last 50
	apply(t, tbl, Action{Type: ActionRaise, Seat: 0, Amount: 50})
	apply(t, tbl, Action{Type: ActionRaise, Seat: 1, Amount: 150})
	apply(t, tbl, Action{Type: ActionCall, Seat: 2})

	checkAround(t, tbl)

	revealSeat(t, tbl, 0, "14s,14d")
	revealSeat(t, tbl, 1, "13h,13d")
	revealSeat(t, tbl, 2, "5h,6s")

	result := tbl.LastResult()
	require.NotNil(t, result)

	// 350 in the middle; the fee comes off the main pot
	a.Equal(1, result.Fee)
	require.Len(t, result.Pots, 2)
	a.Equal(149, result.Pots[0].Amount)
	a.Equal([]int{0, 1, 2}, result.Pots[0].Eligible)
	a.Equal(200, result.Pots[1].Amount)
	a.Equal([]int{1, 2}, result.Pots[1].Eligible)

	// aces take the main pot; kings take the side pot they bought into
	a.Equal(map[int]int{0: 149, 1: 200}, result.Payouts)

	seat0, _ := tbl.Seat(0)
	seat1, _ := tbl.Seat(1)
	seat2, _ := tbl.Seat(2)
	a.Equal(149, seat0.Stack)
	a.Equal(250, seat1.Stack)
	a.Equal(50, seat2.Stack)

	a.Equal(449, balance(t, bank, tbl.Account()))
	a.Equal(1, balance(t, bank, chips.TreasuryAccount))
}

func TestTable_serviceFee(t *testing.T) {
	a := assert.New(t)

	opts := testOptions()
	opts.SmallBlind = 10
	opts.BigBlind = 20
	opts.MinBuyIn = 20
	tbl, bank, _ := newTestTable(t, opts, 1000, 1000)

	// heads up: seat 1 posts the small blind, seat 0 the big blind
	startHand(t, tbl, "2c,7d,9h,10s,12c", map[int]string{
		0: "5h,6s",
		1: "14s,14d",
	})

	apply(t, tbl, Action{Type: ActionRaise, Seat: 1, Amount: 250})
	apply(t, tbl, Action{Type: ActionCall, Seat: 0})

	checkAround(t, tbl)

	revealSeat(t, tbl, 0, "5h,6s")
	revealSeat(t, tbl, 1, "14s,14d")

	result := tbl.LastResult()
	require.NotNil(t, result)

	a.Equal(1, result.Fee)
	a.Equal(map[int]int{1: 499}, result.Payouts)
	a.Equal(1, balance(t, bank, chips.TreasuryAccount))

	seat1, _ := tbl.Seat(1)
	a.Equal(1249, seat1.Stack)
}

func TestTable_singleSurvivor(t *testing.T) {
	a := assert.New(t)
	tbl, _, _ := newTestTable(t, testOptions(), 100, 100, 100)

	startHand(t, tbl, "2c,7d,9h,10s,12c", map[int]string{
		0: "5h,6s",
		1: "8h,8s",
		2: "14s,14d",
	})

	apply(t, tbl, Action{Type: ActionFold, Seat: 0})
	apply(t, tbl, Action{Type: ActionFold, Seat: 1})

	// the big blind wins the blinds without showing a card
	result := tbl.LastResult()
	require.NotNil(t, result)
	a.Empty(result.Ranks)
	a.Equal(map[int]int{2: 3}, result.Payouts)

	seat2, _ := tbl.Seat(2)
	a.Equal(101, seat2.Stack)
}

func TestTable_ante(t *testing.T) {
	a := assert.New(t)

	opts := testOptions()
	opts.Ante = 1
	tbl, _, _ := newTestTable(t, opts, 100, 100, 100)

	startHand(t, tbl, "2c,7d,9h,10s,12c", map[int]string{
		0: "5h,6s",
		1: "8h,8s",
		2: "14s,14d",
	})

	// the ante is dead money: the small blind still owes a full chip
	owed, err := tbl.CallAmount(1)
	a.NoError(err)
	a.Equal(1, owed)

	apply(t, tbl, Action{Type: ActionFold, Seat: 0})
	apply(t, tbl, Action{Type: ActionFold, Seat: 1})

	result := tbl.LastResult()
	require.NotNil(t, result)
	a.Equal(map[int]int{2: 6}, result.Payouts)
}

func TestTable_straddle(t *testing.T) {
	a := assert.New(t)

	opts := testOptions()
	opts.Straddle = true
	tbl, _, _ := newTestTable(t, opts, 100, 100, 100)

	require.NoError(t, tbl.StartHand(true))
	stackDeck(t, tbl, "2c,7d,9h,10s,12c")

	for _, seat := range []int{0, 1, 2} {
		commitSeat(t, tbl, seat, "5h,6s")
	}

	// seat 0 straddled for twice the big blind, so the small blind opens
	a.Equal(1, tbl.InTurn())

	owed, err := tbl.CallAmount(1)
	a.NoError(err)
	a.Equal(3, owed)
}

func TestTable_straddleErrors(t *testing.T) {
	a := assert.New(t)

	tbl, _, _ := newTestTable(t, testOptions(), 100, 100, 100)
	err := tbl.StartHand(true)
	a.True(IsKind(err, InvalidState))
	a.EqualError(err, "straddling is not enabled")

	opts := testOptions()
	opts.Straddle = true
	tbl, _, _ = newTestTable(t, opts, 100, 100)
	err = tbl.StartHand(true)
	a.True(IsKind(err, InvalidState))
	a.EqualError(err, "straddling requires a seat under the gun")
}

func TestTable_bettingValidation(t *testing.T) {
	a := assert.New(t)
	tbl, _, _ := newTestTable(t, testOptions(), 100, 100, 100)

	startHand(t, tbl, "2c,7d,9h,10s,12c", map[int]string{
		0: "5h,6s",
		1: "8h,8s",
		2: "14s,14d",
	})

	// seat 0 is under the gun; nobody else may act
	err := tbl.Apply(Action{Type: ActionCheck, Seat: 1})
	a.True(IsKind(err, InvalidState))

	// facing the big blind, checking and betting are both off the table
	err = tbl.Apply(Action{Type: ActionCheck, Seat: 0})
	a.True(IsKind(err, InvalidState))
	a.EqualError(err, "cannot check facing a bet")

	err = tbl.Apply(Action{Type: ActionBet, Seat: 0, Amount: 10})
	a.True(IsKind(err, InvalidState))

	// a raise must at least double the big blind unless it is an all-in
	err = tbl.Apply(Action{Type: ActionRaise, Seat: 0, Amount: 3})
	a.True(IsKind(err, InvalidAmount))

	err = tbl.Apply(Action{Type: ActionRaise, Seat: 0, Amount: 500})
	a.True(IsKind(err, InsufficientFunds))

	apply(t, tbl, Action{Type: ActionCall, Seat: 0})
	apply(t, tbl, Action{Type: ActionCall, Seat: 1})
	apply(t, tbl, Action{Type: ActionCheck, Seat: 2})

	// on the flop there is no bet to call or raise
	err = tbl.Apply(Action{Type: ActionCall, Seat: 1})
	a.True(IsKind(err, InvalidState))
	a.EqualError(err, "there is no bet to call")

	err = tbl.Apply(Action{Type: ActionRaise, Seat: 1, Amount: 10})
	a.True(IsKind(err, InvalidState))

	err = tbl.Apply(Action{Type: ActionBet, Seat: 1, Amount: 1})
	a.True(IsKind(err, InvalidAmount))

	apply(t, tbl, Action{Type: ActionBet, Seat: 1, Amount: 10})
	a.Equal(2, tbl.InTurn())

	err = tbl.Apply(Action{Type: "slowroll", Seat: 2})
	a.True(IsKind(err, InvalidState))
}

func TestTable_startHandErrors(t *testing.T) {
	a := assert.New(t)

	tbl, _, _ := newTestTable(t, testOptions(), 100)
	err := tbl.StartHand(false)
	a.True(IsKind(err, InvalidState))
	a.EqualError(err, "at least two seats must be ready to play")

	tbl, _, _ = newTestTable(t, testOptions(), 100, 100)
	require.NoError(t, tbl.StartHand(false))
	err = tbl.StartHand(false)
	a.True(IsKind(err, InvalidState))
	a.EqualError(err, "a hand is already in progress")
}
