package holdem

import (
	"fmt"
	"testing"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"pokertable-server/pkg/chips"
	"pokertable-server/pkg/deck"
)

const testNonce = "test-nonce"

// newTestTable builds a table with one funded, seated player per stack.
// Seat i belongs to player "p<i>" with the given stack. The bank converts
// 1:1 so player balances read directly in chips.
func newTestTable(t *testing.T, opts Options, stacks ...int) (*Table, *chips.Bank, *quartz.Mock) {
	t.Helper()

	bank := chips.NewBank(1)
	clock := quartz.NewMock(t)

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	tbl, err := NewTable(logger, bank, clock, opts)
	require.NoError(t, err)

	for i, stack := range stacks {
		player := testPlayer(i)
		_, err := bank.Buy(player, stack)
		require.NoError(t, err)
		require.NoError(t, tbl.JoinTable(i, player, stack))
	}

	return tbl, bank, clock
}

func testPlayer(seat int) string {
	return fmt.Sprintf("p%d", seat)
}

// testOptions returns options with wide buy-in bounds so tests can pick any stack
func testOptions() Options {
	opts := DefaultOptions()
	opts.MinBuyIn = 2
	opts.MaxBuyIn = 10000
	return opts
}

// commitSeat commits the given hole cards for the seat
func commitSeat(t *testing.T, tbl *Table, seat int, cards string) {
	t.Helper()
	hand := deck.Hand(deck.CardsFromString(cards))
	require.NoError(t, tbl.Commit(seat, CommitmentHash(hand, testNonce)))
}

// revealSeat opens the seat's commitment
func revealSeat(t *testing.T, tbl *Table, seat int, cards string) {
	t.Helper()
	hand := deck.Hand(deck.CardsFromString(cards))
	require.NoError(t, tbl.Reveal(seat, hand, testNonce))
}

// stackDeck forces the community cards that will be dealt
func stackDeck(t *testing.T, tbl *Table, community string) {
	t.Helper()
	require.NotNil(t, tbl.hand)
	tbl.hand.deck.Cards = deck.CardsFromString(community)
}

// startHand starts a hand and runs the commit phase with the given hole
// cards, keyed by seat index
func startHand(t *testing.T, tbl *Table, community string, holeCards map[int]string) {
	t.Helper()

	require.NoError(t, tbl.StartHand(false))
	stackDeck(t, tbl, community)

	for _, seat := range tbl.hand.order {
		commitSeat(t, tbl, seat, holeCards[seat])
	}
}

// apply submits a betting action and requires success
func apply(t *testing.T, tbl *Table, action Action) {
	t.Helper()
	require.NoError(t, tbl.Apply(action))
}

// checkAround has every seat still able to act check once, closing the street
func checkAround(t *testing.T, tbl *Table) {
	t.Helper()

	for {
		seat := tbl.InTurn()
		if seat == -1 {
			return
		}

		apply(t, tbl, Action{Type: ActionCheck, Seat: seat})
	}
}
