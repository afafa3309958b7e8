package holdem

import (
	"time"

	"github.com/sirupsen/logrus"

	"pokertable-server/pkg/deck"
)

// handState is the per-hand record. It is created by StartHand and destroyed
// at settlement; nothing in it survives the hand.
type handState struct {
	phase  phase
	street Street

	// order holds the in-hand seat indexes in button-relative acting order:
	// small blind first, button last
	order []int

	community  deck.Hand
	deck       *deck.Deck
	currentBet int
	// minRaise is the size of the last full bet or raise this street
	minRaise int
	// queue holds the seats still to act this street; the head is in turn
	queue []int
	// lastAggressor is the seat that made the last bet or raise, or -1
	lastAggressor int
	straddler     int

	commitDeadline time.Time
	revealDeadline time.Time
	actionDeadline time.Time
}

func (h *handState) contains(index int) bool {
	for _, s := range h.order {
		if s == index {
			return true
		}
	}

	return false
}

// StartHand posts the blinds and ante and opens the commit window.
// If the table allows it and straddle is true, the under-the-gun seat posts a
// live straddle of twice the big blind, which becomes the bet to match.
func (t *Table) StartHand(straddle bool) error {
	if t.paused {
		return newError(InvalidState, "table is paused")
	}

	if t.hand != nil {
		return newError(InvalidState, "a hand is already in progress")
	}

	if straddle && !t.opts.Straddle {
		return newError(InvalidState, "straddling is not enabled")
	}

	order := t.handOrder()
	if len(order) < 2 {
		return newError(InvalidState, "at least two seats must be ready to play")
	}

	if straddle && len(order) < 3 {
		return newError(InvalidState, "straddling requires a seat under the gun")
	}

	for _, index := range order {
		t.seats[index].newHand()
		t.seats[index].Status = StatusActive
	}

	d := deck.New()
	d.Shuffle(0)

	hand := &handState{
		street:         StreetPreFlop,
		order:          order,
		community:      make(deck.Hand, 0, 5),
		deck:           d,
		lastAggressor:  -1,
		straddler:      -1,
		commitDeadline: t.clock.Now().Add(t.opts.CommitWindow),
	}
	t.hand = hand
	t.settled = false
	t.aborted = false

	// ante first, then the blinds; antes are dead money and do not count
	// toward matching the blind
	if t.opts.Ante > 0 {
		for _, index := range order {
			seat := t.seats[index]
			seat.put(t.opts.Ante)
			seat.streetBet = 0
		}
	}

	t.seats[order[0]].put(t.opts.SmallBlind)
	t.seats[order[1]].put(t.opts.BigBlind)
	hand.currentBet = t.opts.BigBlind
	hand.minRaise = t.opts.BigBlind

	if straddle {
		hand.straddler = order[2]
		t.seats[order[2]].put(t.opts.BigBlind * 2)
		hand.currentBet = t.opts.BigBlind * 2
	}

	t.logger.WithFields(logrus.Fields{
		"button":   t.button,
		"seats":    len(order),
		"straddle": straddle,
	}).Info("hand started")

	return nil
}

// handOrder returns the seats that will play the next hand in button-relative
// order, small blind first
func (t *Table) handOrder() []int {
	order := make([]int, 0, NumSeats)
	for i := 1; i <= NumSeats; i++ {
		index := (t.button + i) % NumSeats
		seat := t.seats[index]
		if seat.Status == StatusActive && seat.Stack > 0 {
			order = append(order, index)
		}
	}

	return order
}

// beginBetting opens the pre-flop betting round once every commitment is in
func (t *Table) beginBetting() {
	hand := t.hand
	hand.phase = phaseBetting

	// first to act is left of the big blind, or left of the straddler
	skip := 2
	if hand.straddler >= 0 {
		skip = 3
	}

	hand.queue = hand.queue[:0]
	for i := 0; i < len(hand.order); i++ {
		index := hand.order[(skip+i)%len(hand.order)]
		if t.seats[index].canAct() {
			hand.queue = append(hand.queue, index)
		}
	}

	hand.actionDeadline = t.clock.Now().Add(t.opts.ActionWindow)

	if len(hand.queue) == 0 {
		// every seat went all-in posting blinds
		t.closeStreet()
	}
}

// closeStreet runs when the queue empties: everyone remaining has matched the
// bet and action has returned to the last aggressor
func (t *Table) closeStreet() {
	hand := t.hand

	for _, index := range hand.order {
		t.seats[index].streetBet = 0
	}

	// with one or zero seats still able to act there is no more betting;
	// run the board out and go straight to the reveal
	if t.actionableSeats() <= 1 {
		t.dealCommunity(communityCardsFor(StreetRiver))
		t.beginReveal()
		return
	}

	if hand.street == StreetRiver {
		t.beginReveal()
		return
	}

	hand.street++
	hand.currentBet = 0
	hand.minRaise = t.opts.BigBlind
	hand.lastAggressor = -1

	t.dealCommunity(communityCardsFor(hand.street))

	hand.queue = hand.queue[:0]
	for _, index := range hand.order {
		if t.seats[index].canAct() {
			hand.queue = append(hand.queue, index)
		}
	}

	hand.actionDeadline = t.clock.Now().Add(t.opts.ActionWindow)

	t.logger.WithField("street", hand.street.String()).Debug("street dealt")
}

// dealCommunity draws until the board holds n cards
func (t *Table) dealCommunity(n int) {
	hand := t.hand
	for len(hand.community) < n {
		card, err := hand.deck.Draw()
		if err != nil {
			panic("deck exhausted dealing community cards")
		}

		hand.community.AddCard(card)
	}
}

// beginReveal opens the showdown reveal window
func (t *Table) beginReveal() {
	hand := t.hand
	hand.phase = phaseReveal
	hand.street = StreetShowdown
	hand.revealDeadline = t.clock.Now().Add(t.opts.RevealWindow)

	// anyone already revealed plus the single-survivor case can settle now
	t.settleIfRevealed()
}

// actionableSeats counts the seats that can still bet
func (t *Table) actionableSeats() int {
	count := 0
	for _, index := range t.hand.order {
		if t.seats[index].canAct() {
			count++
		}
	}

	return count
}

// inHandSeats counts the seats that have not folded
func (t *Table) inHandSeats() int {
	count := 0
	for _, index := range t.hand.order {
		if t.seats[index].InHand() {
			count++
		}
	}

	return count
}
