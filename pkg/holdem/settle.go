package holdem

import (
	"github.com/sirupsen/logrus"

	"pokertable-server/pkg/chips"
	"pokertable-server/pkg/deck"
	"pokertable-server/pkg/poker"
	"pokertable-server/pkg/poker/potmanager"
)

// HandResult is what a settled hand produced
type HandResult struct {
	Board deck.Hand `json:"board"`
	// Payouts is the chips credited per seat index
	Payouts map[int]int `json:"payouts"`
	// Ranks holds the revealed seats' evaluated hands. Empty when the hand
	// ended with a single survivor and no evaluation ran.
	Ranks map[int]poker.HandRank `json:"ranks"`
	Pots  potmanager.Pots        `json:"pots"`
	Fee   int                    `json:"fee"`
}

// LastResult returns the result of the most recently settled hand, or nil
func (t *Table) LastResult() *HandResult {
	return t.lastResult
}

// settleIfRevealed settles the hand once every live seat has opened its
// commitment
func (t *Table) settleIfRevealed() {
	for _, index := range t.hand.order {
		seat := t.seats[index]
		if seat.InHand() && !seat.revealed {
			return
		}
	}

	ranks := make(map[int]poker.HandRank)
	for _, index := range t.hand.order {
		seat := t.seats[index]
		if seat.InHand() {
			cards := append(seat.holeCards.Clone(), t.hand.community...)
			ranks[index] = poker.Evaluate(cards)
		}
	}

	t.settle(ranks)
}

// settleSingleSurvivor settles without any hand evaluation: every pot goes to
// the only seat left in the hand
func (t *Table) settleSingleSurvivor() {
	t.settle(map[int]poker.HandRank{})
}

// settle collects the pots, takes the service fee, pays the winners, and
// resets for the next hand
func (t *Table) settle(ranks map[int]poker.HandRank) {
	hand := t.hand

	contribs := make([]potmanager.Contribution, 0, len(hand.order))
	for _, index := range hand.order {
		seat := t.seats[index]
		contribs = append(contribs, potmanager.Contribution{
			Seat:   index,
			Amount: seat.contributed,
			Folded: !seat.InHand(),
		})
	}

	pots := potmanager.CollectBets(contribs)

	fee := pots.Total() * ServiceFeeBasisPoints / 10000
	if fee > 0 && len(pots) > 0 {
		if err := t.ledger.Transfer(t.Account(), chips.TreasuryAccount, fee); err != nil {
			panic("table account could not cover the service fee: " + err.Error())
		}

		pots[0].Amount -= fee
	}

	payouts := potmanager.Distribute(pots, ranks, hand.order)
	for index, amount := range payouts {
		t.seats[index].Stack += amount
	}

	t.lastResult = &HandResult{
		Board:   hand.community.Clone(),
		Payouts: payouts,
		Ranks:   ranks,
		Pots:    pots,
		Fee:     fee,
	}

	t.logger.WithFields(logrus.Fields{
		"pot":     pots.Total() + fee,
		"fee":     fee,
		"winners": len(payouts),
	}).Info("hand settled")

	t.finishHand(true)
}
