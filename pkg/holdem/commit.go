package holdem

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/sirupsen/logrus"

	"pokertable-server/pkg/chips"
	"pokertable-server/pkg/deck"
)

// CommitmentHash returns the hex digest a seat must commit for its hole
// cards: sha256 over the card string and the nonce
func CommitmentHash(cards deck.Hand, nonce string) string {
	sum := sha256.Sum256([]byte(cards.String() + ":" + nonce))
	return hex.EncodeToString(sum[:])
}

// Commit records a seat's hole-card commitment during the commit window.
// Betting opens once every in-hand seat has committed.
func (t *Table) Commit(index int, hash string) error {
	if t.paused {
		return newError(InvalidState, "table is paused")
	}

	if t.hand == nil || t.hand.phase != phaseCommit {
		return newError(InvalidState, "the commit window is not open")
	}

	seat, err := t.Seat(index)
	if err != nil {
		return err
	}

	if !t.hand.contains(index) || !seat.InHand() {
		return newError(InvalidState, "seat %d is not in the hand", index)
	}

	if seat.commitHash != "" {
		return newError(InvalidState, "seat %d has already committed", index)
	}

	if hash == "" {
		return newError(InvalidAmount, "a commitment hash is required")
	}

	if t.clock.Now().After(t.hand.commitDeadline) {
		return newError(DeadlinePassed, "the commit window has closed")
	}

	seat.commitHash = hash

	if t.allCommitted() {
		t.beginBetting()
	}

	return nil
}

// Reveal opens a seat's commitment at showdown. The cards and nonce must
// hash to the committed digest. Settlement runs once every live seat has
// revealed.
func (t *Table) Reveal(index int, cards deck.Hand, nonce string) error {
	if t.paused {
		return newError(InvalidState, "table is paused")
	}

	if t.hand == nil || t.hand.phase != phaseReveal {
		return newError(InvalidState, "the reveal window is not open")
	}

	seat, err := t.Seat(index)
	if err != nil {
		return err
	}

	if !t.hand.contains(index) || !seat.InHand() {
		return newError(InvalidState, "seat %d is not in the hand", index)
	}

	if seat.revealed {
		return newError(InvalidState, "seat %d has already revealed", index)
	}

	if seat.commitHash == "" {
		return newError(InvalidState, "seat %d never committed", index)
	}

	if t.clock.Now().After(t.hand.revealDeadline) {
		return newError(DeadlinePassed, "the reveal window has closed")
	}

	if len(cards) != 2 {
		return newError(InvalidAmount, "exactly two hole cards are required")
	}

	// filter fabricated cards before hashing; CommitmentHash renders the
	// cards and cannot handle an unknown suit
	for _, card := range cards {
		if !card.Valid() {
			return newError(InvalidAmount, "%v is not a playing card", card.Rank)
		}
	}

	if cards[0].Equal(cards[1]) {
		return newError(InvalidAmount, "hole cards must be distinct")
	}

	if CommitmentHash(cards, nonce) != seat.commitHash {
		return newError(InvalidState, "cards do not match the commitment")
	}

	// a commitment that collides with the board or another revealed hand can
	// never go to showdown
	for _, card := range cards {
		if t.hand.community.HasCard(card) {
			return newError(InvalidState, "%s is on the board", card)
		}

		for _, idx := range t.hand.order {
			other := t.seats[idx]
			if other.revealed && other.holeCards.HasCard(card) {
				return newError(InvalidState, "%s was already revealed by seat %d", card, idx)
			}
		}
	}

	seat.holeCards = cards.Clone()
	seat.revealed = true

	t.settleIfRevealed()
	return nil
}

// ClaimTimeout forces a fold on a seat that let a deadline lapse. The claim
// is permissionless: anyone may submit it, so an unresponsive seat can never
// stall the hand. The folded seat forfeits a tenth of what it contributed
// this hand to the treasury.
func (t *Table) ClaimTimeout(target int) error {
	if t.paused {
		return newError(InvalidState, "table is paused")
	}

	if t.hand == nil {
		return newError(InvalidState, "no hand in progress")
	}

	seat, err := t.Seat(target)
	if err != nil {
		return err
	}

	if !t.hand.contains(target) || !seat.InHand() {
		return newError(InvalidState, "seat %d is not in the hand", target)
	}

	now := t.clock.Now()
	hand := t.hand

	switch hand.phase {
	case phaseCommit:
		if seat.commitHash != "" {
			return newError(InvalidState, "seat %d has committed", target)
		}

		if !now.After(hand.commitDeadline) {
			return newError(DeadlineNotReached, "the commit deadline has not passed")
		}
	case phaseBetting:
		if t.InTurn() != target {
			return newError(InvalidState, "seat %d is not on the clock", target)
		}

		if !now.After(hand.actionDeadline) {
			return newError(DeadlineNotReached, "the action deadline has not passed")
		}
	case phaseReveal:
		if seat.revealed {
			return newError(InvalidState, "seat %d has revealed", target)
		}

		if !now.After(hand.revealDeadline) {
			return newError(DeadlineNotReached, "the reveal deadline has not passed")
		}
	}

	t.penalizeTimeout(seat)

	switch {
	case t.inHandSeats() == 1:
		t.settleSingleSurvivor()
	case hand.phase == phaseCommit:
		if t.allCommitted() {
			t.beginBetting()
		}
	case hand.phase == phaseBetting:
		t.completeTurn()
	case hand.phase == phaseReveal:
		t.settleIfRevealed()
	}

	return nil
}

// penalizeTimeout folds the seat and moves the penalty to the treasury
func (t *Table) penalizeTimeout(seat *Seat) {
	penalty := seat.contributed * TimeoutPenaltyPercent / 100
	if penalty > seat.Stack {
		penalty = seat.Stack
	}

	if penalty > 0 {
		if err := t.ledger.Transfer(t.Account(), chips.TreasuryAccount, penalty); err != nil {
			panic("table account could not cover a timeout penalty: " + err.Error())
		}

		seat.Stack -= penalty
	}

	seat.Status = StatusFolded
	seat.timedOut = true

	t.logger.WithFields(logrus.Fields{
		"seat":    seat.Index,
		"penalty": penalty,
	}).Info("timeout claimed")
}

func (t *Table) allCommitted() bool {
	for _, index := range t.hand.order {
		seat := t.seats[index]
		if seat.InHand() && seat.commitHash == "" {
			return false
		}
	}

	return true
}
