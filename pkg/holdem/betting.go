package holdem

import "github.com/sirupsen/logrus"

// InTurn returns the seat currently on the clock, or -1 when no betting
// decision is pending
func (t *Table) InTurn() int {
	if t.hand == nil || t.hand.phase != phaseBetting || len(t.hand.queue) == 0 {
		return -1
	}

	return t.hand.queue[0]
}

// CallAmount returns how many chips the seat owes to match the current bet
func (t *Table) CallAmount(index int) (int, error) {
	if t.hand == nil || t.hand.phase != phaseBetting {
		return 0, newError(InvalidState, "not in a betting round")
	}

	seat, err := t.Seat(index)
	if err != nil {
		return 0, err
	}

	if !t.hand.contains(index) {
		return 0, newError(InvalidState, "seat %d is not in the hand", index)
	}

	owed := t.hand.currentBet - seat.streetBet
	if owed < 0 {
		owed = 0
	}

	return owed, nil
}

// inTurnSeat validates that the seat exists, is in the hand, and is on the clock
func (t *Table) inTurnSeat(index int) (*Seat, error) {
	if t.hand.phase != phaseBetting {
		return nil, newError(InvalidState, "not in a betting round")
	}

	seat, err := t.Seat(index)
	if err != nil {
		return nil, err
	}

	if it := t.InTurn(); it != index {
		return nil, newError(InvalidState, "it is not seat %d's turn", index)
	}

	return seat, nil
}

func (t *Table) check(index int) error {
	seat, err := t.inTurnSeat(index)
	if err != nil {
		return err
	}

	if seat.streetBet != t.hand.currentBet {
		return newError(InvalidState, "cannot check facing a bet")
	}

	t.completeTurn()
	return nil
}

func (t *Table) call(index int) error {
	seat, err := t.inTurnSeat(index)
	if err != nil {
		return err
	}

	owed := t.hand.currentBet - seat.streetBet
	if owed <= 0 {
		return newError(InvalidState, "there is no bet to call")
	}

	// a short stack calls all-in for less
	seat.put(owed)
	t.completeTurn()
	return nil
}

func (t *Table) bet(index, amount int) error {
	seat, err := t.inTurnSeat(index)
	if err != nil {
		return err
	}

	if t.hand.currentBet > 0 {
		return newError(InvalidState, "there is already a bet; raise instead")
	}

	if amount <= 0 {
		return newError(InvalidAmount, "bet must be greater than zero")
	}

	if amount > seat.Stack {
		return newError(InsufficientFunds, "bet of %d exceeds stack of %d", amount, seat.Stack)
	}

	// an under-sized bet is only legal as an all-in
	if amount < t.opts.BigBlind && amount != seat.Stack {
		return newError(InvalidAmount, "bet must be at least the big blind of %d", t.opts.BigBlind)
	}

	seat.put(amount)
	t.hand.currentBet = amount
	t.hand.minRaise = amount
	t.hand.lastAggressor = index

	t.reopenAction(index)
	t.completeTurn()
	return nil
}

func (t *Table) raise(index, amount int) error {
	seat, err := t.inTurnSeat(index)
	if err != nil {
		return err
	}

	hand := t.hand
	if hand.currentBet == 0 {
		return newError(InvalidState, "there is no bet to raise; bet instead")
	}

	if amount <= hand.currentBet {
		return newError(InvalidAmount, "raise must be greater than the current bet of %d", hand.currentBet)
	}

	needed := amount - seat.streetBet
	if needed > seat.Stack {
		return newError(InsufficientFunds, "raise to %d exceeds stack", amount)
	}

	// below-minimum raises are only legal as an all-in
	isAllIn := needed == seat.Stack
	if amount < hand.currentBet+hand.minRaise && !isAllIn {
		return newError(InvalidAmount, "raise must be to at least %d", hand.currentBet+hand.minRaise)
	}

	if amount-hand.currentBet >= hand.minRaise {
		hand.minRaise = amount - hand.currentBet
	}

	seat.put(needed)
	hand.currentBet = amount
	hand.lastAggressor = index

	t.reopenAction(index)
	t.completeTurn()
	return nil
}

func (t *Table) fold(index int) error {
	seat, err := t.inTurnSeat(index)
	if err != nil {
		return err
	}

	seat.Status = StatusFolded

	if t.inHandSeats() == 1 {
		t.settleSingleSurvivor()
		return nil
	}

	t.completeTurn()
	return nil
}

// reopenAction rebuilds the queue after a bet or raise: every other seat that
// can still act gets another turn, in order after the aggressor
func (t *Table) reopenAction(aggressor int) {
	hand := t.hand

	at := 0
	for i, s := range hand.order {
		if s == aggressor {
			at = i
			break
		}
	}

	hand.queue = hand.queue[:0]
	hand.queue = append(hand.queue, aggressor) // popped by completeTurn
	for i := 1; i < len(hand.order); i++ {
		index := hand.order[(at+i)%len(hand.order)]
		if t.seats[index].canAct() {
			hand.queue = append(hand.queue, index)
		}
	}
}

// completeTurn pops the acting seat and either passes the clock or closes the
// street when nobody is left to act
func (t *Table) completeTurn() {
	hand := t.hand
	hand.queue = hand.queue[1:]

	// skip seats that can no longer act (folded or went all-in meanwhile)
	for len(hand.queue) > 0 && !t.seats[hand.queue[0]].canAct() {
		hand.queue = hand.queue[1:]
	}

	if len(hand.queue) == 0 {
		t.closeStreet()
		return
	}

	hand.actionDeadline = t.clock.Now().Add(t.opts.ActionWindow)

	t.logger.WithFields(logrus.Fields{
		"street": hand.street.String(),
		"inTurn": hand.queue[0],
	}).Debug("action passed")
}
