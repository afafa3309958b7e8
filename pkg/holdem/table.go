// Package holdem implements a five-seat no-limit Texas Hold'em table as a
// strictly sequential state machine. Every exported operation validates fully
// before mutating; a returned error means the table is unchanged.
package holdem

import (
	"fmt"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pokertable-server/pkg/chips"
)

// State is where the table is in its lifecycle
type State int

// Constants for State
const (
	StateEmpty State = iota
	StateSeated
	StateHandInProgress
	StateSettled
	StatePaused
	StateAborted
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateSeated:
		return "seated"
	case StateHandInProgress:
		return "hand-in-progress"
	case StateSettled:
		return "settled"
	case StatePaused:
		return "paused"
	case StateAborted:
		return "aborted"
	default:
		panic(fmt.Sprintf("unknown state: %d", s))
	}
}

// Table is a poker table. It persists across hands; a handState exists only
// between StartHand and settlement.
type Table struct {
	UUID string

	opts       Options
	seats      [NumSeats]*Seat
	button     int
	deadButton bool
	paused     bool
	aborted    bool
	settled    bool
	hand       *handState

	lastResult *HandResult

	ledger chips.Ledger
	clock  quartz.Clock
	logger logrus.FieldLogger
}

// NewTable returns a new table
func NewTable(logger logrus.FieldLogger, ledger chips.Ledger, clock quartz.Clock, opts Options) (*Table, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	t := &Table{
		UUID:   uuid.New().String(),
		opts:   opts,
		ledger: ledger,
		clock:  clock,
	}

	for i := range t.seats {
		t.seats[i] = &Seat{Index: i}
	}

	t.logger = logger.WithField("table", t.UUID)
	return t, nil
}

// Options returns the table configuration
func (t *Table) Options() Options {
	return t.opts
}

// Button returns the seat index currently holding the button
func (t *Table) Button() int {
	return t.button
}

// Account is the ledger store holding every seated stack and live pot
func (t *Table) Account() string {
	return "table:" + t.UUID
}

// State derives the lifecycle state
func (t *Table) State() State {
	switch {
	case t.paused:
		return StatePaused
	case t.hand != nil:
		return StateHandInProgress
	case t.aborted:
		return StateAborted
	case t.settled:
		return StateSettled
	case t.occupiedCount() == 0:
		return StateEmpty
	}

	return StateSeated
}

// Seat returns the seat at the index
func (t *Table) Seat(index int) (*Seat, error) {
	if index < 0 || index >= NumSeats {
		return nil, newError(NotFound, "no seat at index %d", index)
	}

	return t.seats[index], nil
}

// JoinTable seats the player with a buy-in within the configured range.
// The buy-in moves from the player's chip store to the table's before the
// seat is occupied; a failed transfer leaves the table unchanged.
func (t *Table) JoinTable(index int, playerID string, buyIn int) error {
	if t.paused {
		return newError(InvalidState, "table is paused")
	}

	seat, err := t.Seat(index)
	if err != nil {
		return err
	}

	if seat.Occupied() {
		return newError(InvalidState, "seat %d is taken", index)
	}

	if playerID == "" {
		return newError(NotFound, "player is required")
	}

	for _, s := range t.seats {
		if s.Occupied() && s.PlayerID == playerID {
			return newError(InvalidState, "%s is already seated", playerID)
		}
	}

	if buyIn < t.opts.MinBuyIn || buyIn > t.opts.MaxBuyIn {
		return newError(InvalidAmount, "buy-in must be between %d and %d", t.opts.MinBuyIn, t.opts.MaxBuyIn)
	}

	if err := t.ledger.Transfer(playerID, t.Account(), buyIn); err != nil {
		return newError(InsufficientFunds, "could not buy in: %v", err)
	}

	seat.PlayerID = playerID
	seat.Stack = buyIn
	if t.hand != nil {
		// joined mid-hand; sits out until the next hand starts
		seat.Status = StatusSatOut
		seat.joinedMidHand = true
	} else {
		seat.Status = StatusActive
	}

	t.logger.WithFields(logrus.Fields{
		"seat":   index,
		"player": playerID,
		"buyIn":  buyIn,
	}).Info("player joined")

	return nil
}

// SitOut marks the seat unavailable for upcoming hands without vacating it
func (t *Table) SitOut(index int) error {
	seat, err := t.occupiedSeat(index)
	if err != nil {
		return err
	}

	if t.hand != nil && t.hand.contains(index) {
		return newError(InvalidState, "cannot sit out during a hand")
	}

	seat.Status = StatusSatOut
	seat.joinedMidHand = false
	return nil
}

// SitIn returns a sat-out seat to play
func (t *Table) SitIn(index int) error {
	seat, err := t.occupiedSeat(index)
	if err != nil {
		return err
	}

	if seat.Status != StatusSatOut {
		return newError(InvalidState, "seat %d is not sitting out", index)
	}

	seat.Status = StatusActive
	return nil
}

// LeaveAfterHand schedules the seat to vacate when the current hand settles.
// With no hand in progress the seat vacates immediately.
func (t *Table) LeaveAfterHand(index int) error {
	seat, err := t.occupiedSeat(index)
	if err != nil {
		return err
	}

	if t.hand == nil {
		t.vacateSeat(seat)
		return nil
	}

	seat.pendingLeave = true
	return nil
}

// Pause stops the table from accepting any action except Resume
func (t *Table) Pause() error {
	if t.paused {
		return newError(InvalidState, "table is already paused")
	}

	t.paused = true
	t.logger.Info("table paused")
	return nil
}

// Resume lifts a pause
func (t *Table) Resume() error {
	if !t.paused {
		return newError(InvalidState, "table is not paused")
	}

	t.paused = false
	t.logger.Info("table resumed")
	return nil
}

// Abort ends the in-progress hand and returns every contribution to its
// seat's stack. No hands are compared and no fee is charged. Safe to call
// from any in-progress phase, paused included.
func (t *Table) Abort() error {
	if t.hand == nil {
		return newError(InvalidState, "no hand in progress")
	}

	for _, index := range t.hand.order {
		seat := t.seats[index]
		seat.Stack += seat.contributed
	}

	t.logger.Warn("hand aborted; contributions returned")

	t.finishHand(false)
	t.aborted = true
	t.settled = false

	return nil
}

func (t *Table) occupiedSeat(index int) (*Seat, error) {
	if t.paused {
		return nil, newError(InvalidState, "table is paused")
	}

	seat, err := t.Seat(index)
	if err != nil {
		return nil, err
	}

	if !seat.Occupied() {
		return nil, newError(NotFound, "seat %d is empty", index)
	}

	return seat, nil
}

func (t *Table) occupiedCount() int {
	count := 0
	for _, seat := range t.seats {
		if seat.Occupied() {
			count++
		}
	}

	return count
}

// vacateSeat returns the stack to the player's chip store and empties the seat
func (t *Table) vacateSeat(seat *Seat) {
	if seat.Stack > 0 {
		if err := t.ledger.Transfer(t.Account(), seat.PlayerID, seat.Stack); err != nil {
			// the table account always covers its seats' stacks
			panic(fmt.Sprintf("table account could not cash out seat %d: %v", seat.Index, err))
		}
	}

	t.logger.WithFields(logrus.Fields{
		"seat":   seat.Index,
		"player": seat.PlayerID,
	}).Info("player left")

	seat.vacate()
}

// nextOccupied returns the first occupied seat strictly after index,
// wrapping around the table. Returns index if no other seat is occupied.
func (t *Table) nextOccupied(index int) int {
	for i := 1; i <= NumSeats; i++ {
		next := (index + i) % NumSeats
		if t.seats[next].Occupied() {
			return next
		}
	}

	return index
}

// advanceButton moves the button one position for the next hand. If the seat
// due to receive the button just vacated, the button parks on that empty
// position for one hand (the dead button) so the blinds stay fair.
// vacated holds the seat indexes that left at this settlement.
func (t *Table) advanceButton(vacated map[int]bool) {
	if t.deadButton {
		t.deadButton = false
		t.button = t.nextOccupied(t.button)
		return
	}

	// the button holder left; the next hand is dead-button and the blinds
	// still advance exactly one seat
	if vacated[t.button] && t.occupiedCount() >= 2 {
		t.deadButton = true
		t.button = t.nextOccupied(t.button)
		return
	}

	for i := 1; i <= NumSeats; i++ {
		next := (t.button + i) % NumSeats
		if vacated[next] && t.occupiedCount() >= 2 {
			t.deadButton = true
			t.button = next
			return
		}

		if t.seats[next].Occupied() {
			t.button = next
			return
		}
	}
}

// finishHand clears the hand state, processes scheduled leaves, and advances
// the button when the hand completed normally
func (t *Table) finishHand(advanceButton bool) {
	t.hand = nil
	t.settled = true
	t.aborted = false

	vacated := make(map[int]bool)
	for _, seat := range t.seats {
		if !seat.Occupied() {
			continue
		}

		seat.newHand()

		if seat.pendingLeave {
			vacated[seat.Index] = true
			t.vacateSeat(seat)
		}
	}

	if advanceButton {
		t.advanceButton(vacated)
	}
}
