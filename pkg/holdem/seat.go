package holdem

import (
	"encoding/json"
	"fmt"

	"pokertable-server/pkg/deck"
)

// NumSeats is how many seats every table has
const NumSeats = 5

// SeatStatus is the status of a seat within the current hand
type SeatStatus int

// Constants for SeatStatus
const (
	StatusEmpty SeatStatus = iota
	StatusActive
	StatusFolded
	StatusAllIn
	StatusSatOut
)

// String returns the string representation of the status
func (s SeatStatus) String() string {
	switch s {
	case StatusEmpty:
		return "empty"
	case StatusActive:
		return "active"
	case StatusFolded:
		return "folded"
	case StatusAllIn:
		return "all-in"
	case StatusSatOut:
		return "sat-out"
	default:
		panic(fmt.Sprintf("unknown seat status: %d", s))
	}
}

// MarshalJSON encodes JSON
func (s SeatStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Seat is one of the table's five seats. Seats persist across hands; the
// per-hand fields are cleared at settlement.
type Seat struct {
	Index    int
	PlayerID string
	Stack    int
	Status   SeatStatus

	// streetBet is how much the seat has put in on the current street
	streetBet int
	// contributed is how much the seat has put in over the whole hand
	contributed int

	commitHash   string
	holeCards    deck.Hand
	revealed     bool
	timedOut     bool
	pendingLeave bool

	// joinedMidHand marks a seat bought in while a hand was running; it sits
	// out that hand and is dealt in automatically afterwards
	joinedMidHand bool
}

// Occupied returns true if a player holds the seat
func (s *Seat) Occupied() bool {
	return s.Status != StatusEmpty
}

// InHand returns true if the seat still holds cards this hand
func (s *Seat) InHand() bool {
	return s.Status == StatusActive || s.Status == StatusAllIn
}

// canAct returns true if the seat can check, call, bet, raise, or fold
func (s *Seat) canAct() bool {
	return s.Status == StatusActive
}

// put moves up to amount chips from the stack into the pot and returns the
// amount actually moved. Moving the entire stack puts the seat all-in.
func (s *Seat) put(amount int) int {
	if amount >= s.Stack {
		amount = s.Stack
		s.Status = StatusAllIn
	}

	s.Stack -= amount
	s.streetBet += amount
	s.contributed += amount

	return amount
}

// newHand resets the per-hand fields
func (s *Seat) newHand() {
	s.streetBet = 0
	s.contributed = 0
	s.commitHash = ""
	s.holeCards = nil
	s.revealed = false
	s.timedOut = false

	if s.joinedMidHand {
		s.joinedMidHand = false
		s.Status = StatusActive
		return
	}

	if s.Occupied() && s.Status != StatusSatOut {
		s.Status = StatusActive
	}
}

// vacate empties the seat
func (s *Seat) vacate() {
	*s = Seat{Index: s.Index}
}
