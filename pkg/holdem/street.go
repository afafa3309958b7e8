package holdem

import (
	"encoding/json"
	"fmt"
)

// Street is a betting round
type Street int

// Constants for Street
const (
	StreetPreFlop Street = iota
	StreetFlop
	StreetTurn
	StreetRiver
	StreetShowdown
)

// String returns the string representation of the street
func (s Street) String() string {
	switch s {
	case StreetPreFlop:
		return "pre-flop"
	case StreetFlop:
		return "flop"
	case StreetTurn:
		return "turn"
	case StreetRiver:
		return "river"
	case StreetShowdown:
		return "showdown"
	default:
		panic(fmt.Sprintf("unknown street: %d", s))
	}
}

// MarshalJSON encodes JSON
func (s Street) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// communityCardsFor returns how many community cards are on the board by the street
func communityCardsFor(s Street) int {
	switch s {
	case StreetPreFlop:
		return 0
	case StreetFlop:
		return 3
	case StreetTurn:
		return 4
	default:
		return 5
	}
}

// phase is where the hand is between start and settlement
type phase int

const (
	// phaseCommit: blinds are posted; seats are committing their hole cards
	phaseCommit phase = iota
	// phaseBetting: a betting street is running
	phaseBetting
	// phaseReveal: betting is done; seats are revealing at showdown
	phaseReveal
)
