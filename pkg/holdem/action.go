package holdem

import (
	"encoding/json"
	"fmt"

	"pokertable-server/pkg/deck"
)

// ActionType discriminates the Action union
type ActionType string

// Constants for ActionType
const (
	ActionCheck        ActionType = "check"
	ActionCall         ActionType = "call"
	ActionBet          ActionType = "bet"
	ActionRaise        ActionType = "raise"
	ActionFold         ActionType = "fold"
	ActionCommit       ActionType = "commit"
	ActionReveal       ActionType = "reveal"
	ActionClaimTimeout ActionType = "claim-timeout"
)

// Action is one externally submitted table action. Exactly the fields the
// type calls for are read; the rest are ignored.
type Action struct {
	Type ActionType `json:"type"`
	Seat int        `json:"seat"`

	// Amount is the total street bet for bet and raise
	Amount int `json:"amount,omitempty"`

	// Hash is the hex commitment for commit
	Hash string `json:"hash,omitempty"`

	// Cards and Nonce open the commitment for reveal
	Cards deck.Hand `json:"cards,omitempty"`
	Nonce string    `json:"nonce,omitempty"`
}

// Apply validates and applies a single action. Actions arrive one at a time;
// the caller serializes submissions. On error the table is unchanged.
func (t *Table) Apply(action Action) error {
	if t.paused {
		return newError(InvalidState, "table is paused")
	}

	if t.hand == nil {
		return newError(InvalidState, "no hand in progress")
	}

	switch action.Type {
	case ActionCheck:
		return t.check(action.Seat)
	case ActionCall:
		return t.call(action.Seat)
	case ActionBet:
		return t.bet(action.Seat, action.Amount)
	case ActionRaise:
		return t.raise(action.Seat, action.Amount)
	case ActionFold:
		return t.fold(action.Seat)
	case ActionCommit:
		return t.Commit(action.Seat, action.Hash)
	case ActionReveal:
		return t.Reveal(action.Seat, action.Cards, action.Nonce)
	case ActionClaimTimeout:
		return t.ClaimTimeout(action.Seat)
	default:
		return newError(InvalidState, fmt.Sprintf("%s is not a valid action", action.Type))
	}
}

// MarshalJSON encodes JSON
func (a ActionType) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(a))
}
