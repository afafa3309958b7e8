package holdem

import (
	"time"

	"pokertable-server/pkg/deck"
)

// SeatInfo is a read-only snapshot of one seat
type SeatInfo struct {
	Index        int        `json:"index"`
	PlayerID     string     `json:"playerId,omitempty"`
	Stack        int        `json:"stack"`
	Status       SeatStatus `json:"status"`
	StreetBet    int        `json:"streetBet"`
	Contributed  int        `json:"contributed"`
	Committed    bool       `json:"committed"`
	Revealed     bool       `json:"revealed"`
	HoleCards    deck.Hand  `json:"holeCards,omitempty"`
	TimedOut     bool       `json:"timedOut"`
	PendingLeave bool       `json:"pendingLeave"`
}

// HandInfo is a read-only snapshot of the in-progress hand
type HandInfo struct {
	Street         Street     `json:"street"`
	Community      deck.Hand  `json:"community"`
	CurrentBet     int        `json:"currentBet"`
	MinRaiseTo     int        `json:"minRaiseTo"`
	InTurn         int        `json:"inTurn"`
	LastAggressor  int        `json:"lastAggressor"`
	Order          []int      `json:"order"`
	CommitDeadline *time.Time `json:"commitDeadline,omitempty"`
	RevealDeadline *time.Time `json:"revealDeadline,omitempty"`
	ActionDeadline *time.Time `json:"actionDeadline,omitempty"`
}

// TableInfo is a read-only snapshot of the table
type TableInfo struct {
	UUID       string      `json:"uuid"`
	State      string      `json:"state"`
	Options    Options     `json:"options"`
	Button     int         `json:"button"`
	DeadButton bool        `json:"deadButton"`
	Seats      []SeatInfo  `json:"seats"`
	Hand       *HandInfo   `json:"hand,omitempty"`
	LastResult *HandResult `json:"lastResult,omitempty"`
}

// Info returns a snapshot of the table. Hole cards only appear once revealed.
func (t *Table) Info() TableInfo {
	info := TableInfo{
		UUID:       t.UUID,
		State:      t.State().String(),
		Options:    t.opts,
		Button:     t.button,
		DeadButton: t.deadButton,
		Seats:      make([]SeatInfo, NumSeats),
		LastResult: t.lastResult,
	}

	for i, seat := range t.seats {
		info.Seats[i] = t.seatInfo(seat)
	}

	if hand := t.hand; hand != nil {
		handInfo := &HandInfo{
			Street:        hand.street,
			Community:     hand.community.Clone(),
			CurrentBet:    hand.currentBet,
			MinRaiseTo:    hand.currentBet + hand.minRaise,
			InTurn:        t.InTurn(),
			LastAggressor: hand.lastAggressor,
			Order:         append([]int{}, hand.order...),
		}

		switch hand.phase {
		case phaseCommit:
			d := hand.commitDeadline
			handInfo.CommitDeadline = &d
		case phaseBetting:
			d := hand.actionDeadline
			handInfo.ActionDeadline = &d
		case phaseReveal:
			d := hand.revealDeadline
			handInfo.RevealDeadline = &d
		}

		info.Hand = handInfo
	}

	return info
}

// SeatInfo returns a snapshot of a single seat
func (t *Table) SeatInfo(index int) (SeatInfo, error) {
	seat, err := t.Seat(index)
	if err != nil {
		return SeatInfo{}, err
	}

	return t.seatInfo(seat), nil
}

func (t *Table) seatInfo(seat *Seat) SeatInfo {
	info := SeatInfo{
		Index:        seat.Index,
		PlayerID:     seat.PlayerID,
		Stack:        seat.Stack,
		Status:       seat.Status,
		StreetBet:    seat.streetBet,
		Contributed:  seat.contributed,
		Committed:    seat.commitHash != "",
		Revealed:     seat.revealed,
		TimedOut:     seat.timedOut,
		PendingLeave: seat.pendingLeave,
	}

	if seat.revealed {
		info.HoleCards = seat.holeCards.Clone()
	}

	return info
}
