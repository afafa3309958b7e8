package holdem

import (
	"errors"
	"time"
)

// ServiceFeeBasisPoints is the fixed service fee charged on every settled pot
const ServiceFeeBasisPoints = 30

// TimeoutPenaltyPercent is the share of a seat's hand contribution forfeited
// when a timeout claim against it succeeds
const TimeoutPenaltyPercent = 10

// Options configures a table
type Options struct {
	SmallBlind int  `json:"smallBlind"`
	BigBlind   int  `json:"bigBlind"`
	Ante       int  `json:"ante"`
	MinBuyIn   int  `json:"minBuyIn"`
	MaxBuyIn   int  `json:"maxBuyIn"`
	Straddle   bool `json:"straddle"`

	// CommitWindow bounds how long seats have to commit their hole cards
	CommitWindow time.Duration `json:"commitWindow"`
	// RevealWindow bounds how long seats have to reveal at showdown
	RevealWindow time.Duration `json:"revealWindow"`
	// ActionWindow bounds how long the in-turn seat has to act
	ActionWindow time.Duration `json:"actionWindow"`
}

// DefaultOptions returns the default table options
func DefaultOptions() Options {
	return Options{
		SmallBlind:   1,
		BigBlind:     2,
		Ante:         0,
		MinBuyIn:     40,
		MaxBuyIn:     400,
		CommitWindow: time.Second * 30,
		RevealWindow: time.Second * 30,
		ActionWindow: time.Second * 30,
	}
}

func validateOptions(opts Options) error {
	if opts.SmallBlind <= 0 {
		return errors.New("small blind must be greater than zero")
	}

	if opts.BigBlind < opts.SmallBlind {
		return errors.New("big blind must be at least the small blind")
	}

	if opts.Ante < 0 {
		return errors.New("ante must be >= 0")
	}

	if opts.MinBuyIn <= 0 || opts.MaxBuyIn < opts.MinBuyIn {
		return errors.New("buy-in range is invalid")
	}

	if opts.MinBuyIn < opts.BigBlind {
		return errors.New("minimum buy-in must cover the big blind")
	}

	if opts.CommitWindow <= 0 || opts.RevealWindow <= 0 || opts.ActionWindow <= 0 {
		return errors.New("deadline windows must be greater than zero")
	}

	return nil
}
