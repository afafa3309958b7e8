package holdem

import (
	"errors"
	"fmt"
)

// Kind classifies why an action was rejected
type Kind int

// Constants for Kind
const (
	// InvalidState is an action that is illegal for the current street or phase
	InvalidState Kind = iota
	// InsufficientFunds is a buy-in, bet, or raise exceeding the available stack
	InsufficientFunds
	// InvalidAmount is an amount outside the configured or required bounds
	InvalidAmount
	// NotAuthorized is a non-admin invoking an admin-only operation
	NotAuthorized
	// NotFound is an unknown table, seat, or hand reference
	NotFound
	// DeadlineNotReached is a timeout claim submitted before the deadline
	DeadlineNotReached
	// DeadlinePassed is a commit or reveal submitted after the window closed
	DeadlinePassed
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case InvalidState:
		return "invalid-state"
	case InsufficientFunds:
		return "insufficient-funds"
	case InvalidAmount:
		return "invalid-amount"
	case NotAuthorized:
		return "not-authorized"
	case NotFound:
		return "not-found"
	case DeadlineNotReached:
		return "deadline-not-reached"
	case DeadlinePassed:
		return "deadline-passed"
	default:
		panic(fmt.Sprintf("unknown kind: %d", k))
	}
}

// Error is a rejected table action. The table is guaranteed to be unchanged
// when an Error is returned.
type Error struct {
	Kind Kind
	msg  string
}

func (e *Error) Error() string {
	return e.msg
}

func newError(kind Kind, format string, a ...interface{}) *Error {
	return &Error{
		Kind: kind,
		msg:  fmt.Sprintf(format, a...),
	}
}

// NewError returns a kinded Error. Callers sitting in front of the table use
// it so their rejections map to HTTP statuses the same way the table's do.
func NewError(kind Kind, format string, a ...interface{}) *Error {
	return newError(kind, format, a...)
}

// IsKind returns true if err is a table Error of the given kind
func IsKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}

	return false
}
