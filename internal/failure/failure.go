// Package failure defines the closed set of domain failures raised by the
// user store and service, and their translation into wire-level error records.
package failure

import (
	"errors"
	"fmt"
)

// Kind enumerates the failure variants.
type Kind int

const (
	Unexpected Kind = iota
	NotFound
	Conflict
	BadInput
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not found"
	case Conflict:
		return "conflict"
	case BadInput:
		return "bad input"
	default:
		return "unexpected"
	}
}

// Messages used by the store. They match what existing clients already see.
const (
	MsgNoValue   = "No value present"
	MsgDuplicate = "User with current id already exists."
)

// Error is a typed domain failure carrying a message.
type Error struct {
	Kind    Kind
	Message string
	Err     error // optional cause
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports kind equality so that errors.Is(err, failure.ErrNotFound) works
// for any NotFound failure regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound = &Error{Kind: NotFound}
	ErrConflict = &Error{Kind: Conflict}
	ErrBadInput = &Error{Kind: BadInput}
)

func NewNotFound(msg string) *Error { return &Error{Kind: NotFound, Message: msg} }
func NewConflict(msg string) *Error { return &Error{Kind: Conflict, Message: msg} }
func NewBadInput(msg string) *Error { return &Error{Kind: BadInput, Message: msg} }

// NewUnexpected wraps an arbitrary cause as an Unexpected failure.
func NewUnexpected(msg string, cause error) *Error {
	return &Error{Kind: Unexpected, Message: msg, Err: cause}
}

// KindOf returns the kind of err, Unexpected when err is not a *Error.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return Unexpected
}
