// Package apperr carries the error vocabulary shared by services and
// handlers. Every failure a request can produce falls into one of four
// kinds; handlers translate the kind into an HTTP status and never
// inspect anything else.
package apperr

import "errors"

type Kind uint8

const (
	// Validation covers bad input detected before anything is staged:
	// self-likes, self-sends, unknown recipients, invalid page numbers.
	Validation Kind = iota + 1
	// NotFound is a point lookup that matched nothing.
	NotFound
	// Authorization is a caller acting on a resource they are no party to.
	Authorization
	// Persistence is a commit the storage layer rejected. Callers must
	// assume nothing was persisted.
	Persistence
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New returns a kinded error with no underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and caller-facing message to an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf reports the kind of err, or 0 if err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// MessageOf returns the caller-facing message of err, falling back to
// fallback for errors outside the taxonomy.
func MessageOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return fallback
}
