// Package errkind classifies failures that cross service boundaries so that
// callers can dispatch on the failure kind instead of matching error strings.
// Handlers map each kind to exactly one HTTP status; anything untagged is
// treated as an internal failure and surfaced opaquely.
package errkind

import (
	"errors"
	"fmt"
)

// Kind identifies a class of failure.
type Kind int

const (
	// Internal is the zero kind: an unexpected failure that must not leak
	// detail to clients.
	Internal Kind = iota
	// Validation marks malformed input (bad date, unknown enum value).
	Validation
	// Conflict marks a uniqueness violation.
	Conflict
	// NotFound marks a missing resource.
	NotFound
	// Unauthorized marks bad credentials.
	Unauthorized
	// InvalidToken marks a malformed, forged, or expired bearer token.
	InvalidToken
	// Forbidden marks an ownership denial.
	Forbidden
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	case NotFound:
		return "not_found"
	case Unauthorized:
		return "unauthorized"
	case InvalidToken:
		return "invalid_token"
	case Forbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error is a kind-tagged error.
type Error struct {
	kind Kind
	msg  string
	err  error
}

// New creates a kind-tagged error with the given message.
func New(kind Kind, msg string) error {
	return &Error{kind: kind, msg: msg}
}

// Newf creates a kind-tagged error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap tags an underlying error with a kind and message. The underlying
// error stays reachable through errors.Unwrap for logging; only msg is
// client-visible.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{kind: kind, msg: msg, err: err}
}

// Error returns the client-visible message.
func (e *Error) Error() string {
	return e.msg
}

// Unwrap exposes the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.err
}

// Kind returns the error's kind.
func (e *Error) Kind() Kind {
	return e.kind
}

// KindOf returns the kind of err, or Internal if err carries no kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return Internal
}

// Is reports whether err is tagged with the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.kind == kind
}
