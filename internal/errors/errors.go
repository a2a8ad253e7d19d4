package errors

import "errors"

var (
	NotFound      = errors.New("not found")
	AlreadyExists = errors.New("already exists")
	Forbidden     = errors.New("forbidden")
	Invalid       = errors.New("invalid input")
	Unauthorized  = errors.New("unauthorized")
)

// Invalidf returns an error wrapping Invalid with a human readable reason.
func Invalidf(reason string) error {
	return &reasonError{kind: Invalid, reason: reason}
}

// Forbiddenf returns an error wrapping Forbidden with a human readable reason.
func Forbiddenf(reason string) error {
	return &reasonError{kind: Forbidden, reason: reason}
}

type reasonError struct {
	kind   error
	reason string
}

func (e *reasonError) Error() string { return e.reason }

func (e *reasonError) Unwrap() error { return e.kind }
