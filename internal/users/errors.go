package users

import "errors"

var (
	// ErrDuplicateEmail is returned when the requested email is already
	// registered, whether caught by the pre-check or by the unique index.
	ErrDuplicateEmail = errors.New("email already in use")

	// ErrInvalidCredentials unifies unknown-email and wrong-password so the
	// response does not reveal whether an email exists.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound is returned for profile lookups of unknown user ids.
	ErrNotFound = errors.New("user not found")
)

// ValidationError describes rejected registration input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }
