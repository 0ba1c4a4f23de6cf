package model

import "errors"

// Domain error sentinels. Services return these (possibly wrapped with
// context via fmt.Errorf and %w); the API layer matches them with errors.Is
// and maps each to a fixed status code.
var (
	// ErrValidation covers malformed or out-of-bounds input, including
	// unrecognized status values.
	ErrValidation = errors.New("validation failed")

	// ErrEmailTaken is returned when a registration collides with an
	// existing account. The storage-level unique index on email is the
	// backstop for the check-then-insert race.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned for both unknown emails and wrong
	// passwords so callers cannot enumerate registered accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound means the resource does not exist. It is checked before
	// any ownership decision so a missing resource never reads as forbidden.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the resource exists but the caller is neither its
	// owner nor an admin.
	ErrForbidden = errors.New("forbidden")
)
