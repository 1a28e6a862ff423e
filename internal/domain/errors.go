package domain

import "errors"

// Failure kinds surfaced by repositories and services. The HTTP layer maps
// each kind to a status exactly once; anything not wrapping one of these is
// treated as an internal fault.
var (
	// ErrInvalidInput indicates a malformed or missing caller-supplied field.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound indicates the referenced entity is absent or not owned by
	// the caller. The two cases are deliberately indistinguishable so that
	// existence of another user's records does not leak.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness violation.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidCredentials indicates a known identity with a wrong secret.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthenticated indicates the bearer token is missing or does not
	// resolve to any user.
	ErrUnauthenticated = errors.New("invalid token or token expired")
)
