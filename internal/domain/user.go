package domain

import "time"

// User represents an authenticated user of the system.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	// SessionToken is the opaque bearer credential issued at login. Each
	// login overwrites it, invalidating any previously issued token. Empty
	// until the first login.
	SessionToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
