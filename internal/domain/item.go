package domain

import "time"

// Item is an opaque record stored on behalf of exactly one owner. The
// payload is never interpreted by the service; ownership may move between
// users via a transfer, at which point the previous owner loses access.
type Item struct {
	ID        int64
	OwnerID   int64
	Payload   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
