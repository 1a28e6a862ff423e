package repository

import (
	"context"

	"itemshare/internal/domain"
)

// ItemRepository exposes persistence operations for Item records.
//
// The owner-scoped methods use a single predicate for both existence and
// ownership: an item owned by someone else reads the same as a missing one.
type ItemRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, item *domain.Item) (int64, error)
	// ListByOwner returns a restartable page of the owner's items ordered by
	// id ascending.
	ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]domain.Item, error)
	GetOwned(ctx context.Context, ownerID, id int64) (*domain.Item, error)
	DeleteOwned(ctx context.Context, ownerID, id int64) error
	// Get fetches an item regardless of owner. Used by the transfer engine.
	Get(ctx context.Context, id int64) (*domain.Item, error)
	// ReassignOwner moves the item to newOwnerID as one atomic update; it
	// does not check the previous owner (last writer wins).
	ReassignOwner(ctx context.Context, id, newOwnerID int64) error
}
