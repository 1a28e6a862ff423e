package service

import (
	"context"
	"fmt"

	"itemshare/internal/domain"
	"itemshare/internal/repository"
)

// DefaultListLimit caps a listing page when the caller does not ask for a
// specific size.
const DefaultListLimit = 10

// ItemService coordinates item CRUD for an authenticated owner. Every method
// is scoped to the owner: an item belonging to someone else is
// indistinguishable from a missing one.
type ItemService interface {
	CreateItem(ctx context.Context, ownerID int64, payload string) (*domain.Item, error)
	ListItems(ctx context.Context, ownerID int64, offset, limit int) ([]domain.Item, error)
	GetItem(ctx context.Context, ownerID, id int64) (*domain.Item, error)
	DeleteItem(ctx context.Context, ownerID, id int64) error
}

type itemService struct {
	items repository.ItemRepository
}

func NewItemService(items repository.ItemRepository) ItemService {
	return &itemService{items: items}
}

func (s *itemService) CreateItem(ctx context.Context, ownerID int64, payload string) (*domain.Item, error) {
	if payload == "" {
		return nil, fmt.Errorf("data is required: %w", domain.ErrInvalidInput)
	}

	item := &domain.Item{
		OwnerID: ownerID,
		Payload: payload,
	}

	if _, err := s.items.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *itemService) ListItems(ctx context.Context, ownerID int64, offset, limit int) ([]domain.Item, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}
	return s.items.ListByOwner(ctx, ownerID, offset, limit)
}

func (s *itemService) GetItem(ctx context.Context, ownerID, id int64) (*domain.Item, error) {
	return s.items.GetOwned(ctx, ownerID, id)
}

func (s *itemService) DeleteItem(ctx context.Context, ownerID, id int64) error {
	return s.items.DeleteOwned(ctx, ownerID, id)
}
