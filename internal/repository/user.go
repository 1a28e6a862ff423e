package repository

import (
	"context"

	"itemshare/internal/domain"
)

// UserRepository defines persistence operations for User entities.
type UserRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, user *domain.User) (int64, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// SetSessionToken overwrites the user's stored token unconditionally;
	// any previously issued token stops resolving.
	SetSessionToken(ctx context.Context, id int64, token string) error
	// GetBySessionToken resolves a bearer token by exact match. Fails with
	// domain.ErrNotFound when no user currently holds the token.
	GetBySessionToken(ctx context.Context, token string) (*domain.User, error)
}
