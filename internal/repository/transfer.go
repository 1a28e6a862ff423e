package repository

import (
	"context"
	"time"

	"itemshare/internal/domain"
)

// TransferRepository persists the ownership handoff state machine.
type TransferRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, transfer *domain.Transfer) (int64, error)
	GetByTransferID(ctx context.Context, transferID string) (*domain.Transfer, error)
	// Consume marks an offered transfer completed. Fails with
	// domain.ErrNotFound if the transfer is unknown or already completed, so
	// a link cannot be redeemed twice.
	Consume(ctx context.Context, transferID string, completedAt time.Time) error
}
