package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"itemshare/internal/domain"
	"itemshare/internal/repository"
)

const createTransfersTable = `
CREATE TABLE IF NOT EXISTS transfers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	transfer_id TEXT NOT NULL UNIQUE,
	item_id INTEGER NOT NULL,
	sender_id INTEGER NOT NULL,
	recipient_id INTEGER NOT NULL,
	status TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	completed_at DATETIME NULL
);
`

type TransferRepository struct {
	db *sql.DB
}

func NewTransferRepository(db *sql.DB) repository.TransferRepository {
	return &TransferRepository{db: db}
}

func (r *TransferRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTransfersTable); err != nil {
		return fmt.Errorf("create transfers table: %w", err)
	}
	return nil
}

func (r *TransferRepository) Create(ctx context.Context, transfer *domain.Transfer) (int64, error) {
	transfer.CreatedAt = time.Now().UTC()

	res, err := r.db.ExecContext(ctx, `
INSERT INTO transfers (transfer_id, item_id, sender_id, recipient_id, status, created_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		transfer.TransferID,
		transfer.ItemID,
		transfer.SenderID,
		transfer.RecipientID,
		transfer.Status,
		transfer.CreatedAt,
	)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return 0, fmt.Errorf("transfer %q: %w", transfer.TransferID, domain.ErrAlreadyExists)
		}
		return 0, fmt.Errorf("insert transfer: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transfer last insert id: %w", err)
	}
	transfer.ID = id
	return id, nil
}

func (r *TransferRepository) GetByTransferID(ctx context.Context, transferID string) (*domain.Transfer, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, transfer_id, item_id, sender_id, recipient_id, status, created_at, completed_at
FROM transfers
WHERE transfer_id = ?`,
		transferID,
	)

	var (
		transfer    domain.Transfer
		completedAt sql.NullTime
	)
	if err := row.Scan(
		&transfer.ID,
		&transfer.TransferID,
		&transfer.ItemID,
		&transfer.SenderID,
		&transfer.RecipientID,
		&transfer.Status,
		&transfer.CreatedAt,
		&completedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("transfer: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scan transfer: %w", err)
	}
	if completedAt.Valid {
		t := completedAt.Time
		transfer.CompletedAt = &t
	}
	return &transfer, nil
}

// Consume flips an offered transfer to completed. The status guard in the
// WHERE clause makes redemption single-use even under concurrent calls.
func (r *TransferRepository) Consume(ctx context.Context, transferID string, completedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE transfers
SET status = ?, completed_at = ?
WHERE transfer_id = ? AND status = ?`,
		domain.TransferStatusCompleted,
		completedAt.UTC(),
		transferID,
		domain.TransferStatusOffered,
	)
	if err != nil {
		return fmt.Errorf("consume transfer: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("consume transfer rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("transfer %q: %w", transferID, domain.ErrNotFound)
	}
	return nil
}
