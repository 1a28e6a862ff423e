package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"itemshare/internal/domain"
	"itemshare/internal/repository"
)

const createItemsTable = `
CREATE TABLE IF NOT EXISTS items (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	owner_id INTEGER NOT NULL REFERENCES users(id),
	payload TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_items_owner ON items(owner_id);
`

type ItemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &ItemRepository{db: db}
}

func (r *ItemRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createItemsTable); err != nil {
		return fmt.Errorf("create items table: %w", err)
	}
	return nil
}

func (r *ItemRepository) Create(ctx context.Context, item *domain.Item) (int64, error) {
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO items (owner_id, payload, created_at, updated_at)
VALUES (?, ?, ?, ?)`,
		item.OwnerID,
		item.Payload,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("item last insert id: %w", err)
	}
	item.ID = id
	return id, nil
}

func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID int64, offset, limit int) ([]domain.Item, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, owner_id, payload, created_at, updated_at
FROM items
WHERE owner_id = ?
ORDER BY id ASC
LIMIT ? OFFSET ?`,
		ownerID,
		limit,
		offset,
	)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(
			&item.ID,
			&item.OwnerID,
			&item.Payload,
			&item.CreatedAt,
			&item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

func (r *ItemRepository) GetOwned(ctx context.Context, ownerID, id int64) (*domain.Item, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, owner_id, payload, created_at, updated_at
FROM items
WHERE owner_id = ? AND id = ?`,
		ownerID,
		id,
	)
	return scanItem(row)
}

func (r *ItemRepository) DeleteOwned(ctx context.Context, ownerID, id int64) error {
	res, err := r.db.ExecContext(ctx, `
DELETE FROM items
WHERE owner_id = ? AND id = ?`,
		ownerID,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete item rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *ItemRepository) Get(ctx context.Context, id int64) (*domain.Item, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, owner_id, payload, created_at, updated_at
FROM items
WHERE id = ?`,
		id,
	)
	return scanItem(row)
}

func (r *ItemRepository) ReassignOwner(ctx context.Context, id, newOwnerID int64) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE items
SET owner_id = ?, updated_at = ?
WHERE id = ?`,
		newOwnerID,
		time.Now().UTC(),
		id,
	)
	if err != nil {
		return fmt.Errorf("reassign item owner: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reassign item rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("item %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func scanItem(row interface {
	Scan(dest ...any) error
}) (*domain.Item, error) {
	var item domain.Item
	if err := row.Scan(
		&item.ID,
		&item.OwnerID,
		&item.Payload,
		&item.CreatedAt,
		&item.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("item: %w", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("scan item: %w", err)
	}
	return &item, nil
}
