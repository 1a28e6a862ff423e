package sqlite

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"itemshare/internal/domain"
	"itemshare/internal/repository"
)

type testRepos struct {
	db        *sql.DB
	users     repository.UserRepository
	items     repository.ItemRepository
	transfers repository.TransferRepository
}

func openTestRepos(t *testing.T) *testRepos {
	t.Helper()

	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	r := &testRepos{
		db:        db,
		users:     NewUserRepository(db),
		items:     NewItemRepository(db),
		transfers: NewTransferRepository(db),
	}

	ctx := context.Background()
	require.NoError(t, r.users.Init(ctx))
	require.NoError(t, r.items.Init(ctx))
	require.NoError(t, r.transfers.Init(ctx))

	return r
}

func (r *testRepos) addUser(t *testing.T, username string) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, PasswordHash: "x"}
	_, err := r.users.Create(context.Background(), user)
	require.NoError(t, err)
	return user
}

func (r *testRepos) addItem(t *testing.T, ownerID int64, payload string) *domain.Item {
	t.Helper()
	item := &domain.Item{OwnerID: ownerID, Payload: payload}
	_, err := r.items.Create(context.Background(), item)
	require.NoError(t, err)
	return item
}
