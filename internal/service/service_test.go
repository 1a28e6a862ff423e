package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"itemshare/internal/domain"
	"itemshare/internal/repository"
	"itemshare/internal/repository/sqlite"
)

const testSigningSecret = "test-signing-secret"

type testEnv struct {
	users     UserService
	items     ItemService
	transfers TransferService

	userRepo     repository.UserRepository
	itemRepo     repository.ItemRepository
	transferRepo repository.TransferRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	env := &testEnv{
		userRepo:     sqlite.NewUserRepository(db),
		itemRepo:     sqlite.NewItemRepository(db),
		transferRepo: sqlite.NewTransferRepository(db),
	}

	ctx := context.Background()
	require.NoError(t, env.userRepo.Init(ctx))
	require.NoError(t, env.itemRepo.Init(ctx))
	require.NoError(t, env.transferRepo.Init(ctx))

	env.users = NewUserService(env.userRepo)
	env.items = NewItemService(env.itemRepo)
	env.transfers = NewTransferService(
		env.itemRepo,
		env.userRepo,
		env.transferRepo,
		testSigningSecret,
		"http://localhost:8080/transfers",
	)

	return env
}

func (e *testEnv) registerAndLogin(t *testing.T, username, password string) (*domain.User, string) {
	t.Helper()
	ctx := context.Background()

	user, err := e.users.Register(ctx, username, password)
	require.NoError(t, err)

	token, err := e.users.Login(ctx, username, password)
	require.NoError(t, err)

	return user, token
}
