package sqlite

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itemshare/internal/domain"
)

func TestItemRepositoryOwnershipPredicate(t *testing.T) {
	r := openTestRepos(t)
	ctx := context.Background()

	alice := r.addUser(t, "alice")
	bob := r.addUser(t, "bob")
	item := r.addItem(t, alice.ID, "hello")

	got, err := r.items.GetOwned(ctx, alice.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Payload)

	// an item owned by someone else reads the same as a missing one
	_, err = r.items.GetOwned(ctx, bob.ID, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.items.GetOwned(ctx, alice.ID, item.ID+100)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemRepositoryListByOwnerPagination(t *testing.T) {
	r := openTestRepos(t)
	ctx := context.Background()

	alice := r.addUser(t, "alice")
	bob := r.addUser(t, "bob")

	for i := 0; i < 15; i++ {
		r.addItem(t, alice.ID, fmt.Sprintf("payload-%02d", i))
	}
	r.addItem(t, bob.ID, "bobs")

	page, err := r.items.ListByOwner(ctx, alice.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, page, 10)
	// deterministic order: id ascending
	for i := 1; i < len(page); i++ {
		assert.Greater(t, page[i].ID, page[i-1].ID)
	}
	assert.Equal(t, "payload-00", page[0].Payload)

	// restartable: same call, same result
	again, err := r.items.ListByOwner(ctx, alice.ID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, page, again)

	rest, err := r.items.ListByOwner(ctx, alice.ID, 10, 10)
	require.NoError(t, err)
	require.Len(t, rest, 5)
	assert.Equal(t, "payload-10", rest[0].Payload)

	for _, it := range append(page, rest...) {
		assert.Equal(t, alice.ID, it.OwnerID)
	}
}

func TestItemRepositoryDeleteOwned(t *testing.T) {
	r := openTestRepos(t)
	ctx := context.Background()

	alice := r.addUser(t, "alice")
	bob := r.addUser(t, "bob")
	item := r.addItem(t, alice.ID, "hello")

	// non-owner delete fails and leaves the item intact
	err := r.items.DeleteOwned(ctx, bob.ID, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = r.items.GetOwned(ctx, alice.ID, item.ID)
	require.NoError(t, err)

	require.NoError(t, r.items.DeleteOwned(ctx, alice.ID, item.ID))

	_, err = r.items.GetOwned(ctx, alice.ID, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestItemRepositoryReassignOwner(t *testing.T) {
	r := openTestRepos(t)
	ctx := context.Background()

	alice := r.addUser(t, "alice")
	bob := r.addUser(t, "bob")
	item := r.addItem(t, alice.ID, "hello")

	require.NoError(t, r.items.ReassignOwner(ctx, item.ID, bob.ID))

	got, err := r.items.GetOwned(ctx, bob.ID, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello", got.Payload)

	_, err = r.items.GetOwned(ctx, alice.ID, item.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = r.items.ReassignOwner(ctx, item.ID+100, bob.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
