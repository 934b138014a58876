package users

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/gophfav/internal/common"
	"github.com/dmitrijs2005/gophfav/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemory_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	u, err := repo.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, []string{}, u.Favourites)
	assert.False(t, u.CreatedAt.IsZero())

	got, err := repo.GetUserByLogin(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u, got)

	_, err = repo.GetUserByLogin(ctx, "bob")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestInMemory_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	_, err := repo.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, &models.User{UserName: "alice", PasswordHash: "other"})
	assert.ErrorIs(t, err, common.ErrDuplicateUser)

	// names are case-sensitive
	_, err = repo.Create(ctx, &models.User{UserName: "Alice", PasswordHash: "h"})
	assert.NoError(t, err)
}

func TestInMemory_ConcurrentCreateSameName(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	const n = 20
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = repo.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h"})
		}()
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		assert.ErrorIs(t, err, common.ErrDuplicateUser)
	}
	assert.Equal(t, 1, ok)
}

func TestInMemory_Favourites(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	u, err := repo.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	favs, err := repo.AddFavourite(ctx, u.ID, "a1", 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, favs)

	favs, err = repo.AddFavourite(ctx, u.ID, "a1", 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, favs)

	favs, err = repo.AddFavourite(ctx, u.ID, "b2", 50)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "b2"}, favs)

	favs, err = repo.RemoveFavourite(ctx, u.ID, "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"b2"}, favs)

	favs, err = repo.RemoveFavourite(ctx, u.ID, "zz")
	require.NoError(t, err)
	assert.Equal(t, []string{"b2"}, favs)

	favs, err = repo.GetFavourites(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"b2"}, favs)
}

func TestInMemory_FavouritesReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	u, err := repo.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	favs, err := repo.AddFavourite(ctx, u.ID, "a1", 50)
	require.NoError(t, err)
	favs[0] = "mutated"

	got, err := repo.GetFavourites(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, got)
}

func TestInMemory_FavouritesLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	u, err := repo.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	_, err = repo.AddFavourite(ctx, u.ID, "a", 2)
	require.NoError(t, err)
	_, err = repo.AddFavourite(ctx, u.ID, "b", 2)
	require.NoError(t, err)

	_, err = repo.AddFavourite(ctx, u.ID, "c", 2)
	assert.ErrorIs(t, err, common.ErrFavouritesLimit)

	favs, err := repo.AddFavourite(ctx, u.ID, "a", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, favs)
}

func TestInMemory_UnknownUser(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	_, err := repo.GetFavourites(ctx, "nope")
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = repo.AddFavourite(ctx, "nope", "a", 50)
	assert.ErrorIs(t, err, common.ErrorNotFound)
	_, err = repo.RemoveFavourite(ctx, "nope", "a")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestInMemory_ConcurrentAddsKeepEveryItem(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()
	u, err := repo.Create(ctx, &models.User{UserName: "alice", PasswordHash: "h"})
	require.NoError(t, err)

	const n = 40
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AddFavourite(ctx, u.ID, fmt.Sprintf("item-%d", i), 50)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	favs, err := repo.GetFavourites(ctx, u.ID)
	require.NoError(t, err)
	assert.Len(t, favs, n)
	for i := range n {
		assert.Contains(t, favs, fmt.Sprintf("item-%d", i))
	}
}
