// Package users holds the credential store: user records keyed by a unique
// user name, with favourites that are mutated atomically by the store itself.
package users

import (
	"context"

	"github.com/dmitrijs2005/gophfav/internal/server/models"
)

// Repository is the credential store contract.
//
// Create fails with common.ErrDuplicateUser when the name is taken; the
// store's uniqueness guarantee is the authority, not a prior lookup.
// Lookups fail with common.ErrorNotFound.
//
// AddFavourite and RemoveFavourite must be single atomic operations at the
// store (add-to-set / pull), never a read followed by a write-back, and
// return the resulting sequence. AddFavourite fails with
// common.ErrFavouritesLimit when itemID is new and the set already holds
// limit items.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, userName string) (*models.User, error)
	GetFavourites(ctx context.Context, userID string) ([]string, error)
	AddFavourite(ctx context.Context, userID, itemID string, limit int) ([]string, error)
	RemoveFavourite(ctx context.Context, userID, itemID string) ([]string, error)
}
