package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gophfav/internal/common"
	"github.com/dmitrijs2005/gophfav/internal/logging"
	"github.com/dmitrijs2005/gophfav/internal/server/auth"
	"github.com/dmitrijs2005/gophfav/internal/server/repositories/users"
)

// FavouritesService manages the caller's own favourites. Every mutation is a
// single store operation; the service never reads, edits and writes back.
type FavouritesService struct {
	users users.Repository
	limit int
	log   logging.Logger
}

func NewFavouritesService(repo users.Repository, limit int, log logging.Logger) *FavouritesService {
	return &FavouritesService{users: repo, limit: limit, log: log}
}

func (s *FavouritesService) List(ctx context.Context, id auth.Identity) ([]string, error) {
	favs, err := s.users.GetFavourites(ctx, id.UserID)
	return favs, s.mapErr(ctx, "list", id, err)
}

// Add puts itemID into the set. Adding a present item changes nothing.
func (s *FavouritesService) Add(ctx context.Context, id auth.Identity, itemID string) ([]string, error) {
	if itemID == "" {
		return nil, fmt.Errorf("%w: item id is required", common.ErrValidation)
	}
	favs, err := s.users.AddFavourite(ctx, id.UserID, itemID, s.limit)
	if errors.Is(err, common.ErrFavouritesLimit) {
		return nil, fmt.Errorf("%w: at most %d items", common.ErrFavouritesLimit, s.limit)
	}
	return favs, s.mapErr(ctx, "add", id, err)
}

// Remove drops itemID from the set. Removing an absent item changes nothing.
func (s *FavouritesService) Remove(ctx context.Context, id auth.Identity, itemID string) ([]string, error) {
	if itemID == "" {
		return nil, fmt.Errorf("%w: item id is required", common.ErrValidation)
	}
	favs, err := s.users.RemoveFavourite(ctx, id.UserID, itemID)
	return favs, s.mapErr(ctx, "remove", id, err)
}

func (s *FavouritesService) mapErr(ctx context.Context, op string, id auth.Identity, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrorNotFound):
		return common.ErrorNotFound
	default:
		s.log.Error(ctx, "favourites: store failure", "op", op, "user_id", id.UserID, "error", err)
		return common.ErrorInternal
	}
}
