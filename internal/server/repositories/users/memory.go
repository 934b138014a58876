package users

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophfav/internal/common"
	"github.com/dmitrijs2005/gophfav/internal/server/models"
	"github.com/google/uuid"
)

// InMemoryRepository keeps users in process memory. One mutex serialises
// every operation, which gives the same atomicity the database backends get
// from single statements. Data is lost on restart.
type InMemoryRepository struct {
	mu     sync.Mutex
	byID   map[string]*models.User
	byName map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byID:   make(map[string]*models.User),
		byName: make(map[string]string),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byName[user.UserName]; ok {
		return nil, common.ErrDuplicateUser
	}

	stored := &models.User{
		ID:           uuid.NewString(),
		UserName:     user.UserName,
		PasswordHash: user.PasswordHash,
		Favourites:   []string{},
		CreatedAt:    time.Now().UTC(),
	}
	r.byID[stored.ID] = stored
	r.byName[stored.UserName] = stored.ID

	return clone(stored), nil
}

func (r *InMemoryRepository) GetUserByLogin(ctx context.Context, userName string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byName[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clone(r.byID[id]), nil
}

func (r *InMemoryRepository) GetFavourites(ctx context.Context, userID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return slices.Clone(u.Favourites), nil
}

func (r *InMemoryRepository) AddFavourite(ctx context.Context, userID, itemID string, limit int) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if !slices.Contains(u.Favourites, itemID) {
		if len(u.Favourites) >= limit {
			return nil, common.ErrFavouritesLimit
		}
		u.Favourites = append(u.Favourites, itemID)
	}
	return slices.Clone(u.Favourites), nil
}

func (r *InMemoryRepository) RemoveFavourite(ctx context.Context, userID, itemID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.byID[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.Favourites = slices.DeleteFunc(u.Favourites, func(s string) bool { return s == itemID })
	return slices.Clone(u.Favourites), nil
}

func clone(u *models.User) *models.User {
	c := *u
	c.Favourites = slices.Clone(u.Favourites)
	return &c
}
