package services

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophfav/internal/cryptox"
	"github.com/dmitrijs2005/gophfav/internal/logging"
	"github.com/dmitrijs2005/gophfav/internal/server/config"
	"github.com/dmitrijs2005/gophfav/internal/server/models"
	"github.com/dmitrijs2005/gophfav/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

var cheapHasher = cryptox.NewHasher(cryptox.Argon2Params{
	Memory:  1024,
	Time:    1,
	Threads: 1,
	SaltLen: 16,
	KeyLen:  32,
})

func testConfig() *config.Config {
	return &config.Config{
		SecretKey:                   testSecret,
		AccessTokenValidityDuration: time.Hour,
		FavouritesLimit:             50,
	}
}

func newUserService(t *testing.T, repo users.Repository) *UserService {
	t.Helper()
	s, err := NewUserService(repo, cheapHasher, testConfig(), logging.Nop{})
	require.NoError(t, err)
	return s
}

// fakeUsersRepo returns canned results; unset funcs fail the test.
type fakeUsersRepo struct {
	t *testing.T

	create  func(*models.User) (*models.User, error)
	byLogin func(string) (*models.User, error)
	getFavs func(string) ([]string, error)
	addFav  func(userID, itemID string, limit int) ([]string, error)
	rmFav   func(userID, itemID string) ([]string, error)
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	require.NotNil(f.t, f.create, "unexpected Create")
	return f.create(u)
}

func (f *fakeUsersRepo) GetUserByLogin(_ context.Context, name string) (*models.User, error) {
	require.NotNil(f.t, f.byLogin, "unexpected GetUserByLogin")
	return f.byLogin(name)
}

func (f *fakeUsersRepo) GetFavourites(_ context.Context, userID string) ([]string, error) {
	require.NotNil(f.t, f.getFavs, "unexpected GetFavourites")
	return f.getFavs(userID)
}

func (f *fakeUsersRepo) AddFavourite(_ context.Context, userID, itemID string, limit int) ([]string, error) {
	require.NotNil(f.t, f.addFav, "unexpected AddFavourite")
	return f.addFav(userID, itemID, limit)
}

func (f *fakeUsersRepo) RemoveFavourite(_ context.Context, userID, itemID string) ([]string, error) {
	require.NotNil(f.t, f.rmFav, "unexpected RemoveFavourite")
	return f.rmFav(userID, itemID)
}
