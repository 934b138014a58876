package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/gophfav/internal/server/config"
	"github.com/dmitrijs2005/gophfav/internal/server/models"
	"github.com/dmitrijs2005/gophfav/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock
}

func TestNew_Memory(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageMemory}

	m, err := New(context.Background(), cfg)
	require.NoError(t, err)
	require.NoError(t, m.RunMigrations(context.Background()))

	u, err := m.Users().Create(context.Background(), &models.User{UserName: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NoError(t, m.Close(context.Background()))
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(context.Background(), &config.Config{Storage: "cassandra"})
	assert.ErrorContains(t, err, `unknown storage backend "cassandra"`)
}

func TestPostgresManager_Users(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	m := newPostgresManager(db)
	var _ RepositoryManager = m
	assert.IsType(t, &users.PostgresRepository{}, m.Users())
}

func TestPostgresManager_RunMigrations(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	defer func() { gooseUpContext = orig }()

	var gotDir string
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	}
	require.NoError(t, newPostgresManager(db).RunMigrations(context.Background()))
	assert.Equal(t, ".", gotDir)

	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	assert.EqualError(t, newPostgresManager(db).RunMigrations(context.Background()), "boom")
}

func TestPostgresManager_Close(t *testing.T) {
	db, mock := newDB(t)
	mock.ExpectClose()

	require.NoError(t, newPostgresManager(db).Close(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMongoManager(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("migrations create index", func(mt *mtest.T) {
		m := newMongoManager(mt.Client, mt.Coll)
		var _ RepositoryManager = m
		assert.IsType(mt, &users.MongoRepository{}, m.Users())

		mt.AddMockResponses(mtest.CreateSuccessResponse())
		assert.NoError(mt, m.RunMigrations(context.Background()))
	})
}
