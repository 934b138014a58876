// Package repomanager selects and owns the credential store backend:
// it opens the connection, prepares the schema and hands out the users
// repository.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gophfav/internal/server/config"
	"github.com/dmitrijs2005/gophfav/internal/server/repositories/users"
)

type RepositoryManager interface {
	// RunMigrations brings the store schema (tables, indexes) up to date.
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	Close(ctx context.Context) error
}

// New builds the manager for cfg.Storage.
func New(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.Storage {
	case config.StoragePostgres:
		return NewPostgresRepositoryManager(ctx, cfg.DatabaseDSN)
	case config.StorageMongo:
		return NewMongoRepositoryManager(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.StorageMemory:
		return NewMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}
