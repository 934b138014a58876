package repomanager

import (
	"context"

	"github.com/dmitrijs2005/gophfav/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory. Useful for
// local runs and tests.
type MemoryRepositoryManager struct {
	users *users.InMemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{users: users.NewInMemoryRepository()}
}

func (m *MemoryRepositoryManager) Users() users.Repository { return m.users }

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close(ctx context.Context) error { return nil }
