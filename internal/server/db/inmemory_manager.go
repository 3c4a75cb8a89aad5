package db

import (
	"context"

	"github.com/avolkov/pdfchat/internal/server/repositories/files"
	"github.com/avolkov/pdfchat/internal/server/repositories/users"
)

// InMemoryRepositoryManager is the reference backend: state lives in
// process memory and is lost on restart.
type InMemoryRepositoryManager struct {
	users *users.InMemoryRepository
	files *files.InMemoryRepository
}

func NewInMemoryRepositoryManager() *InMemoryRepositoryManager {
	return &InMemoryRepositoryManager{
		users: users.NewInMemoryRepository(),
		files: files.NewInMemoryRepository(),
	}
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Files() files.Repository {
	return m.files
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}
