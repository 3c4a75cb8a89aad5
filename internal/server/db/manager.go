// Package db selects and wires a storage backend: the volatile in-memory
// reference store, or PostgreSQL when a DSN is configured. Swapping the
// backend does not change any service contract.
package db

import (
	"context"

	"github.com/avolkov/pdfchat/internal/server/repositories/files"
	"github.com/avolkov/pdfchat/internal/server/repositories/users"
)

// RepositoryManager hands out the repositories of one backend.
type RepositoryManager interface {
	Users() users.Repository
	Files() files.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}
