// Package files stores metadata for uploaded documents. The binary
// content itself lives in blob storage; records here are keyed by the
// public file id and carry the owner identity key.
package files

import (
	"context"

	"github.com/avolkov/pdfchat/internal/server/models"
)

// Repository is the storage contract for upload metadata. GetByID returns
// common.ErrorNotFound when no record matches.
type Repository interface {
	Create(ctx context.Context, meta *models.FileMeta) (*models.FileMeta, error)
	GetByID(ctx context.Context, id string) (*models.FileMeta, error)
	ListByUser(ctx context.Context, userID string) ([]*models.FileMeta, error)
	Delete(ctx context.Context, id string) error
}
