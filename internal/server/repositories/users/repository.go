// Package users implements the identity store: user records with unique
// usernames and emails, plus lookups by either key.
package users

import (
	"context"

	"github.com/avolkov/pdfchat/internal/server/models"
)

// Repository is the storage contract for user records. Lookups return
// common.ErrorNotFound when no record matches; Create returns
// common.ErrDuplicateUsername or common.ErrDuplicateEmail on conflict,
// with the username check taking precedence.
//
// Implementations must make the uniqueness check atomic with insertion:
// two concurrent Create calls for the same username must not both succeed.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}
