package users

import (
	"context"
	"sync"

	"github.com/avolkov/pdfchat/internal/common"
	"github.com/avolkov/pdfchat/internal/server/models"
)

// InMemoryRepository is the reference identity store: volatile, process
// local, guarded by a single RWMutex so the check-then-insert sequence
// in Create is atomic with respect to lookups and other creates.
type InMemoryRepository struct {
	mu         sync.RWMutex
	byUsername map[string]*models.User
	byEmail    map[string]*models.User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byUsername: make(map[string]*models.User),
		byEmail:    make(map[string]*models.User),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Username before email: a record colliding on both reports the
	// username conflict.
	if _, ok := r.byUsername[user.Username]; ok {
		return nil, common.ErrDuplicateUsername
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrDuplicateEmail
	}

	stored := *user
	r.byUsername[stored.Username] = &stored
	r.byEmail[stored.Email] = &stored

	return copyUser(&stored), nil
}

func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byUsername[username]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return copyUser(user), nil
}

func (r *InMemoryRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return copyUser(user), nil
}

// SetActive flips the active flag, the only supported lifecycle
// transition after creation.
func (r *InMemoryRepository) SetActive(ctx context.Context, username string, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byUsername[username]
	if !ok {
		return common.ErrorNotFound
	}
	user.Active = active
	return nil
}

// copyUser returns a private copy so callers cannot mutate stored state.
func copyUser(u *models.User) *models.User {
	c := *u
	return &c
}
