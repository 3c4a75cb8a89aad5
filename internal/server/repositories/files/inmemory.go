package files

import (
	"context"
	"sort"
	"sync"

	"github.com/avolkov/pdfchat/internal/common"
	"github.com/avolkov/pdfchat/internal/server/models"
)

// InMemoryRepository is the reference metadata store, guarded by a single
// RWMutex like the identity store.
type InMemoryRepository struct {
	mu   sync.RWMutex
	byID map[string]*models.FileMeta
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{byID: make(map[string]*models.FileMeta)}
}

func (r *InMemoryRepository) Create(ctx context.Context, meta *models.FileMeta) (*models.FileMeta, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *meta
	r.byID[stored.ID] = &stored

	c := stored
	return &c, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*models.FileMeta, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}

	c := *meta
	return &c, nil
}

func (r *InMemoryRepository) ListByUser(ctx context.Context, userID string) ([]*models.FileMeta, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.FileMeta
	for _, meta := range r.byID {
		if meta.UserID == userID {
			c := *meta
			result = append(result, &c)
		}
	}

	// Newest first.
	sort.Slice(result, func(i, j int) bool {
		return result[i].UploadedAt.After(result[j].UploadedAt)
	})

	return result, nil
}

func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.byID, id)
	return nil
}
