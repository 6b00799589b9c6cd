package storage

import (
	"context"
	"sync"

	"github.com/vantageooh/traffic-engine/internal/models"
)

// InMemoryAssetRepo provides in-memory asset storage for development and
// tests.
type InMemoryAssetRepo struct {
	mu     sync.RWMutex
	assets map[string]*models.Asset
}

// NewInMemoryAssetRepo creates a new in-memory asset repo.
func NewInMemoryAssetRepo() *InMemoryAssetRepo {
	return &InMemoryAssetRepo{
		assets: make(map[string]*models.Asset),
	}
}

func (r *InMemoryAssetRepo) ListAll(ctx context.Context) ([]*models.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Asset, 0, len(r.assets))
	for _, a := range r.assets {
		copied := *a
		result = append(result, &copied)
	}
	return result, nil
}

func (r *InMemoryAssetRepo) GetByID(ctx context.Context, id string) (*models.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.assets[id]
	if !ok {
		return nil, nil
	}
	copied := *a
	return &copied, nil
}

func (r *InMemoryAssetRepo) Upsert(ctx context.Context, a *models.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *a
	r.assets[a.ID] = &copied
	return nil
}

func (r *InMemoryAssetRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.assets, id)
	return nil
}

func (r *InMemoryAssetRepo) GetActive(ctx context.Context) ([]*models.Asset, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Asset
	for _, a := range r.assets {
		if a.Active {
			copied := *a
			result = append(result, &copied)
		}
	}
	return result, nil
}
