package assets

import (
	"context"
	"time"

	"github.com/vantageooh/traffic-engine/internal/metrics"
	"github.com/vantageooh/traffic-engine/internal/models"
	"github.com/vantageooh/traffic-engine/internal/storage"
)

// Service provides CRUD operations over billboard assets.
type Service struct {
	repo    storage.AssetRepo
	metrics *metrics.Metrics
}

// NewService constructs a Service backed by the given repo.
func NewService(repo storage.AssetRepo, m *metrics.Metrics) *Service {
	return &Service{repo: repo, metrics: m}
}

// ListAssets returns all registered assets.
func (s *Service) ListAssets(ctx context.Context) ([]*models.Asset, error) {
	return s.repo.ListAll(ctx)
}

// GetAsset returns an asset by ID, or nil if it does not exist.
func (s *Service) GetAsset(ctx context.Context, id string) (*models.Asset, error) {
	return s.repo.GetByID(ctx, id)
}

// UpsertAsset validates the asset, populates timestamps and saves it.
func (s *Service) UpsertAsset(ctx context.Context, a *models.Asset) error {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	a.UpdatedAt = now
	if err := a.Validate(); err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, a); err != nil {
		return err
	}
	s.refreshActiveGauge(ctx)
	return nil
}

// DeleteAsset removes an asset by ID.
func (s *Service) DeleteAsset(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.refreshActiveGauge(ctx)
	return nil
}

func (s *Service) refreshActiveGauge(ctx context.Context) {
	active, err := s.repo.GetActive(ctx)
	if err != nil {
		return
	}
	s.metrics.UpdateActiveAssets(len(active))
}
