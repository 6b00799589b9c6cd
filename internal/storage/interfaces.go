package storage

import (
	"context"

	"github.com/vantageooh/traffic-engine/internal/models"
)

// AssetRepo defines operations for billboard asset storage.
type AssetRepo interface {
	ListAll(ctx context.Context) ([]*models.Asset, error)
	GetByID(ctx context.Context, id string) (*models.Asset, error)
	Upsert(ctx context.Context, a *models.Asset) error
	Delete(ctx context.Context, id string) error
	GetActive(ctx context.Context) ([]*models.Asset, error)
}

// ObservedStore defines operations for externally observed hourly traffic
// records, keyed by asset and calendar date.
type ObservedStore interface {
	// GetDay returns the observed records for one asset-day. A nil or
	// empty map means no data exists.
	GetDay(ctx context.Context, assetID, date string) (models.ObservedDay, error)
	// SaveRecords upserts observed records for one asset-day.
	SaveRecords(ctx context.Context, assetID, date string, records []models.ObservedRecord) error
}
