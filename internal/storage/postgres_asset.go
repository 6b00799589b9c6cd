package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vantageooh/traffic-engine/internal/models"
)

// PostgresAssetRepo implements AssetRepo using PostgreSQL.
//
// Schema:
//
//	CREATE TABLE assets (
//	    id                TEXT PRIMARY KEY,
//	    name              TEXT NOT NULL,
//	    address           TEXT NOT NULL DEFAULT '',
//	    latitude          DOUBLE PRECISION NOT NULL DEFAULT 0,
//	    longitude         DOUBLE PRECISION NOT NULL DEFAULT 0,
//	    format            TEXT NOT NULL,
//	    profile           TEXT NOT NULL,
//	    daily_base_volume DOUBLE PRECISION NOT NULL,
//	    active            BOOLEAN NOT NULL DEFAULT TRUE,
//	    created_at        TIMESTAMPTZ NOT NULL,
//	    updated_at        TIMESTAMPTZ NOT NULL
//	);
type PostgresAssetRepo struct {
	pool *pgxpool.Pool
}

// NewPostgresAssetRepo creates a Postgres-backed asset repo.
func NewPostgresAssetRepo(pool *pgxpool.Pool) *PostgresAssetRepo {
	return &PostgresAssetRepo{pool: pool}
}

const assetColumns = `id, name, address, latitude, longitude, format, profile, daily_base_volume, active, created_at, updated_at`

func scanAsset(row pgx.Row) (*models.Asset, error) {
	var a models.Asset
	err := row.Scan(&a.ID, &a.Name, &a.Address, &a.Latitude, &a.Longitude,
		&a.Format, &a.Profile, &a.DailyBaseVolume, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PostgresAssetRepo) ListAll(ctx context.Context) ([]*models.Asset, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+assetColumns+` FROM assets ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}
	defer rows.Close()

	return collectAssets(rows)
}

func (r *PostgresAssetRepo) GetByID(ctx context.Context, id string) (*models.Asset, error) {
	a, err := scanAsset(r.pool.QueryRow(ctx, `SELECT `+assetColumns+` FROM assets WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get asset: %w", err)
	}
	return a, nil
}

func (r *PostgresAssetRepo) Upsert(ctx context.Context, a *models.Asset) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO assets (`+assetColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			address = EXCLUDED.address,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			format = EXCLUDED.format,
			profile = EXCLUDED.profile,
			daily_base_volume = EXCLUDED.daily_base_volume,
			active = EXCLUDED.active,
			updated_at = EXCLUDED.updated_at
	`, a.ID, a.Name, a.Address, a.Latitude, a.Longitude,
		a.Format, a.Profile, a.DailyBaseVolume, a.Active, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert asset: %w", err)
	}
	return nil
}

func (r *PostgresAssetRepo) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM assets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}

func (r *PostgresAssetRepo) GetActive(ctx context.Context) ([]*models.Asset, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+assetColumns+` FROM assets WHERE active ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active assets: %w", err)
	}
	defer rows.Close()

	return collectAssets(rows)
}

func collectAssets(rows pgx.Rows) ([]*models.Asset, error) {
	var assets []*models.Asset
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, a)
	}
	return assets, rows.Err()
}
