package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vantageooh/traffic-engine/internal/models"
)

// PostgresObservedStore implements ObservedStore using PostgreSQL.
//
// Schema:
//
//	CREATE TABLE observed_hourly (
//	    asset_id         TEXT NOT NULL,
//	    date             DATE NOT NULL,
//	    hour             SMALLINT NOT NULL,
//	    traffic_volume   INTEGER NOT NULL,
//	    congestion_level TEXT NOT NULL,
//	    average_speed    DOUBLE PRECISION NOT NULL,
//	    PRIMARY KEY (asset_id, date, hour)
//	);
type PostgresObservedStore struct {
	pool *pgxpool.Pool
}

// NewPostgresObservedStore creates a Postgres-backed observed store.
func NewPostgresObservedStore(pool *pgxpool.Pool) *PostgresObservedStore {
	return &PostgresObservedStore{pool: pool}
}

func (s *PostgresObservedStore) GetDay(ctx context.Context, assetID, date string) (models.ObservedDay, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT hour, traffic_volume, congestion_level, average_speed
		FROM observed_hourly
		WHERE asset_id = $1 AND date = $2
	`, assetID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query observed records: %w", err)
	}
	defer rows.Close()

	day := make(models.ObservedDay)
	for rows.Next() {
		var rec models.ObservedRecord
		if err := rows.Scan(&rec.Hour, &rec.TrafficVolume, &rec.CongestionLevel, &rec.AverageSpeed); err != nil {
			return nil, err
		}
		day[rec.Hour] = rec
	}
	return day, rows.Err()
}

func (s *PostgresObservedStore) SaveRecords(ctx context.Context, assetID, date string, records []models.ObservedRecord) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, rec := range records {
		_, err := tx.Exec(ctx, `
			INSERT INTO observed_hourly (asset_id, date, hour, traffic_volume, congestion_level, average_speed)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (asset_id, date, hour) DO UPDATE SET
				traffic_volume = EXCLUDED.traffic_volume,
				congestion_level = EXCLUDED.congestion_level,
				average_speed = EXCLUDED.average_speed
		`, assetID, date, rec.Hour, rec.TrafficVolume, rec.CongestionLevel, rec.AverageSpeed)
		if err != nil {
			return fmt.Errorf("failed to upsert observed record: %w", err)
		}
	}

	return tx.Commit(ctx)
}
