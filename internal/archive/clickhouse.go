package archive

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/vantageooh/traffic-engine/internal/models"
	"go.uber.org/zap"
)

// ClickHouseArchiver writes generated report rows into the analytics
// warehouse so BI tooling can query traffic history without hitting the
// engine.
//
// Schema:
//
//	CREATE TABLE traffic_hourly (
//	    asset_id         String,
//	    date             Date,
//	    hour             UInt8,
//	    profile          String,
//	    traffic_volume   UInt32,
//	    congestion_level String,
//	    average_speed    Float64,
//	    impression_score UInt32,
//	    observed_hours   UInt8
//	) ENGINE = ReplacingMergeTree
//	ORDER BY (asset_id, date, hour);
type ClickHouseArchiver struct {
	conn   driver.Conn
	logger *zap.Logger
}

// NewClickHouseArchiver creates a ClickHouse-backed report archiver.
func NewClickHouseArchiver(conn driver.Conn, logger *zap.Logger) *ClickHouseArchiver {
	return &ClickHouseArchiver{
		conn:   conn,
		logger: logger,
	}
}

// ArchiveReport inserts one day's 24 hourly rows as a single batch.
func (a *ClickHouseArchiver) ArchiveReport(ctx context.Context, report *models.TrafficReport) error {
	batch, err := a.conn.PrepareBatch(ctx, `
		INSERT INTO traffic_hourly
			(asset_id, date, hour, profile, traffic_volume, congestion_level, average_speed, impression_score, observed_hours)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare archive batch: %w", err)
	}

	for _, h := range report.HourlyBreakdown {
		err := batch.Append(
			report.AssetID,
			report.Date,
			uint8(h.Hour),
			string(report.Profile),
			uint32(h.TrafficVolume),
			string(h.CongestionLevel),
			h.AverageSpeed,
			uint32(h.ImpressionScore),
			uint8(report.ObservedHours),
		)
		if err != nil {
			return fmt.Errorf("failed to append archive row: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("failed to send archive batch: %w", err)
	}

	a.logger.Debug("report archived",
		zap.String("asset_id", report.AssetID),
		zap.String("date", report.Date),
	)
	return nil
}
