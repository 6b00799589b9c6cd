package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vantageooh/traffic-engine/internal/models"
	"go.uber.org/zap"
)

// RedisReportCache caches single-day traffic reports in Redis. A report
// is a deterministic function of its inputs, so a cached copy stays valid
// until new observed data lands for that asset-day; ingest invalidates by
// asset and date. Cache failures are logged and treated as misses.
type RedisReportCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisReportCache creates a Redis-backed report cache.
func NewRedisReportCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisReportCache {
	return &RedisReportCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetDaily returns the cached report for a key, if present.
func (c *RedisReportCache) GetDaily(ctx context.Context, key string) (*models.TrafficReport, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("report cache get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	var report models.TrafficReport
	if err := json.Unmarshal(data, &report); err != nil {
		c.logger.Warn("report cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &report, true
}

// SetDaily stores a report under a key with the configured TTL.
func (c *RedisReportCache) SetDaily(ctx context.Context, key string, report *models.TrafficReport) {
	data, err := json.Marshal(report)
	if err != nil {
		c.logger.Warn("report cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("report cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateDay drops every cached report for an asset-day. Called after
// observed-data ingest so the next request reconciles fresh records.
func (c *RedisReportCache) InvalidateDay(ctx context.Context, assetID, date string) {
	pattern := "report:" + assetID + ":" + date + ":*"

	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn("report cache scan failed", zap.String("pattern", pattern), zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("report cache invalidation failed", zap.String("pattern", pattern), zap.Error(err))
	}
}
