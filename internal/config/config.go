package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the traffic engine.
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	ClickHouse ClickHouseConfig
	Auth       AuthConfig
	RateLimit  RateLimitConfig
	Log        LogConfig
	Metrics    MetricsConfig
	Cache      CacheConfig
	Simulation SimulationConfig
}

type ServerConfig struct {
	Addr            string
	Env             string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
	MinConns int
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ClickHouseConfig configures the optional report archive warehouse.
type ClickHouseConfig struct {
	Enabled  bool
	Addr     string
	Database string
	User     string
	Password string
}

type AuthConfig struct {
	Enabled   bool
	APIKey    string
	SkipPaths []string
}

type RateLimitConfig struct {
	Enabled     bool
	ReportRPS   float64
	ReportBurst int
	MgmtRPS     float64
	MgmtBurst   int
}

type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// CacheConfig configures the Redis report cache.
type CacheConfig struct {
	Enabled bool
	TTL     time.Duration
}

// SimulationConfig tunes the report pipeline.
type SimulationConfig struct {
	// FetchConcurrency bounds parallel observed-data lookups per campaign.
	FetchConcurrency int
	// FetchTimeout caps each observed-data lookup before falling back to
	// pure simulation.
	FetchTimeout time.Duration
	// MaxCampaignDays rejects campaign ranges longer than this.
	MaxCampaignDays int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Addr:            getEnv("BILLBOARD_HTTP_ADDR", ":8080"),
			Env:             getEnv("BILLBOARD_ENV", "development"),
			ShutdownTimeout: getDurationEnv("BILLBOARD_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("BILLBOARD_DB_HOST", "localhost"),
			Port:     getIntEnv("BILLBOARD_DB_PORT", 5432),
			User:     getEnv("BILLBOARD_DB_USER", "billboard"),
			Password: getEnv("BILLBOARD_DB_PASSWORD", "billboard_secret"),
			DBName:   getEnv("BILLBOARD_DB_NAME", "billboard"),
			SSLMode:  getEnv("BILLBOARD_DB_SSLMODE", "disable"),
			MaxConns: getIntEnv("BILLBOARD_DB_MAX_CONNS", 25),
			MinConns: getIntEnv("BILLBOARD_DB_MIN_CONNS", 5),
		},
		Redis: RedisConfig{
			Addr:     getEnv("BILLBOARD_REDIS_ADDR", "localhost:6379"),
			Password: getEnv("BILLBOARD_REDIS_PASSWORD", ""),
			DB:       getIntEnv("BILLBOARD_REDIS_DB", 0),
		},
		ClickHouse: ClickHouseConfig{
			Enabled:  getBoolEnv("BILLBOARD_CLICKHOUSE_ENABLED", false),
			Addr:     getEnv("BILLBOARD_CLICKHOUSE_ADDR", "localhost:9000"),
			Database: getEnv("BILLBOARD_CLICKHOUSE_DB", "billboard"),
			User:     getEnv("BILLBOARD_CLICKHOUSE_USER", "default"),
			Password: getEnv("BILLBOARD_CLICKHOUSE_PASSWORD", ""),
		},
		Auth: AuthConfig{
			Enabled:   getBoolEnv("BILLBOARD_AUTH_ENABLED", false),
			APIKey:    getEnv("BILLBOARD_API_KEY", ""),
			SkipPaths: getSliceEnv("BILLBOARD_AUTH_SKIP_PATHS", []string{"/health", "/metrics"}),
		},
		RateLimit: RateLimitConfig{
			Enabled:     getBoolEnv("BILLBOARD_RATE_LIMIT_ENABLED", true),
			ReportRPS:   getFloatEnv("BILLBOARD_RATE_LIMIT_REPORT_RPS", 100),
			ReportBurst: getIntEnv("BILLBOARD_RATE_LIMIT_REPORT_BURST", 20),
			MgmtRPS:     getFloatEnv("BILLBOARD_RATE_LIMIT_MGMT_RPS", 50),
			MgmtBurst:   getIntEnv("BILLBOARD_RATE_LIMIT_MGMT_BURST", 10),
		},
		Log: LogConfig{
			Level:  getEnv("BILLBOARD_LOG_LEVEL", "info"),
			Format: getEnv("BILLBOARD_LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getBoolEnv("BILLBOARD_METRICS_ENABLED", true),
			Path:    getEnv("BILLBOARD_METRICS_PATH", "/metrics"),
		},
		Cache: CacheConfig{
			Enabled: getBoolEnv("BILLBOARD_CACHE_ENABLED", true),
			TTL:     getDurationEnv("BILLBOARD_CACHE_TTL", 6*time.Hour),
		},
		Simulation: SimulationConfig{
			FetchConcurrency: getIntEnv("BILLBOARD_SIM_FETCH_CONCURRENCY", 8),
			FetchTimeout:     getDurationEnv("BILLBOARD_SIM_FETCH_TIMEOUT", 3*time.Second),
			MaxCampaignDays:  getIntEnv("BILLBOARD_SIM_MAX_CAMPAIGN_DAYS", 370),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Auth.Enabled && c.Auth.APIKey == "" {
		return fmt.Errorf("BILLBOARD_API_KEY is required when auth is enabled")
	}
	if c.Simulation.FetchConcurrency < 1 {
		return fmt.Errorf("BILLBOARD_SIM_FETCH_CONCURRENCY must be >= 1")
	}
	if c.Simulation.MaxCampaignDays < 1 {
		return fmt.Errorf("BILLBOARD_SIM_MAX_CAMPAIGN_DAYS must be >= 1")
	}
	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Helper functions for reading environment variables

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getIntEnv(key string, def int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getFloatEnv(key string, def float64) float64 {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getSliceEnv(key string, def []string) []string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				result = append(result, p)
			}
		}
		return result
	}
	return def
}
