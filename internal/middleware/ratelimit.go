package middleware

import (
	"net/http"
	"strings"

	"github.com/vantageooh/traffic-engine/internal/config"
	"github.com/vantageooh/traffic-engine/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware implements token bucket rate limiting. Report
// generation is CPU-bound and fans out observed-data lookups, so it gets
// its own, tighter bucket than management CRUD.
type RateLimitMiddleware struct {
	cfg           config.RateLimitConfig
	logger        *zap.Logger
	metrics       *metrics.Metrics
	reportLimiter *rate.Limiter
	mgmtLimiter   *rate.Limiter
}

// NewRateLimitMiddleware creates a new rate limiting middleware.
func NewRateLimitMiddleware(cfg config.RateLimitConfig, logger *zap.Logger, m *metrics.Metrics) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		cfg:           cfg,
		logger:        logger,
		metrics:       m,
		reportLimiter: rate.NewLimiter(rate.Limit(cfg.ReportRPS), cfg.ReportBurst),
		mgmtLimiter:   rate.NewLimiter(rate.Limit(cfg.MgmtRPS), cfg.MgmtBurst),
	}
}

// Handler wraps an http.Handler with rate limiting.
func (rl *RateLimitMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.cfg.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		var limiter *rate.Limiter
		if rl.isReportEndpoint(r.URL.Path) {
			limiter = rl.reportLimiter
		} else {
			limiter = rl.mgmtLimiter
		}

		if !limiter.Allow() {
			rl.logger.Warn("rate limit exceeded",
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
			)
			rl.metrics.RecordRateLimitHit(r.URL.Path)
			rl.tooManyRequests(w)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// isReportEndpoint returns true if the path is a report generation endpoint.
func (rl *RateLimitMiddleware) isReportEndpoint(path string) bool {
	return strings.HasPrefix(path, "/reports/")
}

// tooManyRequests sends a 429 response.
func (rl *RateLimitMiddleware) tooManyRequests(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Retry-After", "1")
	w.WriteHeader(http.StatusTooManyRequests)
	w.Write([]byte(`{"error":"rate limit exceeded"}`))
}
