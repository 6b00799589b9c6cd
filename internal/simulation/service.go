package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/vantageooh/traffic-engine/internal/metrics"
	"github.com/vantageooh/traffic-engine/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ObservedSource supplies externally observed hourly records for an asset
// and date. An empty map means no ground-truth data exists for that day.
type ObservedSource interface {
	GetDay(ctx context.Context, assetID, date string) (models.ObservedDay, error)
}

// ReportCache caches single-day reports. Reports are deterministic given
// their inputs, so cached copies stay valid until observed data lands.
type ReportCache interface {
	GetDaily(ctx context.Context, key string) (*models.TrafficReport, bool)
	SetDaily(ctx context.Context, key string, report *models.TrafficReport)
}

// Archiver receives finished reports for warehouse storage.
type Archiver interface {
	ArchiveReport(ctx context.Context, report *models.TrafficReport) error
}

// Options tunes the service's fetch and campaign behavior.
type Options struct {
	// FetchConcurrency bounds parallel observed-data lookups per campaign.
	FetchConcurrency int
	// FetchTimeout caps each observed-data lookup.
	FetchTimeout time.Duration
	// MaxCampaignDays rejects pathologically long ranges.
	MaxCampaignDays int
}

func (o *Options) withDefaults() {
	if o.FetchConcurrency <= 0 {
		o.FetchConcurrency = 8
	}
	if o.FetchTimeout <= 0 {
		o.FetchTimeout = 3 * time.Second
	}
	if o.MaxCampaignDays <= 0 {
		o.MaxCampaignDays = 370
	}
}

// Service is the engine's public entry point: it runs the simulation,
// reconciles observed data, and handles caching and archival around it.
type Service struct {
	gen      *Generator
	observed ObservedSource
	cache    ReportCache
	archive  Archiver
	logger   *zap.Logger
	metrics  *metrics.Metrics
	opts     Options
}

// NewService wires a Service. observed, cache, archive and metrics may be
// nil; the service degrades to pure simulation without them.
func NewService(observed ObservedSource, cache ReportCache, archive Archiver, logger *zap.Logger, m *metrics.Metrics, opts Options) *Service {
	opts.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		gen:      NewGenerator(),
		observed: observed,
		cache:    cache,
		archive:  archive,
		logger:   logger,
		metrics:  m,
		opts:     opts,
	}
}

// ReportRequest identifies one asset-day (or asset-range) to simulate.
type ReportRequest struct {
	AssetID         string
	DailyBaseVolume float64
	Profile         models.TrafficProfile
}

// GenerateDailyReport produces the reconciled 24-hour report for one date.
// Observed-data failures degrade to pure simulation and are never fatal.
func (s *Service) GenerateDailyReport(ctx context.Context, req ReportRequest, date string) (*models.TrafficReport, error) {
	started := time.Now()

	key := cacheKey(req, date)
	if s.cache != nil {
		if cached, ok := s.cache.GetDaily(ctx, key); ok {
			s.metrics.RecordCacheLookup(true)
			return cached, nil
		}
		s.metrics.RecordCacheLookup(false)
	}

	report, err := s.gen.GenerateReport(req.AssetID, req.DailyBaseVolume, req.Profile, date)
	if err != nil {
		return nil, err
	}

	observed := s.fetchObserved(ctx, req.AssetID, date)
	report = Reconcile(report, observed)

	if s.cache != nil {
		s.cache.SetDaily(ctx, key, report)
	}
	if s.archive != nil {
		go s.archiveReport(report)
	}

	s.metrics.RecordReport("daily", string(report.Profile), time.Since(started))
	return report, nil
}

// GenerateCampaignReport runs the daily pipeline across an inclusive date
// range. Observed-data lookups run concurrently; the trend is always
// emitted in ascending date order.
func (s *Service) GenerateCampaignReport(ctx context.Context, req ReportRequest, start, end string) (*models.CampaignReport, error) {
	started := time.Now()

	if req.DailyBaseVolume < 0 {
		return nil, fmt.Errorf("daily base volume must be >= 0, got %v: %w", req.DailyBaseVolume, models.ErrInvalidArgument)
	}
	dates, err := DateRange(start, end)
	if err != nil {
		return nil, err
	}
	if len(dates) > s.opts.MaxCampaignDays {
		return nil, fmt.Errorf("campaign spans %d days, limit is %d: %w", len(dates), s.opts.MaxCampaignDays, models.ErrInvalidArgument)
	}

	profile := models.ParseProfile(string(req.Profile))

	observedByDay := make([]models.ObservedDay, len(dates))
	if s.observed != nil {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(s.opts.FetchConcurrency)
		for i, date := range dates {
			i, date := i, date
			g.Go(func() error {
				observedByDay[i] = s.fetchObserved(gctx, req.AssetID, date)
				return nil
			})
		}
		// Workers never return errors; fetch failures degrade per-day.
		_ = g.Wait()
	}

	days := make([]*models.TrafficReport, len(dates))
	for i, date := range dates {
		report, err := s.gen.GenerateReport(req.AssetID, req.DailyBaseVolume, profile, date)
		if err != nil {
			return nil, err
		}
		days[i] = Reconcile(report, observedByDay[i])
	}

	campaign, err := BuildCampaignReport(req.AssetID, profile, start, end, days)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordReport("campaign", string(profile), time.Since(started))
	return campaign, nil
}

// fetchObserved looks up ground-truth records for one day, treating any
// failure as "no data".
func (s *Service) fetchObserved(ctx context.Context, assetID, date string) models.ObservedDay {
	if s.observed == nil {
		return nil
	}

	fctx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
	defer cancel()

	day, err := s.observed.GetDay(fctx, assetID, date)
	if err != nil {
		s.metrics.RecordObservedFetch("error")
		s.logger.Warn("observed data unavailable, using pure simulation",
			zap.String("asset_id", assetID),
			zap.String("date", date),
			zap.Error(err),
		)
		return nil
	}
	if len(day) == 0 {
		s.metrics.RecordObservedFetch("miss")
		return nil
	}
	s.metrics.RecordObservedFetch("hit")
	return day
}

func (s *Service) archiveReport(report *models.TrafficReport) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.archive.ArchiveReport(ctx, report); err != nil {
		s.metrics.RecordArchiveWrite("error")
		s.logger.Warn("report archival failed",
			zap.String("asset_id", report.AssetID),
			zap.String("date", report.Date),
			zap.Error(err),
		)
		return
	}
	s.metrics.RecordArchiveWrite("ok")
}

func cacheKey(req ReportRequest, date string) string {
	return fmt.Sprintf("report:%s:%s:%s:%.0f", req.AssetID, date, models.ParseProfile(string(req.Profile)), req.DailyBaseVolume)
}
