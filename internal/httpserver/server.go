package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/vantageooh/traffic-engine/internal/archive"
	"github.com/vantageooh/traffic-engine/internal/assets"
	"github.com/vantageooh/traffic-engine/internal/cache"
	"github.com/vantageooh/traffic-engine/internal/config"
	"github.com/vantageooh/traffic-engine/internal/database"
	"github.com/vantageooh/traffic-engine/internal/metrics"
	"github.com/vantageooh/traffic-engine/internal/middleware"
	"github.com/vantageooh/traffic-engine/internal/models"
	"github.com/vantageooh/traffic-engine/internal/simulation"
	"github.com/vantageooh/traffic-engine/internal/storage"
	"go.uber.org/zap"
)

// Dependencies holds all external dependencies for the server.
type Dependencies struct {
	DB         *database.PostgresDB
	Redis      *database.RedisDB
	ClickHouse *database.ClickHouseDB
	Config     *config.Config
	Logger     *zap.Logger
	Metrics    *metrics.Metrics
}

// Server wraps HTTP handlers and the simulation services.
type Server struct {
	assetService  *assets.Service
	reportService *simulation.Service
	observedStore storage.ObservedStore
	reportCache   *cache.RedisReportCache
	logger        *zap.Logger
	config        *config.Config
	metrics       *metrics.Metrics
}

// NewServer constructs a new http.Handler with all routes registered.
func NewServer(deps *Dependencies) http.Handler {
	// Initialize repositories
	var assetRepo storage.AssetRepo
	var observedStore storage.ObservedStore

	if deps.DB != nil {
		assetRepo = storage.NewPostgresAssetRepo(deps.DB.Pool)
		observedStore = storage.NewPostgresObservedStore(deps.DB.Pool)
	} else {
		assetRepo = storage.NewInMemoryAssetRepo()
		observedStore = storage.NewInMemoryObservedStore()
	}

	var reportCache *cache.RedisReportCache
	var serviceCache simulation.ReportCache
	if deps.Redis != nil && deps.Config.Cache.Enabled {
		reportCache = cache.NewRedisReportCache(deps.Redis.Client, deps.Config.Cache.TTL, deps.Logger)
		serviceCache = reportCache
	}

	var archiver simulation.Archiver
	if deps.ClickHouse != nil {
		archiver = archive.NewClickHouseArchiver(deps.ClickHouse.Conn, deps.Logger)
	}

	reportService := simulation.NewService(observedStore, serviceCache, archiver, deps.Logger, deps.Metrics, simulation.Options{
		FetchConcurrency: deps.Config.Simulation.FetchConcurrency,
		FetchTimeout:     deps.Config.Simulation.FetchTimeout,
		MaxCampaignDays:  deps.Config.Simulation.MaxCampaignDays,
	})

	s := &Server{
		assetService:  assets.NewService(assetRepo, deps.Metrics),
		reportService: reportService,
		observedStore: observedStore,
		reportCache:   reportCache,
		logger:        deps.Logger,
		config:        deps.Config,
		metrics:       deps.Metrics,
	}

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", s.handleHealth)

	// Prometheus metrics
	if deps.Config.Metrics.Enabled {
		mux.Handle(deps.Config.Metrics.Path, metrics.Handler())
	}

	// Asset registry
	mux.HandleFunc("/assets", s.handleAssets)
	mux.HandleFunc("/assets/", s.handleAssetByID)

	// Observed ground-truth ingest
	mux.HandleFunc("/observed/", s.handleObservedIngest)

	// Reports
	mux.HandleFunc("/reports/daily", s.handleDailyReport)
	mux.HandleFunc("/reports/campaign", s.handleCampaignReport)

	// Middleware chain: recovery wraps everything, then logging, auth and
	// rate limiting.
	rateLimit := middleware.NewRateLimitMiddleware(deps.Config.RateLimit, deps.Logger, deps.Metrics)
	auth := middleware.NewAuthMiddleware(deps.Config.Auth, deps.Logger)
	logging := middleware.NewLoggingMiddleware(deps.Logger)
	recovery := middleware.NewRecoveryMiddleware(deps.Logger)

	var handler http.Handler = mux
	handler = rateLimit.Handler(handler)
	handler = auth.Handler(handler)
	handler = logging.Handler(handler)
	handler = recovery.Handler(handler)

	return handler
}

// ---- Health Check ----

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// ---- Assets CRUD ----

func (s *Server) handleAssets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		list, err := s.assetService.ListAssets(r.Context())
		if err != nil {
			s.logger.Error("failed to list assets", zap.Error(err))
			s.errorResponse(w, "failed to list", http.StatusInternalServerError)
			return
		}
		s.jsonResponse(w, list)

	case http.MethodPost:
		var a models.Asset
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			s.errorResponse(w, "invalid json", http.StatusBadRequest)
			return
		}
		if err := s.assetService.UpsertAsset(r.Context(), &a); err != nil {
			s.errorResponse(w, "failed to save: "+err.Error(), http.StatusBadRequest)
			return
		}
		s.jsonResponse(w, a)

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleAssetByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/assets/")
	if id == "" || strings.Contains(id, "/") {
		s.errorResponse(w, "invalid asset id", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		a, err := s.assetService.GetAsset(r.Context(), id)
		if err != nil {
			s.logger.Error("failed to get asset", zap.String("id", id), zap.Error(err))
			s.errorResponse(w, "failed to get", http.StatusInternalServerError)
			return
		}
		if a == nil {
			s.errorResponse(w, "asset not found", http.StatusNotFound)
			return
		}
		s.jsonResponse(w, a)

	case http.MethodPut:
		var a models.Asset
		if err := json.NewDecoder(r.Body).Decode(&a); err != nil {
			s.errorResponse(w, "invalid json", http.StatusBadRequest)
			return
		}
		a.ID = id
		if err := s.assetService.UpsertAsset(r.Context(), &a); err != nil {
			s.errorResponse(w, "failed to save: "+err.Error(), http.StatusBadRequest)
			return
		}
		s.jsonResponse(w, a)

	case http.MethodDelete:
		if err := s.assetService.DeleteAsset(r.Context(), id); err != nil {
			s.logger.Error("failed to delete asset", zap.String("id", id), zap.Error(err))
			s.errorResponse(w, "failed to delete", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// ---- Observed Data Ingest ----

// handleObservedIngest accepts POST /observed/{assetID}/{date} with a JSON
// array of hourly records from the routing-API pipeline.
func (s *Server) handleObservedIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/observed/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		s.errorResponse(w, "expected /observed/{asset_id}/{date}", http.StatusBadRequest)
		return
	}
	assetID, date := parts[0], parts[1]

	if _, err := models.ParseDate(date); err != nil {
		s.metrics.RecordObservedIngest("invalid")
		s.errorResponse(w, "malformed date", http.StatusBadRequest)
		return
	}

	var records []models.ObservedRecord
	if err := json.NewDecoder(r.Body).Decode(&records); err != nil {
		s.metrics.RecordObservedIngest("invalid")
		s.errorResponse(w, "invalid json", http.StatusBadRequest)
		return
	}
	if len(records) == 0 {
		s.metrics.RecordObservedIngest("invalid")
		s.errorResponse(w, "no records", http.StatusBadRequest)
		return
	}
	for i := range records {
		if err := records[i].Validate(); err != nil {
			s.metrics.RecordObservedIngest("invalid")
			s.errorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	if err := s.observedStore.SaveRecords(r.Context(), assetID, date, records); err != nil {
		s.metrics.RecordObservedIngest("error")
		s.logger.Error("failed to save observed records",
			zap.String("asset_id", assetID),
			zap.String("date", date),
			zap.Error(err),
		)
		s.errorResponse(w, "failed to save", http.StatusInternalServerError)
		return
	}

	// Cached reports for this day are stale now.
	if s.reportCache != nil {
		s.reportCache.InvalidateDay(r.Context(), assetID, date)
	}

	s.metrics.RecordObservedIngest("ok")
	s.jsonResponse(w, map[string]any{"saved": len(records)})
}

// ---- Reports ----

// resolveReportRequest builds the simulation inputs from query parameters,
// falling back to the asset registry when base_volume/profile are omitted.
func (s *Server) resolveReportRequest(r *http.Request) (simulation.ReportRequest, int, string) {
	q := r.URL.Query()

	assetID := q.Get("asset_id")
	if assetID == "" {
		return simulation.ReportRequest{}, http.StatusBadRequest, "asset_id is required"
	}

	req := simulation.ReportRequest{AssetID: assetID}

	baseVolumeParam := q.Get("base_volume")
	profileParam := q.Get("profile")

	if baseVolumeParam == "" || profileParam == "" {
		asset, err := s.assetService.GetAsset(r.Context(), assetID)
		if err != nil {
			s.logger.Error("failed to look up asset", zap.String("id", assetID), zap.Error(err))
			return simulation.ReportRequest{}, http.StatusInternalServerError, "failed to look up asset"
		}
		if asset == nil && baseVolumeParam == "" {
			return simulation.ReportRequest{}, http.StatusNotFound, "asset not found; pass base_volume and profile for ad-hoc reports"
		}
		if asset != nil {
			req.DailyBaseVolume = asset.DailyBaseVolume
			req.Profile = asset.Profile
		}
	}

	if baseVolumeParam != "" {
		v, err := strconv.ParseFloat(baseVolumeParam, 64)
		if err != nil {
			return simulation.ReportRequest{}, http.StatusBadRequest, "base_volume must be a number"
		}
		req.DailyBaseVolume = v
	}
	if profileParam != "" {
		req.Profile = models.ParseProfile(profileParam)
	}

	return req, 0, ""
}

func (s *Server) handleDailyReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		s.errorResponse(w, "date is required", http.StatusBadRequest)
		return
	}

	req, status, msg := s.resolveReportRequest(r)
	if status != 0 {
		s.errorResponse(w, msg, status)
		return
	}

	report, err := s.reportService.GenerateDailyReport(r.Context(), req, date)
	if err != nil {
		s.reportError(w, err)
		return
	}
	s.jsonResponse(w, report)
}

func (s *Server) handleCampaignReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.errorResponse(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	q := r.URL.Query()
	start, end := q.Get("start"), q.Get("end")
	if start == "" || end == "" {
		s.errorResponse(w, "start and end are required", http.StatusBadRequest)
		return
	}

	req, status, msg := s.resolveReportRequest(r)
	if status != 0 {
		s.errorResponse(w, msg, status)
		return
	}

	report, err := s.reportService.GenerateCampaignReport(r.Context(), req, start, end)
	if err != nil {
		s.reportError(w, err)
		return
	}
	s.jsonResponse(w, report)
}

func (s *Server) reportError(w http.ResponseWriter, err error) {
	if errors.Is(err, models.ErrInvalidArgument) {
		s.errorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.logger.Error("report generation failed", zap.Error(err))
	s.errorResponse(w, "internal error", http.StatusInternalServerError)
}

// ---- Response helpers ----

func (s *Server) jsonResponse(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
