package simulation

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/vantageooh/traffic-engine/internal/models"
)

type mockObservedSource struct {
	getDayFunc func(ctx context.Context, assetID, date string) (models.ObservedDay, error)
}

func (m *mockObservedSource) GetDay(ctx context.Context, assetID, date string) (models.ObservedDay, error) {
	return m.getDayFunc(ctx, assetID, date)
}

type mockCache struct {
	mu    sync.Mutex
	store map[string]*models.TrafficReport
	gets  int
	sets  int
}

func newMockCache() *mockCache {
	return &mockCache{store: make(map[string]*models.TrafficReport)}
}

func (m *mockCache) GetDaily(ctx context.Context, key string) (*models.TrafficReport, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	r, ok := m.store[key]
	return r, ok
}

func (m *mockCache) SetDaily(ctx context.Context, key string, report *models.TrafficReport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	m.store[key] = report
}

func TestServiceDailyPureSimulation(t *testing.T) {
	svc := NewService(nil, nil, nil, nil, nil, Options{})

	req := ReportRequest{AssetID: "BB-001", DailyBaseVolume: 50000, Profile: models.ProfileCommuter}
	report, err := svc.GenerateDailyReport(context.Background(), req, "2025-06-16")
	if err != nil {
		t.Fatalf("GenerateDailyReport: %v", err)
	}

	if report.ObservedHours != 0 {
		t.Errorf("observedHours = %d, want 0", report.ObservedHours)
	}
	if len(report.HourlyBreakdown) != 24 {
		t.Errorf("got %d hourly records, want 24", len(report.HourlyBreakdown))
	}
}

func TestServiceDailyFetchFailureDegrades(t *testing.T) {
	source := &mockObservedSource{
		getDayFunc: func(ctx context.Context, assetID, date string) (models.ObservedDay, error) {
			return nil, errors.New("connection refused")
		},
	}
	svc := NewService(source, nil, nil, nil, nil, Options{})

	req := ReportRequest{AssetID: "BB-001", DailyBaseVolume: 50000, Profile: models.ProfileCommuter}
	report, err := svc.GenerateDailyReport(context.Background(), req, "2025-06-16")
	if err != nil {
		t.Fatalf("fetch failure should not be fatal: %v", err)
	}
	if report.ObservedHours != 0 {
		t.Errorf("observedHours = %d, want 0 after degraded fetch", report.ObservedHours)
	}

	pure, err := NewGenerator().GenerateReport(req.AssetID, req.DailyBaseVolume, req.Profile, "2025-06-16")
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}
	if !reflect.DeepEqual(report, pure) {
		t.Error("degraded report differs from pure simulation")
	}
}

func TestServiceDailyMergesObserved(t *testing.T) {
	source := &mockObservedSource{
		getDayFunc: func(ctx context.Context, assetID, date string) (models.ObservedDay, error) {
			return models.ObservedDay{
				5: {Hour: 5, TrafficVolume: 7777, CongestionLevel: models.CongestionHigh, AverageSpeed: 33},
			}, nil
		},
	}
	svc := NewService(source, nil, nil, nil, nil, Options{})

	req := ReportRequest{AssetID: "BB-001", DailyBaseVolume: 50000, Profile: models.ProfileCommuter}
	report, err := svc.GenerateDailyReport(context.Background(), req, "2025-06-16")
	if err != nil {
		t.Fatalf("GenerateDailyReport: %v", err)
	}

	if report.ObservedHours != 1 {
		t.Errorf("observedHours = %d, want 1", report.ObservedHours)
	}
	h := report.HourlyBreakdown[5]
	if h.TrafficVolume != 7777 || h.CongestionLevel != models.CongestionHigh || h.AverageSpeed != 33 {
		t.Errorf("hour 5 = %+v, want observed override", h)
	}
}

func TestServiceDailyCache(t *testing.T) {
	cache := newMockCache()
	svc := NewService(nil, cache, nil, nil, nil, Options{})

	req := ReportRequest{AssetID: "BB-001", DailyBaseVolume: 50000, Profile: models.ProfileCommuter}

	first, err := svc.GenerateDailyReport(context.Background(), req, "2025-06-16")
	if err != nil {
		t.Fatalf("GenerateDailyReport: %v", err)
	}
	if cache.sets != 1 {
		t.Errorf("cache sets = %d, want 1", cache.sets)
	}

	second, err := svc.GenerateDailyReport(context.Background(), req, "2025-06-16")
	if err != nil {
		t.Fatalf("GenerateDailyReport: %v", err)
	}
	if second != first {
		t.Error("second call should return the cached report")
	}
	if cache.sets != 1 {
		t.Errorf("cache sets after hit = %d, want 1", cache.sets)
	}

	// Different profile, different cache entry.
	req.Profile = models.ProfileRetail
	if _, err := svc.GenerateDailyReport(context.Background(), req, "2025-06-16"); err != nil {
		t.Fatalf("GenerateDailyReport: %v", err)
	}
	if cache.sets != 2 {
		t.Errorf("cache sets = %d, want 2 after profile change", cache.sets)
	}
}

func TestServiceDailyInvalidInput(t *testing.T) {
	svc := NewService(nil, nil, nil, nil, nil, Options{})
	req := ReportRequest{AssetID: "BB-001", DailyBaseVolume: -5, Profile: models.ProfileCommuter}

	if _, err := svc.GenerateDailyReport(context.Background(), req, "2025-06-16"); !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("negative volume: err = %v, want ErrInvalidArgument", err)
	}

	req.DailyBaseVolume = 1000
	if _, err := svc.GenerateDailyReport(context.Background(), req, "junk"); !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("bad date: err = %v, want ErrInvalidArgument", err)
	}
}

func TestServiceCampaign(t *testing.T) {
	var mu sync.Mutex
	fetched := make(map[string]bool)
	source := &mockObservedSource{
		getDayFunc: func(ctx context.Context, assetID, date string) (models.ObservedDay, error) {
			mu.Lock()
			fetched[date] = true
			mu.Unlock()
			if date == "2025-01-02" {
				return models.ObservedDay{
					8: {Hour: 8, TrafficVolume: 123456, CongestionLevel: models.CongestionSevere, AverageSpeed: 5},
				}, nil
			}
			return nil, nil
		},
	}
	svc := NewService(source, nil, nil, nil, nil, Options{FetchConcurrency: 2})

	req := ReportRequest{AssetID: "BB-001", DailyBaseVolume: 50000, Profile: models.ProfileCommuter}
	campaign, err := svc.GenerateCampaignReport(context.Background(), req, "2025-01-01", "2025-01-03")
	if err != nil {
		t.Fatalf("GenerateCampaignReport: %v", err)
	}

	if len(campaign.DailyTrend) != 3 {
		t.Fatalf("trend has %d entries, want 3", len(campaign.DailyTrend))
	}
	for i, want := range []string{"2025-01-01", "2025-01-02", "2025-01-03"} {
		if campaign.DailyTrend[i].Date != want {
			t.Errorf("trend[%d].date = %s, want %s", i, campaign.DailyTrend[i].Date, want)
		}
		if !fetched[want] {
			t.Errorf("observed data never fetched for %s", want)
		}
	}

	// The observed spike dominates the whole campaign.
	if campaign.PeakDay != "2025-01-02" {
		t.Errorf("peakDay = %s, want 2025-01-02", campaign.PeakDay)
	}
	if campaign.DailyTrend[1].AvgCongestion != models.CongestionSevere {
		t.Errorf("trend[1].avgCongestion = %s, want severe", campaign.DailyTrend[1].AvgCongestion)
	}

	wantTotal := 0
	for _, e := range campaign.DailyTrend {
		wantTotal += e.TotalVolume
	}
	if campaign.TotalCampaignVolume != wantTotal {
		t.Errorf("totalCampaignVolume = %d, want %d", campaign.TotalCampaignVolume, wantTotal)
	}
}

func TestServiceCampaignInvalidRange(t *testing.T) {
	svc := NewService(nil, nil, nil, nil, nil, Options{})
	req := ReportRequest{AssetID: "BB-001", DailyBaseVolume: 50000, Profile: models.ProfileCommuter}

	if _, err := svc.GenerateCampaignReport(context.Background(), req, "2025-01-05", "2025-01-01"); !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("inverted range: err = %v, want ErrInvalidArgument", err)
	}
}

func TestServiceCampaignTooLong(t *testing.T) {
	svc := NewService(nil, nil, nil, nil, nil, Options{MaxCampaignDays: 2})
	req := ReportRequest{AssetID: "BB-001", DailyBaseVolume: 50000, Profile: models.ProfileCommuter}

	if _, err := svc.GenerateCampaignReport(context.Background(), req, "2025-01-01", "2025-01-03"); !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("over-limit range: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := svc.GenerateCampaignReport(context.Background(), req, "2025-01-01", "2025-01-02"); err != nil {
		t.Errorf("at-limit range should succeed: %v", err)
	}
}
