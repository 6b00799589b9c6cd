package simulation

import (
	"errors"
	"reflect"
	"testing"

	"github.com/vantageooh/traffic-engine/internal/models"
)

func TestDateRange(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  []string
	}{
		{"single day", "2025-01-01", "2025-01-01", []string{"2025-01-01"}},
		{"three days", "2025-01-01", "2025-01-03", []string{"2025-01-01", "2025-01-02", "2025-01-03"}},
		{"month boundary", "2025-01-31", "2025-02-01", []string{"2025-01-31", "2025-02-01"}},
		{"leap day", "2024-02-28", "2024-03-01", []string{"2024-02-28", "2024-02-29", "2024-03-01"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DateRange(tt.start, tt.end)
			if err != nil {
				t.Fatalf("DateRange: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDateRangeInvalid(t *testing.T) {
	if _, err := DateRange("2025-01-05", "2025-01-01"); !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("inverted range: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := DateRange("not-a-date", "2025-01-01"); !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("malformed start: err = %v, want ErrInvalidArgument", err)
	}
	if _, err := DateRange("2025-01-01", "2025-13-01"); !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("malformed end: err = %v, want ErrInvalidArgument", err)
	}
}

// trendDay builds a minimal single-peak report for rollup tests.
func trendDay(date string, volumes [24]int) *models.TrafficReport {
	r := &models.TrafficReport{
		AssetID: "BB-001",
		Date:    date,
		Profile: models.ProfileCommuter,
	}
	r.HourlyBreakdown = make([]models.HourlyRecord, 24)
	for h, v := range volumes {
		r.HourlyBreakdown[h] = models.HourlyRecord{
			Hour:            h,
			TrafficVolume:   v,
			CongestionLevel: models.CongestionLow,
			AverageSpeed:    80,
			ImpressionScore: v,
		}
	}
	summarize(r)
	return r
}

func TestBuildCampaignReport(t *testing.T) {
	var day1, day2, day3 [24]int
	day1[8] = 100
	day2[17] = 200
	day3[9] = 200

	days := []*models.TrafficReport{
		trendDay("2025-01-01", day1),
		trendDay("2025-01-02", day2),
		trendDay("2025-01-03", day3),
	}

	campaign, err := BuildCampaignReport("BB-001", models.ProfileCommuter, "2025-01-01", "2025-01-03", days)
	if err != nil {
		t.Fatalf("BuildCampaignReport: %v", err)
	}

	if campaign.TotalCampaignVolume != 500 {
		t.Errorf("totalCampaignVolume = %d, want 500", campaign.TotalCampaignVolume)
	}
	// round(500 / 3)
	if campaign.AverageDailyVolume != 167 {
		t.Errorf("averageDailyVolume = %d, want 167", campaign.AverageDailyVolume)
	}
	if campaign.TotalImpressionScore != 500 {
		t.Errorf("totalImpressionScore = %d, want 500", campaign.TotalImpressionScore)
	}

	// Days two and three tie at 200; the earlier date wins.
	if campaign.PeakDay != "2025-01-02" || campaign.PeakDayVolume != 200 {
		t.Errorf("peak = %s/%d, want 2025-01-02/200", campaign.PeakDay, campaign.PeakDayVolume)
	}

	if len(campaign.DailyTrend) != 3 {
		t.Fatalf("trend has %d entries, want 3", len(campaign.DailyTrend))
	}
	for i, want := range []string{"2025-01-01", "2025-01-02", "2025-01-03"} {
		if campaign.DailyTrend[i].Date != want {
			t.Errorf("trend[%d].date = %s, want %s", i, campaign.DailyTrend[i].Date, want)
		}
	}

	// Each entry's congestion and speed come from that day's peak hour.
	entry := campaign.DailyTrend[1]
	if entry.TotalVolume != 200 || entry.AvgCongestion != models.CongestionLow || entry.AvgSpeed != 80 {
		t.Errorf("trend[1] = %+v, expected peak-hour snapshot", entry)
	}
}

func TestBuildCampaignReportPeakHourSnapshot(t *testing.T) {
	var volumes [24]int
	volumes[8] = 500
	volumes[12] = 100
	day := trendDay("2025-03-10", volumes)
	// Make the peak hour distinctive so the snapshot source is unambiguous.
	day.HourlyBreakdown[8].CongestionLevel = models.CongestionSevere
	day.HourlyBreakdown[8].AverageSpeed = 5

	campaign, err := BuildCampaignReport("BB-001", models.ProfileCommuter, "2025-03-10", "2025-03-10", []*models.TrafficReport{day})
	if err != nil {
		t.Fatalf("BuildCampaignReport: %v", err)
	}

	entry := campaign.DailyTrend[0]
	if entry.AvgCongestion != models.CongestionSevere || entry.AvgSpeed != 5 {
		t.Errorf("trend entry = %+v, want severe/5 from the peak hour", entry)
	}
}

func TestBuildCampaignReportEmpty(t *testing.T) {
	if _, err := BuildCampaignReport("BB-001", models.ProfileCommuter, "2025-01-01", "2025-01-01", nil); !errors.Is(err, models.ErrInvalidArgument) {
		t.Errorf("empty days: err = %v, want ErrInvalidArgument", err)
	}
}
