package simulation

import (
	"fmt"
	"math"
	"time"

	"github.com/vantageooh/traffic-engine/internal/models"
)

// Generator produces deterministic synthetic traffic reports. The rand
// source is injectable so tests can pin the noise draws; production code
// always uses SeededRandom.
type Generator struct {
	rand func(int) float64
}

// NewGenerator returns a Generator backed by the seeded trig-hash source.
func NewGenerator() *Generator {
	return &Generator{rand: SeededRandom}
}

// NewGeneratorWithRand returns a Generator with a custom random source.
func NewGeneratorWithRand(rand func(int) float64) *Generator {
	return &Generator{rand: rand}
}

// weekendMultiplier adjusts the daily volume for Saturday/Sunday traffic:
// commuter corridors quiet down, retail and tourist areas pick up.
func weekendMultiplier(profile models.TrafficProfile, day time.Weekday) float64 {
	if day != time.Saturday && day != time.Sunday {
		return 1.0
	}
	switch profile {
	case models.ProfileCommuter:
		return 0.8
	case models.ProfileRetail, models.ProfileTourist:
		return 1.25
	default:
		return 1.0
	}
}

// GenerateReport synthesizes a full 24-hour traffic report for one asset
// and date. It is pure and deterministic: the same inputs always yield a
// byte-identical report.
func (g *Generator) GenerateReport(assetID string, dailyBaseVolume float64, profile models.TrafficProfile, date string) (*models.TrafficReport, error) {
	if dailyBaseVolume < 0 {
		return nil, fmt.Errorf("daily base volume must be >= 0, got %v: %w", dailyBaseVolume, models.ErrInvalidArgument)
	}
	day, err := models.ParseDate(date)
	if err != nil {
		return nil, err
	}

	profile = models.ParseProfile(string(profile))
	dist := Distribution(profile)
	baseSeed := BaseSeed(assetID, date)

	// Daily-level adjustment: weekend shift plus +/-10% day-to-day variance.
	volumeMultiplier := weekendMultiplier(profile, day.Weekday())
	dailyVariance := 0.9 + g.rand(baseSeed)*0.2
	adjustedDailyVolume := math.Round(dailyBaseVolume * volumeMultiplier * dailyVariance)

	capacityThreshold := adjustedDailyVolume * capacityShare

	breakdown := make([]models.HourlyRecord, 24)
	for hour := 0; hour < 24; hour++ {
		hourlyNoise := 0.85 + g.rand(baseSeed+hour+hourlyNoiseOffset)*0.3
		volume := int(math.Round(adjustedDailyVolume * dist[hour] * hourlyNoise))
		if volume < 0 {
			volume = 0
		}

		c := Classify(volume, capacityThreshold, baseSeed+hour, g.rand)
		breakdown[hour] = models.HourlyRecord{
			Hour:            hour,
			TrafficVolume:   volume,
			CongestionLevel: c.Level,
			AverageSpeed:    c.SpeedKmh,
			ImpressionScore: int(math.Round(float64(volume) * c.Multiplier)),
		}
	}

	report := &models.TrafficReport{
		AssetID:         assetID,
		Date:            date,
		Profile:         profile,
		HourlyBreakdown: breakdown,
	}
	summarize(report)
	return report, nil
}

// summarize recomputes the day-level aggregates from the hourly breakdown.
// Shared between generation and reconciliation so both use the same
// rounding order.
func summarize(r *models.TrafficReport) {
	dailyTotal := 0
	impressionTotal := 0
	peakHour := 0
	peakVolume := -1

	for _, h := range r.HourlyBreakdown {
		dailyTotal += h.TrafficVolume
		impressionTotal += h.ImpressionScore
		// Strict comparison keeps the earliest hour on ties.
		if h.TrafficVolume > peakVolume {
			peakVolume = h.TrafficVolume
			peakHour = h.Hour
		}
	}

	r.DailyTotal = dailyTotal
	r.PeakHour = peakHour
	r.PeakVolume = peakVolume
	if dailyTotal > 0 {
		r.CongestionImpactScore = int(math.Round(float64(impressionTotal-dailyTotal) / float64(dailyTotal) * 100))
	} else {
		r.CongestionImpactScore = 0
	}
}
