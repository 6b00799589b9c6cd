package simulation

import (
	"fmt"
	"math"

	"github.com/vantageooh/traffic-engine/internal/models"
)

// DateRange expands [start, end] into the ordered list of calendar dates,
// inclusive of both endpoints.
func DateRange(start, end string) ([]string, error) {
	from, err := models.ParseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := models.ParseDate(end)
	if err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, fmt.Errorf("start date %s is after end date %s: %w", start, end, models.ErrInvalidArgument)
	}

	var dates []string
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(models.DateFormat))
	}
	return dates, nil
}

// BuildCampaignReport folds per-day traffic reports, ordered by ascending
// date, into a campaign-level rollup. Each day's representative congestion
// and speed are taken at that day's peak-volume hour.
func BuildCampaignReport(assetID string, profile models.TrafficProfile, start, end string, days []*models.TrafficReport) (*models.CampaignReport, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("campaign requires at least one day: %w", models.ErrInvalidArgument)
	}

	trend := make([]models.DailyTrendEntry, 0, len(days))
	totalVolume := 0
	totalImpressions := 0
	peakDay := ""
	peakDayVolume := -1

	for _, day := range days {
		impressions := 0
		for _, h := range day.HourlyBreakdown {
			impressions += h.ImpressionScore
		}

		peak := day.HourlyBreakdown[day.PeakHour]
		trend = append(trend, models.DailyTrendEntry{
			Date:            day.Date,
			TotalVolume:     day.DailyTotal,
			ImpressionScore: impressions,
			AvgCongestion:   peak.CongestionLevel,
			AvgSpeed:        peak.AverageSpeed,
		})

		totalVolume += day.DailyTotal
		totalImpressions += impressions
		// Strict comparison keeps the earliest date on ties.
		if day.DailyTotal > peakDayVolume {
			peakDayVolume = day.DailyTotal
			peakDay = day.Date
		}
	}

	return &models.CampaignReport{
		AssetID:              assetID,
		Profile:              profile,
		StartDate:            start,
		EndDate:              end,
		TotalCampaignVolume:  totalVolume,
		AverageDailyVolume:   int(math.Round(float64(totalVolume) / float64(len(days)))),
		PeakDay:              peakDay,
		PeakDayVolume:        peakDayVolume,
		TotalImpressionScore: totalImpressions,
		DailyTrend:           trend,
	}, nil
}
