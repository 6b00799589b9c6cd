package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidArgument is returned when a caller supplies input the engine
// cannot compute a report from (negative volumes, malformed dates,
// inverted date ranges).
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("not found")

// DateFormat is the calendar date layout used throughout the engine.
// Dates carry no time component and no timezone.
const DateFormat = "2006-01-02"

// ParseDate parses an ISO-8601 calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("malformed date %q: %w", s, ErrInvalidArgument)
	}
	return t, nil
}

// CongestionLevel classifies how congested an hour of traffic is.
type CongestionLevel string

const (
	CongestionLow      CongestionLevel = "low"
	CongestionModerate CongestionLevel = "moderate"
	CongestionHigh     CongestionLevel = "high"
	CongestionSevere   CongestionLevel = "severe"
)

// Multiplier returns the dwell-time impression multiplier for the level.
// Congested traffic moves slower, so each vehicle spends longer in view
// of the asset.
func (c CongestionLevel) Multiplier() float64 {
	switch c {
	case CongestionSevere:
		return 2.5
	case CongestionHigh:
		return 1.8
	case CongestionModerate:
		return 1.2
	default:
		return 1.0
	}
}

// ParseCongestionLevel parses a congestion level, case-insensitively.
func ParseCongestionLevel(s string) (CongestionLevel, error) {
	switch CongestionLevel(strings.ToLower(strings.TrimSpace(s))) {
	case CongestionLow:
		return CongestionLow, nil
	case CongestionModerate:
		return CongestionModerate, nil
	case CongestionHigh:
		return CongestionHigh, nil
	case CongestionSevere:
		return CongestionSevere, nil
	}
	return "", fmt.Errorf("unknown congestion level %q: %w", s, ErrInvalidArgument)
}

// TrafficProfile names a behavioral traffic curve for an asset's location.
type TrafficProfile string

const (
	ProfileCommuter    TrafficProfile = "commuter"
	ProfileRetail      TrafficProfile = "retail"
	ProfileHighway     TrafficProfile = "highway"
	ProfileTourist     TrafficProfile = "tourist"
	ProfileResidential TrafficProfile = "residential"
)

// ParseProfile resolves a profile key case-insensitively. Unknown keys
// resolve to the commuter profile; invalid input is a visible default,
// not an error.
func ParseProfile(s string) TrafficProfile {
	switch TrafficProfile(strings.ToLower(strings.TrimSpace(s))) {
	case ProfileRetail:
		return ProfileRetail
	case ProfileHighway:
		return ProfileHighway
	case ProfileTourist:
		return ProfileTourist
	case ProfileResidential:
		return ProfileResidential
	case ProfileCommuter:
		return ProfileCommuter
	default:
		return ProfileCommuter
	}
}

// HourlyRecord is one hour of one day for one asset.
type HourlyRecord struct {
	Hour            int             `json:"hour"`
	TrafficVolume   int             `json:"traffic_volume"`
	CongestionLevel CongestionLevel `json:"congestion_level"`
	AverageSpeed    float64         `json:"average_speed_kmh"`
	ImpressionScore int             `json:"impression_score"`
}

// TrafficReport is a full 24-hour traffic report for one asset and date.
type TrafficReport struct {
	AssetID string         `json:"asset_id"`
	Date    string         `json:"date"`
	Profile TrafficProfile `json:"profile"`

	DailyTotal            int `json:"daily_total"`
	PeakHour              int `json:"peak_hour"`
	PeakVolume            int `json:"peak_volume"`
	CongestionImpactScore int `json:"congestion_impact_score"`

	// ObservedHours counts hours overridden by externally observed data.
	// Zero means the report is purely simulated.
	ObservedHours int `json:"observed_hours"`

	HourlyBreakdown []HourlyRecord `json:"hourly_breakdown"`
}

// DailyTrendEntry is one day's rollup within a campaign report.
type DailyTrendEntry struct {
	Date            string          `json:"date"`
	TotalVolume     int             `json:"total_volume"`
	ImpressionScore int             `json:"impression_score"`
	AvgCongestion   CongestionLevel `json:"avg_congestion"`
	AvgSpeed        float64         `json:"avg_speed_kmh"`
}

// CampaignReport aggregates daily reports across an inclusive date range.
type CampaignReport struct {
	AssetID string         `json:"asset_id"`
	Profile TrafficProfile `json:"profile"`

	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	TotalCampaignVolume  int    `json:"total_campaign_volume"`
	AverageDailyVolume   int    `json:"average_daily_volume"`
	PeakDay              string `json:"peak_day"`
	PeakDayVolume        int    `json:"peak_day_volume"`
	TotalImpressionScore int    `json:"total_impression_score"`

	DailyTrend []DailyTrendEntry `json:"daily_trend"`
}

// ObservedRecord is one externally observed hour of traffic, sourced from
// the routing-API ingest pipeline.
type ObservedRecord struct {
	Hour            int             `json:"hour"`
	TrafficVolume   int             `json:"traffic_volume"`
	CongestionLevel CongestionLevel `json:"congestion_level"`
	AverageSpeed    float64         `json:"average_speed_kmh"`
}

// Validate checks that an observed record is well formed.
func (o *ObservedRecord) Validate() error {
	if o.Hour < 0 || o.Hour > 23 {
		return fmt.Errorf("hour %d out of range: %w", o.Hour, ErrInvalidArgument)
	}
	if o.TrafficVolume < 0 {
		return fmt.Errorf("traffic_volume must be >= 0: %w", ErrInvalidArgument)
	}
	if o.AverageSpeed < 0 {
		return fmt.Errorf("average_speed_kmh must be >= 0: %w", ErrInvalidArgument)
	}
	if _, err := ParseCongestionLevel(string(o.CongestionLevel)); err != nil {
		return err
	}
	return nil
}

// ObservedDay maps hour -> observed record for one asset and date.
type ObservedDay map[int]ObservedRecord
