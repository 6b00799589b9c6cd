package simulation

import (
	"math"

	"github.com/vantageooh/traffic-engine/internal/models"
)

// Reconcile overlays externally observed hourly records onto a simulated
// report and recomputes the day-level aggregates. Hours absent from the
// overlay keep their simulated values. The input report is never mutated;
// an empty overlay returns it as-is.
func Reconcile(simulated *models.TrafficReport, observed models.ObservedDay) *models.TrafficReport {
	if len(observed) == 0 {
		return simulated
	}

	merged := *simulated
	merged.HourlyBreakdown = make([]models.HourlyRecord, len(simulated.HourlyBreakdown))
	copy(merged.HourlyBreakdown, simulated.HourlyBreakdown)

	observedHours := 0
	for i, h := range merged.HourlyBreakdown {
		o, ok := observed[h.Hour]
		if !ok {
			continue
		}
		merged.HourlyBreakdown[i] = models.HourlyRecord{
			Hour:            h.Hour,
			TrafficVolume:   o.TrafficVolume,
			CongestionLevel: o.CongestionLevel,
			AverageSpeed:    o.AverageSpeed,
			ImpressionScore: int(math.Round(float64(o.TrafficVolume) * o.CongestionLevel.Multiplier())),
		}
		observedHours++
	}

	merged.ObservedHours = simulated.ObservedHours + observedHours
	summarize(&merged)
	return &merged
}
