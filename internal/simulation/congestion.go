package simulation

import "github.com/vantageooh/traffic-engine/internal/models"

// Classification holds the congestion tier assigned to an hour together
// with its representative speed and impression multiplier.
type Classification struct {
	Level      models.CongestionLevel
	SpeedKmh   float64
	Multiplier float64
}

// Classify maps an hourly volume against the asset's nominal per-hour
// capacity. Thresholds are evaluated in order, first match wins.
//
// The High-tier speed draws from rand(seed) where seed is baseSeed+hour,
// without the hourly-noise offset. That reuse is deliberate: downstream
// report shapes depend on it, so changing the offset would break
// reproducibility against historical reports.
func Classify(volume int, capacityThreshold float64, seed int, rand func(int) float64) Classification {
	// A zero threshold means a brand-new asset with no traffic at all;
	// comparing against it would fall through every branch by accident,
	// so short-circuit to free-flowing.
	if capacityThreshold <= 0 {
		return Classification{Level: models.CongestionLow, SpeedKmh: 80, Multiplier: 1.0}
	}

	v := float64(volume)
	switch {
	case v > capacityThreshold*1.2:
		return Classification{Level: models.CongestionSevere, SpeedKmh: 5, Multiplier: 2.5}
	case v > capacityThreshold*0.9:
		return Classification{Level: models.CongestionHigh, SpeedKmh: 30 + rand(seed)*10, Multiplier: 1.8}
	case v > capacityThreshold*0.5:
		return Classification{Level: models.CongestionModerate, SpeedKmh: 40, Multiplier: 1.2}
	default:
		return Classification{Level: models.CongestionLow, SpeedKmh: 80, Multiplier: 1.0}
	}
}

// capacityShare is the fraction of the daily volume considered a "normal"
// hourly load when grading congestion.
const capacityShare = 0.08
