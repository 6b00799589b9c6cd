package simulation

import "github.com/vantageooh/traffic-engine/internal/models"

// Hourly traffic-share curves per profile. Each curve holds 24 fractions
// summing to 1.0 and is hand-tuned to a real-world traffic shape. The
// tables are immutable process-wide state.
var (
	// Bimodal rush-hour peaks around 07:00-08:00 and 17:00-18:00.
	commuterCurve = [24]float64{
		0.005, 0.003, 0.002, 0.002, 0.005, 0.020, 0.050, 0.085,
		0.090, 0.060, 0.045, 0.045, 0.050, 0.045, 0.045, 0.050,
		0.060, 0.090, 0.085, 0.060, 0.040, 0.030, 0.020, 0.013,
	}

	// Midday-to-evening plateau, peaking with after-work shopping at 17:00.
	retailCurve = [24]float64{
		0.004, 0.002, 0.002, 0.002, 0.003, 0.005, 0.010, 0.020,
		0.040, 0.055, 0.065, 0.065, 0.070, 0.070, 0.070, 0.070,
		0.070, 0.080, 0.075, 0.070, 0.060, 0.050, 0.030, 0.012,
	}

	// Broad and comparatively flat, with modest commute bumps.
	highwayCurve = [24]float64{
		0.015, 0.010, 0.008, 0.008, 0.012, 0.030, 0.045, 0.058,
		0.060, 0.055, 0.052, 0.052, 0.054, 0.054, 0.054, 0.056,
		0.060, 0.064, 0.060, 0.052, 0.045, 0.038, 0.030, 0.028,
	}

	// Late-morning sightseeing plus elevated evening and nightlife hours.
	touristCurve = [24]float64{
		0.020, 0.012, 0.008, 0.005, 0.005, 0.008, 0.012, 0.020,
		0.032, 0.048, 0.062, 0.070, 0.068, 0.062, 0.058, 0.055,
		0.055, 0.060, 0.068, 0.072, 0.070, 0.060, 0.045, 0.025,
	}

	// Morning and evening bumps, flatter than commuter corridors.
	residentialCurve = [24]float64{
		0.010, 0.006, 0.004, 0.004, 0.008, 0.020, 0.040, 0.065,
		0.070, 0.055, 0.050, 0.050, 0.048, 0.050, 0.050, 0.050,
		0.058, 0.070, 0.072, 0.060, 0.055, 0.050, 0.035, 0.020,
	}
)

// Distribution returns the 24-hour traffic-share curve for a profile.
// Unknown profiles resolve to the commuter curve through the explicit
// default branch in ParseProfile.
func Distribution(profile models.TrafficProfile) [24]float64 {
	switch models.ParseProfile(string(profile)) {
	case models.ProfileRetail:
		return retailCurve
	case models.ProfileHighway:
		return highwayCurve
	case models.ProfileTourist:
		return touristCurve
	case models.ProfileResidential:
		return residentialCurve
	default:
		return commuterCurve
	}
}
