package simulation

import "math"

// SeededRandom maps an integer seed to a float in [0, 1). It is a pure
// trigonometric hash (fractional part of sin(seed) * 10000), so identical
// seeds always produce identical draws and concurrent callers share no
// state. Not suitable for anything cryptographic.
func SeededRandom(seed int) float64 {
	x := math.Sin(float64(seed)) * 10000
	return x - math.Floor(x)
}

// BaseSeed derives the deterministic seed for an (asset, date) pair as the
// sum of byte values of "assetID-date".
func BaseSeed(assetID, date string) int {
	s := assetID + "-" + date
	sum := 0
	for i := 0; i < len(s); i++ {
		sum += int(s[i])
	}
	return sum
}

// hourlyNoiseOffset keeps the per-hour draws from overlapping the daily
// variance draw at BaseSeed and the speed draws at BaseSeed+hour.
const hourlyNoiseOffset = 100
