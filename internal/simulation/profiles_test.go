package simulation

import (
	"math"
	"testing"

	"github.com/vantageooh/traffic-engine/internal/models"
)

func TestDistributionCurvesSumToOne(t *testing.T) {
	profiles := []models.TrafficProfile{
		models.ProfileCommuter,
		models.ProfileRetail,
		models.ProfileHighway,
		models.ProfileTourist,
		models.ProfileResidential,
	}

	for _, p := range profiles {
		dist := Distribution(p)
		sum := 0.0
		for hour, share := range dist {
			if share < 0 {
				t.Errorf("%s hour %d: negative share %v", p, hour, share)
			}
			sum += share
		}
		if math.Abs(sum-1.0) > 0.001 {
			t.Errorf("%s: shares sum to %v, want 1.0", p, sum)
		}
	}
}

func TestDistributionShapes(t *testing.T) {
	// Commuter is bimodal with rush-hour peaks.
	commuter := Distribution(models.ProfileCommuter)
	if commuter[8] <= commuter[12] || commuter[17] <= commuter[12] {
		t.Error("commuter curve missing rush-hour peaks over midday")
	}
	if commuter[3] >= commuter[8] {
		t.Error("commuter curve should be quiet at night")
	}

	// Retail peaks at 17:00 and is quiet before opening hours.
	retail := Distribution(models.ProfileRetail)
	for hour, share := range retail {
		if hour != 17 && share > retail[17] {
			t.Errorf("retail hour %d (%v) exceeds the 17:00 peak (%v)", hour, share, retail[17])
		}
	}

	// Tourist traffic stays elevated into the evening.
	tourist := Distribution(models.ProfileTourist)
	if tourist[19] <= tourist[7] {
		t.Error("tourist curve should favor evenings over early morning")
	}
}

func TestDistributionFallback(t *testing.T) {
	commuter := Distribution(models.ProfileCommuter)

	for _, key := range []string{"", "unknown", "COMMUTER", "Retail ", "shopping-mall"} {
		dist := Distribution(models.TrafficProfile(key))
		if len(dist) != 24 {
			t.Fatalf("%q: expected 24 entries", key)
		}
		switch models.ParseProfile(key) {
		case models.ProfileCommuter:
			if dist != commuter {
				t.Errorf("%q: expected commuter fallback curve", key)
			}
		}
	}

	// Case-insensitive match resolves to the named curve, not the fallback.
	if Distribution("RETAIL") != Distribution(models.ProfileRetail) {
		t.Error("uppercase profile key did not resolve to its curve")
	}
}
