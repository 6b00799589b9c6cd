package simulation

import "testing"

func TestSeededRandomDeterminism(t *testing.T) {
	for _, seed := range []int{0, 1, 42, 1000, 123456, -7} {
		a := SeededRandom(seed)
		b := SeededRandom(seed)
		if a != b {
			t.Errorf("seed %d: draws differ: %v vs %v", seed, a, b)
		}
	}
}

func TestSeededRandomRange(t *testing.T) {
	for seed := 0; seed < 10000; seed++ {
		v := SeededRandom(seed)
		if v < 0 || v >= 1 {
			t.Fatalf("seed %d: %v out of [0, 1)", seed, v)
		}
	}
}

func TestSeededRandomDispersion(t *testing.T) {
	// The hash should spread draws across the unit interval, not cluster.
	const n = 1000
	buckets := make([]int, 10)
	sum := 0.0
	for seed := 100; seed < 100+n; seed++ {
		v := SeededRandom(seed)
		buckets[int(v*10)]++
		sum += v
	}

	mean := sum / n
	if mean < 0.4 || mean > 0.6 {
		t.Errorf("mean %v outside [0.4, 0.6]", mean)
	}
	for i, count := range buckets {
		if count == 0 {
			t.Errorf("bucket %d empty, draws are clustered", i)
		}
	}
}

func TestBaseSeed(t *testing.T) {
	tests := []struct {
		assetID string
		date    string
		want    int
	}{
		// "A-B" = 65 + 45 + 66
		{"A", "B", 176},
		// "-" alone = 45
		{"", "", 45},
	}
	for _, tt := range tests {
		if got := BaseSeed(tt.assetID, tt.date); got != tt.want {
			t.Errorf("BaseSeed(%q, %q) = %d, want %d", tt.assetID, tt.date, got, tt.want)
		}
	}

	if BaseSeed("BB-001", "2025-06-16") != BaseSeed("BB-001", "2025-06-16") {
		t.Error("identical inputs produced different seeds")
	}
	if BaseSeed("BB-001", "2025-06-16") == BaseSeed("BB-002", "2025-06-16") {
		t.Error("distinct assets produced identical seeds")
	}
}
