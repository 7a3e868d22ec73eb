package optimizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestHaversineSymmetry verifies d(a,b) == d(b,a) and d(a,a) == 0.
func TestHaversineSymmetry(t *testing.T) {
	points := [][2]float64{
		{12.9716, 77.5946}, // Bengaluru
		{13.0827, 80.2707}, // Chennai
		{-33.8688, 151.2093},
		{0, 0},
	}

	for _, a := range points {
		assert.Equal(t, 0.0, HaversineKm(a[0], a[1], a[0], a[1]))
		for _, b := range points {
			ab := HaversineKm(a[0], a[1], b[0], b[1])
			ba := HaversineKm(b[0], b[1], a[0], a[1])
			assert.Equal(t, ab, ba)
		}
	}
}

// TestHaversineDegreeOfLatitude verifies one degree of latitude at the
// equator is roughly 111 km.
func TestHaversineDegreeOfLatitude(t *testing.T) {
	d := HaversineKm(0, 0, 1, 0)
	assert.InDelta(t, 111.0, d, 2.0)
}

// TestHaversineKnownDistance checks a city-scale distance against a
// precomputed value.
func TestHaversineKnownDistance(t *testing.T) {
	// Two points ~3.1 km apart in Bengaluru.
	d := HaversineKm(12.90, 77.50, 12.92, 77.52)
	assert.InDelta(t, 3.1, d, 0.1)
}
