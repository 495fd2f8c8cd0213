package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineMeters_ZeroDistance(t *testing.T) {
	d := HaversineMeters(40.7128, -74.0060, 40.7128, -74.0060)
	assert.Equal(t, 0.0, d)
}

func TestHaversineMeters_NearbyPoints(t *testing.T) {
	// adjacent points in lower Manhattan, roughly 14m apart
	d := HaversineMeters(40.7128, -74.0060, 40.7129, -74.0061)
	assert.InDelta(t, 14, d, 1)
}

func TestHaversineMeters_Symmetric(t *testing.T) {
	d1 := HaversineMeters(51.5007, -0.1246, 48.8584, 2.2945)
	d2 := HaversineMeters(48.8584, 2.2945, 51.5007, -0.1246)
	assert.Equal(t, d1, d2)

	// London to Paris, ~334km
	assert.InDelta(t, 334_000, d1, 5_000)
}
