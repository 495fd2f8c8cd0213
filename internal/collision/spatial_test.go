package collision

import (
	"testing"
	"time"

	"entwine/internal/event"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func media(id uint64, at time.Time, lat, lon float64) event.MediaItem {
	return event.MediaItem{ID: id, TakenAt: at, Latitude: &lat, Longitude: &lon}
}

func TestDetectSpatialOverlap_NearbyItems(t *testing.T) {
	at := time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)
	out := DetectSpatialOverlap(100,
		[]event.MediaItem{media(1, at, 40.7128, -74.0060)},
		[]event.MediaItem{media(2, at.Add(time.Hour), 40.7129, -74.0061)},
	)

	require.Len(t, out, 1)
	assert.Equal(t, SpatialOverlap, out[0].EventType)
	// distance ~14m over a 100m radius
	assert.InDelta(t, 0.86, out[0].Confidence, 0.01)

	// user A's item is authoritative for date and coordinates
	assert.Equal(t, at, out[0].EventDate)
	require.NotNil(t, out[0].Latitude)
	assert.Equal(t, 40.7128, *out[0].Latitude)
	assert.Equal(t, -74.0060, *out[0].Longitude)

	detail, ok := out[0].Detail.(SpatialDetail)
	require.True(t, ok)
	assert.InDelta(t, 14, detail.DistanceMeters, 1)
}

func TestDetectSpatialOverlap_BeyondRadius(t *testing.T) {
	at := time.Now()
	out := DetectSpatialOverlap(100,
		[]event.MediaItem{media(1, at, 40.7128, -74.0060)},
		[]event.MediaItem{media(2, at, 40.7228, -74.0060)}, // ~1.1km north
	)
	assert.Empty(t, out)
}

func TestDetectSpatialOverlap_MissingCoordinatesSkipped(t *testing.T) {
	at := time.Now()
	noCoords := event.MediaItem{ID: 3, TakenAt: at}

	out := DetectSpatialOverlap(100,
		[]event.MediaItem{noCoords},
		[]event.MediaItem{media(2, at, 40.7128, -74.0060)},
	)
	assert.Empty(t, out)

	out = DetectSpatialOverlap(100,
		[]event.MediaItem{media(1, at, 40.7128, -74.0060)},
		[]event.MediaItem{noCoords},
	)
	assert.Empty(t, out)
}

func TestDetectSpatialOverlap_ConfidenceMonotonicInDistance(t *testing.T) {
	at := time.Now()
	a := []event.MediaItem{media(1, at, 40.7128, -74.0060)}

	var prev float64 = 1.1
	// each step moves B a bit further north
	for i, dlat := range []float64{0, 0.0002, 0.0004, 0.0006} {
		out := DetectSpatialOverlap(100, a,
			[]event.MediaItem{media(uint64(10+i), at, 40.7128+dlat, -74.0060)})
		require.Len(t, out, 1)
		assert.Less(t, out[0].Confidence, prev)
		prev = out[0].Confidence
	}
}

func TestDetectSpatialOverlap_LocationLabelPrefersUserA(t *testing.T) {
	at := time.Now()
	ma := media(1, at, 40.7128, -74.0060)
	ma.LocationName = "Stone Street"
	mb := media(2, at, 40.7129, -74.0061)
	mb.LocationName = "Financial District"

	out := DetectSpatialOverlap(100, []event.MediaItem{ma}, []event.MediaItem{mb})
	require.Len(t, out, 1)
	require.NotNil(t, out[0].Location)
	assert.Equal(t, "Stone Street", *out[0].Location)

	// falls back to B's label when A has none
	ma.LocationName = ""
	out = DetectSpatialOverlap(100, []event.MediaItem{ma}, []event.MediaItem{mb})
	require.Len(t, out, 1)
	require.NotNil(t, out[0].Location)
	assert.Equal(t, "Financial District", *out[0].Location)
}

func TestDetectSpatialOverlap_IdenticalLocationFullConfidence(t *testing.T) {
	at := time.Now()
	out := DetectSpatialOverlap(100,
		[]event.MediaItem{media(1, at, 40.7128, -74.0060)},
		[]event.MediaItem{media(2, at, 40.7128, -74.0060)},
	)

	require.Len(t, out, 1)
	assert.Equal(t, 1.0, out[0].Confidence)
}
