package collision

import (
	"fmt"

	"entwine/internal/event"
)

// DetectSpatialOverlap emits a candidate for every media pair within
// radiusMeters of each other. Confidence decays linearly with distance,
// boundary inclusive. Items without coordinates are skipped, never treated
// as zero distance. User A's item is authoritative for the event date,
// coordinates, and place label; B's label is the fallback when A's is empty.
func DetectSpatialOverlap(radiusMeters float64, mediaA, mediaB []event.MediaItem) []Candidate {
	var out []Candidate

	for _, ma := range mediaA {
		if ma.Latitude == nil || ma.Longitude == nil {
			continue
		}
		for _, mb := range mediaB {
			if mb.Latitude == nil || mb.Longitude == nil {
				continue
			}

			d := HaversineMeters(*ma.Latitude, *ma.Longitude, *mb.Latitude, *mb.Longitude)
			if d > radiusMeters {
				continue
			}

			lat, lon := *ma.Latitude, *ma.Longitude
			out = append(out, Candidate{
				EventType:      SpatialOverlap,
				EventDate:      ma.TakenAt,
				Location:       locationName(ma, mb),
				Latitude:       &lat,
				Longitude:      &lon,
				UserASourceRef: mediaRef(ma),
				UserBSourceRef: mediaRef(mb),
				Confidence:     1 - d/radiusMeters,
				Detail:         SpatialDetail{DistanceMeters: d},
			})
		}
	}

	return out
}

func mediaRef(m event.MediaItem) string {
	return fmt.Sprintf("media:%d", m.ID)
}

// locationName prefers user A's place label, falling back to B's.
func locationName(ma, mb event.MediaItem) *string {
	name := ma.LocationName
	if name == "" {
		name = mb.LocationName
	}
	if name == "" {
		return nil
	}
	return &name
}
