package collision

import (
	"math"
	"time"
)

// Strength turns a connection's accumulated shared events into a 0-100
// score. Four weighted sub-scores, each independently capped:
//
//	frequency   min(count*4, 40)
//	recency     max(30 - daysSinceLastEvent/10, 0)
//	diversity   uniqueTypes * 6.67
//	confidence  avgConfidence * 10
//
// Pure function of the event set and now; event order is irrelevant.
func Strength(events []SharedEvent, now time.Time) float64 {
	if len(events) == 0 {
		return 0
	}

	frequency := math.Min(float64(len(events))*4, 40)

	var last time.Time
	types := map[EventType]struct{}{}
	var confSum float64
	for _, e := range events {
		if e.EventDate.After(last) {
			last = e.EventDate
		}
		types[e.EventType] = struct{}{}
		confSum += e.Confidence
	}

	days := now.Sub(last).Hours() / 24
	if days < 0 {
		days = 0
	}
	recency := math.Max(30-days/10, 0)

	diversity := float64(len(types)) * 6.67

	confidence := confSum / float64(len(events)) * 10

	total := frequency + recency + diversity + confidence
	return math.Round(total*100) / 100
}
