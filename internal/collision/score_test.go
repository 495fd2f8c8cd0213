package collision

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func sharedEvent(typ EventType, at time.Time, conf float64) SharedEvent {
	return SharedEvent{EventType: typ, EventDate: at, Confidence: conf}
}

func TestStrength_EmptySetIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Strength(nil, time.Now()))
}

func TestStrength_FreshTwoEventConnection(t *testing.T) {
	now := time.Date(2024, 5, 1, 22, 0, 0, 0, time.UTC)
	events := []SharedEvent{
		sharedEvent(TemporalOverlap, now, 0.6),
		sharedEvent(SpatialOverlap, now, 0.8),
	}

	// frequency 2*4=8, recency 30 (same day), diversity 2*6.67=13.34,
	// confidence 0.7*10=7
	assert.InDelta(t, 58.34, Strength(events, now), 0.001)
}

func TestStrength_FrequencyCapsAt40(t *testing.T) {
	now := time.Now()
	var events []SharedEvent
	for i := 0; i < 25; i++ {
		events = append(events, sharedEvent(TemporalOverlap, now, 1.0))
	}

	// 40 + 30 + 6.67 + 10
	assert.InDelta(t, 86.67, Strength(events, now), 0.001)
}

func TestStrength_RecencyDecaysAndFloorsAtZero(t *testing.T) {
	last := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []SharedEvent{sharedEvent(TemporalOverlap, last, 1.0)}

	// 100 days later: recency 30 - 10 = 20
	hundredDays := last.Add(100 * 24 * time.Hour)
	assert.InDelta(t, 4+20+6.67+10, Strength(events, hundredDays), 0.001)

	// 400 days later: recency floored at 0
	fourHundredDays := last.Add(400 * 24 * time.Hour)
	assert.InDelta(t, 4+0+6.67+10, Strength(events, fourHundredDays), 0.001)
}

func TestStrength_DiversityCountsUniqueTypes(t *testing.T) {
	now := time.Now()
	events := []SharedEvent{
		sharedEvent(TemporalOverlap, now, 1.0),
		sharedEvent(TemporalOverlap, now, 1.0),
		sharedEvent(SpatialOverlap, now, 1.0),
		sharedEvent(MutualMention, now, 1.0),
	}

	// 16 + 30 + 3*6.67 + 10
	assert.InDelta(t, 76.01, Strength(events, now), 0.001)
}

func TestStrength_OrderIndependent(t *testing.T) {
	now := time.Now()
	events := []SharedEvent{
		sharedEvent(TemporalOverlap, now.Add(-72*time.Hour), 0.4),
		sharedEvent(SpatialOverlap, now.Add(-48*time.Hour), 0.9),
		sharedEvent(MutualMention, now.Add(-24*time.Hour), 0.8),
		sharedEvent(TemporalOverlap, now, 0.7),
	}
	want := Strength(events, now)

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]SharedEvent, len(events))
		copy(shuffled, events)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})
		assert.Equal(t, want, Strength(shuffled, now))
	}
}
