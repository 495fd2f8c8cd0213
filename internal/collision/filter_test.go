package collision

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cand(conf float64, at time.Time) Candidate {
	return Candidate{EventType: TemporalOverlap, EventDate: at, Confidence: conf}
}

func TestFilterCandidates_DropsBelowMinimum(t *testing.T) {
	at := time.Now()
	out := FilterCandidates(0.3, []Candidate{
		cand(0.29, at),
		cand(0.3, at),
		cand(0.9, at),
	})

	require.Len(t, out, 2)
	for _, c := range out {
		assert.GreaterOrEqual(t, c.Confidence, 0.3)
	}
}

func TestFilterCandidates_EmptyResultIsNil(t *testing.T) {
	out := FilterCandidates(0.3, []Candidate{cand(0.1, time.Now())})
	assert.Nil(t, out)

	out = FilterCandidates(0.3, nil)
	assert.Nil(t, out)
}

func TestFilterCandidates_SortedByEventDate(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	out := FilterCandidates(0.3, []Candidate{
		cand(0.5, base.Add(48*time.Hour)),
		cand(0.5, base),
		cand(0.5, base.Add(24*time.Hour)),
	})

	require.Len(t, out, 3)
	assert.Equal(t, base, out[0].EventDate)
	assert.Equal(t, base.Add(24*time.Hour), out[1].EventDate)
	assert.Equal(t, base.Add(48*time.Hour), out[2].EventDate)
}
