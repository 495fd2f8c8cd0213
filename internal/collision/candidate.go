package collision

import "time"

type EventType string

const (
	TemporalOverlap EventType = "TEMPORAL_OVERLAP"
	SpatialOverlap  EventType = "SPATIAL_OVERLAP"
	MutualMention   EventType = "MUTUAL_MENTION"
)

// Candidate is one unpersisted piece of evidence that two users share an
// event. Confidence is fully determined by the detector's inputs; identical
// inputs always yield identical candidates.
type Candidate struct {
	EventType     EventType
	EventDate     time.Time
	DurationHours *float64
	Location      *string
	Latitude      *float64
	Longitude     *float64

	// Source refs identify the raw records the evidence came from,
	// "post:<provider>:<id>" or "media:<id>". A mention has a ref only on
	// the side whose post matched.
	UserASourceRef string
	UserBSourceRef string

	Confidence float64 // [0,1]
	Detail     Detail
}

// Detail is the per-type evidence payload. One concrete type per EventType,
// so detector output stays statically checkable; the EventType column is the
// tag at rest.
type Detail interface {
	isDetail()
}

type TemporalDetail struct {
	SnippetA string `json:"snippet_a"`
	SnippetB string `json:"snippet_b"`
}

type SpatialDetail struct {
	DistanceMeters float64 `json:"distance_meters"`
}

type MentionDetail struct {
	Direction string `json:"direction"` // "a_mentions_b" or "b_mentions_a"
	Matched   string `json:"matched"`   // the token that matched
	Snippet   string `json:"snippet"`
}

func (TemporalDetail) isDetail() {}
func (SpatialDetail) isDetail()  {}
func (MentionDetail) isDetail()  {}

// snippet truncates free text for display metadata.
func snippet(text string, max int) string {
	r := []rune(text)
	if len(r) <= max {
		return text
	}
	return string(r[:max])
}
