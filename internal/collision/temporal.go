package collision

import (
	"fmt"
	"time"

	"entwine/internal/event"
)

// DetectTemporalOverlap emits a candidate for every post pair whose
// timestamps differ by at most window. Confidence decays linearly: 1.0 at
// zero delta, exactly 0.0 at the window boundary (inclusive).
//
// Pairwise O(n*m); per-user collections are small enough in practice that
// bucketing by time has not been needed.
func DetectTemporalOverlap(window time.Duration, postsA, postsB []event.Post) []Candidate {
	var out []Candidate

	for _, pa := range postsA {
		for _, pb := range postsB {
			delta := pa.PostedAt.Sub(pb.PostedAt)
			if delta < 0 {
				delta = -delta
			}
			if delta > window {
				continue
			}

			hours := delta.Hours()
			out = append(out, Candidate{
				EventType:      TemporalOverlap,
				EventDate:      pa.PostedAt,
				DurationHours:  &hours,
				UserASourceRef: postRef(pa),
				UserBSourceRef: postRef(pb),
				Confidence:     1 - float64(delta)/float64(window),
				Detail: TemporalDetail{
					SnippetA: snippet(pa.Text, 200),
					SnippetB: snippet(pb.Text, 200),
				},
			})
		}
	}

	return out
}

func postRef(p event.Post) string {
	return fmt.Sprintf("post:%s:%d", p.Provider, p.ID)
}
