package collision

import "sort"

// FilterCandidates drops candidates below minConfidence and orders the rest
// by event date ascending, so the first/last elements line up with the
// connection's first/last shared event. An empty result means the pair must
// not be touched at all: absence of evidence never creates a record.
func FilterCandidates(minConfidence float64, cands []Candidate) []Candidate {
	out := make([]Candidate, 0, len(cands))
	for _, c := range cands {
		if c.Confidence < minConfidence {
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 {
		return nil
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].EventDate.Before(out[j].EventDate)
	})
	return out
}
