package collision

import (
	"strings"

	"entwine/internal/event"
)

// Mention confidence is fixed, not derived. A post by the mentioned party
// naming the initiator is weighted higher than the reverse: self-reporting
// by the target is harder to fabricate.
const (
	confidenceAMentionsB = 0.8
	confidenceBMentionsA = 0.9
)

// DetectMutualMentions scans each user's posts for a case-insensitive match
// of the other user's email or an "@displayName" token. Every matching post
// produces its own candidate; there is no window or threshold.
func DetectMutualMentions(a, b event.Identity, postsA, postsB []event.Post) []Candidate {
	var out []Candidate

	for _, p := range postsA {
		token, ok := mentionToken(p.Text, b)
		if !ok {
			continue
		}
		out = append(out, Candidate{
			EventType:      MutualMention,
			EventDate:      p.PostedAt,
			UserASourceRef: postRef(p),
			Confidence:     confidenceAMentionsB,
			Detail: MentionDetail{
				Direction: "a_mentions_b",
				Matched:   token,
				Snippet:   snippet(p.Text, 200),
			},
		})
	}

	for _, p := range postsB {
		token, ok := mentionToken(p.Text, a)
		if !ok {
			continue
		}
		out = append(out, Candidate{
			EventType:      MutualMention,
			EventDate:      p.PostedAt,
			UserBSourceRef: postRef(p),
			Confidence:     confidenceBMentionsA,
			Detail: MentionDetail{
				Direction: "b_mentions_a",
				Matched:   token,
				Snippet:   snippet(p.Text, 200),
			},
		})
	}

	return out
}

// mentionToken reports whether text names the given user, returning the
// token that matched.
func mentionToken(text string, who event.Identity) (string, bool) {
	lower := strings.ToLower(text)

	if email := strings.ToLower(strings.TrimSpace(who.Email)); email != "" {
		if strings.Contains(lower, email) {
			return email, true
		}
	}

	if name := strings.ToLower(strings.TrimSpace(who.DisplayName)); name != "" {
		handle := "@" + name
		if strings.Contains(lower, handle) {
			return handle, true
		}
	}

	return "", false
}
