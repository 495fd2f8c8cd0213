package collision

import (
	"context"
	"time"
)

// GraphEdge is one edge of a user's connection graph: the peer plus the
// aggregate evidence between them.
type GraphEdge struct {
	PeerID           uint64    `json:"peer_id"`
	Strength         float64   `json:"strength"`
	SharedEventCount int       `json:"shared_event_count"`
	ConnectionTypes  []string  `json:"connection_types"`
	FirstSharedEvent time.Time `json:"first_shared_event"`
	LastSharedEvent  time.Time `json:"last_shared_event"`
}

// ConnectionGraph returns the visible connections touching userID, strongest
// first.
func (s *Store) ConnectionGraph(ctx context.Context, userID uint64) ([]GraphEdge, error) {
	var conns []Connection
	if err := s.DB.WithContext(ctx).
		Where("hidden = false AND (user_a_id = ? OR user_b_id = ?)", userID, userID).
		Order("strength desc").
		Find(&conns).Error; err != nil {
		return nil, err
	}

	out := make([]GraphEdge, 0, len(conns))
	for _, c := range conns {
		peer := c.UserAID
		if peer == userID {
			peer = c.UserBID
		}
		out = append(out, GraphEdge{
			PeerID:           peer,
			Strength:         c.Strength,
			SharedEventCount: c.SharedEventCount,
			ConnectionTypes:  []string(c.ConnectionTypes),
			FirstSharedEvent: c.FirstSharedEvent,
			LastSharedEvent:  c.LastSharedEvent,
		})
	}
	return out, nil
}

// SharedEventsBetween returns the persisted evidence between two users,
// newest first. Lookup direction does not matter.
func (s *Store) SharedEventsBetween(ctx context.Context, u1, u2 uint64) ([]SharedEvent, error) {
	a, b := CanonicalPair(u1, u2)

	var conn Connection
	err := s.DB.WithContext(ctx).
		Where("user_a_id=? AND user_b_id=? AND hidden = false", a, b).
		First(&conn).Error
	if err != nil {
		return nil, err
	}

	var events []SharedEvent
	err = s.DB.WithContext(ctx).
		Where("connection_id=?", conn.ID).
		Order("event_date desc").
		Find(&events).Error
	return events, err
}
