package collision

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Store struct {
	DB *gorm.DB
}

// Apply persists a non-empty filtered candidate batch for a user pair:
// find-or-create the Connection under the canonical key, append one
// SharedEvent per candidate, recompute strength from the full persisted
// set, and notify on creation. The whole apply runs in one transaction with
// the Connection row locked, which is the per-pair serialization point for
// concurrent sweeps.
//
// Candidates must be ordered by event date ascending (FilterCandidates
// output) with their A/B source refs aligned to the canonical pair order.
// Returns whether the Connection was created by this call.
func (s *Store) Apply(ctx context.Context, userAID, userBID uint64, cands []Candidate) (bool, error) {
	if len(cands) == 0 {
		return false, nil
	}
	userAID, userBID = CanonicalPair(userAID, userBID)

	created := false
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		created = false

		var conn Connection
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_a_id=? AND user_b_id=?", userAID, userBID).
			First(&conn).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			conn = Connection{
				UserAID:          userAID,
				UserBID:          userBID,
				ConnectionTypes:  unionTypes(nil, cands),
				SharedEventCount: len(cands),
				FirstSharedEvent: cands[0].EventDate,
				LastSharedEvent:  cands[len(cands)-1].EventDate,
				Strength:         0, // corrected below, same tx
			}
			if err := tx.Create(&conn).Error; err != nil {
				return err
			}
			created = true
		case err != nil:
			return err
		default:
			conn.ConnectionTypes = unionTypes(conn.ConnectionTypes, cands)
			conn.SharedEventCount += len(cands)
			if first := cands[0].EventDate; first.Before(conn.FirstSharedEvent) {
				conn.FirstSharedEvent = first
			}
			if last := cands[len(cands)-1].EventDate; last.After(conn.LastSharedEvent) {
				conn.LastSharedEvent = last
			}
		}

		// append-only; duplicates across sweeps are not deduplicated by
		// content (see DESIGN.md)
		for _, c := range cands {
			detail := json.RawMessage(`{}`)
			if c.Detail != nil {
				b, err := json.Marshal(c.Detail)
				if err != nil {
					return err
				}
				detail = b
			}
			ev := SharedEvent{
				ConnectionID:   conn.ID,
				EventType:      c.EventType,
				EventDate:      c.EventDate,
				DurationHours:  c.DurationHours,
				Location:       c.Location,
				Latitude:       c.Latitude,
				Longitude:      c.Longitude,
				UserASourceRef: c.UserASourceRef,
				UserBSourceRef: c.UserBSourceRef,
				Confidence:     c.Confidence,
				Detail:         detail,
				CreatedAt:      time.Now(),
			}
			if err := tx.Create(&ev).Error; err != nil {
				return err
			}
		}

		// recompute from source of truth, never increments
		var events []SharedEvent
		if err := tx.Where("connection_id=?", conn.ID).Find(&events).Error; err != nil {
			return err
		}
		conn.Strength = Strength(events, time.Now())
		conn.UpdatedAt = time.Now()
		if err := tx.Save(&conn).Error; err != nil {
			return err
		}

		if created {
			return (Notifier{}).NotifyCreated(tx, &conn)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func unionTypes(existing pq.StringArray, cands []Candidate) pq.StringArray {
	seen := map[string]struct{}{}
	out := make(pq.StringArray, 0, len(existing))
	for _, t := range existing {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	for _, c := range cands {
		t := string(c.EventType)
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
