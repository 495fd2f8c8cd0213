package collision

import (
	"context"
	"fmt"
	"time"

	"entwine/internal/event"
	"entwine/internal/logger"
)

// DataAccess is the slice of the data layer the engine consumes. The engine
// never talks to third-party platforms; it reads already-synced records.
type DataAccess interface {
	GetUserEventData(ctx context.Context, userID uint64) (event.UserEventData, error)
	GetIdentity(ctx context.Context, userID uint64) (event.Identity, error)
	GetOptedInUsers(ctx context.Context) ([]uint64, error)
	GetRecentlyActiveUsers(ctx context.Context, since time.Time) ([]uint64, error)
}

// ConnectionWriter persists a filtered candidate batch for a pair.
type ConnectionWriter interface {
	Apply(ctx context.Context, userAID, userBID uint64, cands []Candidate) (bool, error)
}

// Engine is the pairwise matcher: detectors, filter, writer, glued together
// per pair.
type Engine struct {
	Data  DataAccess
	Store ConnectionWriter
	Log   *logger.Logger

	TemporalWindow      time.Duration
	SpatialRadiusMeters float64
	MinConfidence       float64
}

// ProcessPair runs the full pipeline for one user pair. The pair is
// canonicalized up front so detector A/B sides line up with the stored
// Connection row regardless of argument order. An ineligible pair (either
// side opted out) and a pair with no qualifying evidence are both silent
// no-ops. Returns whether anything was persisted.
func (e *Engine) ProcessPair(ctx context.Context, u1, u2 uint64) (bool, error) {
	if u1 == u2 {
		return false, nil
	}
	a, b := CanonicalPair(u1, u2)

	idA, err := e.Data.GetIdentity(ctx, a)
	if err != nil {
		return false, fmt.Errorf("identity %d: %w", a, err)
	}
	idB, err := e.Data.GetIdentity(ctx, b)
	if err != nil {
		return false, fmt.Errorf("identity %d: %w", b, err)
	}
	if !idA.CollisionDetectionEnabled || !idB.CollisionDetectionEnabled {
		return false, nil
	}

	dataA, err := e.Data.GetUserEventData(ctx, a)
	if err != nil {
		return false, fmt.Errorf("event data %d: %w", a, err)
	}
	dataB, err := e.Data.GetUserEventData(ctx, b)
	if err != nil {
		return false, fmt.Errorf("event data %d: %w", b, err)
	}

	var cands []Candidate
	cands = append(cands, DetectTemporalOverlap(e.TemporalWindow, dataA.Posts, dataB.Posts)...)
	cands = append(cands, DetectSpatialOverlap(e.SpatialRadiusMeters, dataA.Media, dataB.Media)...)
	cands = append(cands, DetectMutualMentions(idA, idB, dataA.Posts, dataB.Posts)...)

	cands = FilterCandidates(e.MinConfidence, cands)
	if len(cands) == 0 {
		return false, nil
	}

	created, err := e.Store.Apply(ctx, a, b, cands)
	if err != nil {
		return false, fmt.Errorf("apply pair %d-%d: %w", a, b, err)
	}

	e.Log.Debug("pair evidence persisted",
		"user_a", a, "user_b", b,
		"candidates", len(cands), "connection_created", created)
	return true, nil
}

// DetectForUser is the synchronous manual trigger: one user against every
// other opted-in user. Returns the number of pairs that produced a
// connection write. Unlike sweep processing, errors propagate to the caller.
func (e *Engine) DetectForUser(ctx context.Context, userID uint64) (int, error) {
	id, err := e.Data.GetIdentity(ctx, userID)
	if err != nil {
		return 0, err
	}
	if !id.CollisionDetectionEnabled {
		return 0, nil
	}

	others, err := e.Data.GetOptedInUsers(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, other := range others {
		if other == userID {
			continue
		}
		wrote, err := e.ProcessPair(ctx, userID, other)
		if err != nil {
			return count, err
		}
		if wrote {
			count++
		}
	}
	return count, nil
}
