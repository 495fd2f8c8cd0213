package collision

import (
	"context"
	"sync"
	"time"

	"entwine/internal/logger"

	"github.com/google/uuid"
)

type SchedulerState string

const (
	StateIdle    SchedulerState = "IDLE"
	StateRunning SchedulerState = "RUNNING"
)

// SweepResult summarizes the last completed sweep for the status query.
type SweepResult struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"` // "full" or "incremental"
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Pairs      int       `json:"pairs"`
	Collisions int       `json:"collisions"`
	Failures   int       `json:"failures"`
}

// Scheduler owns the sweep triggers and the single-flight state. At most one
// sweep runs per process; an overlapping trigger is logged and dropped, not
// queued. This guards in-process overlap only — across instances the store's
// per-pair transaction is the safety net.
type Scheduler struct {
	Engine *Engine
	Data   DataAccess
	Log    *logger.Logger

	FullInterval        time.Duration
	IncrementalInterval time.Duration
	IncrementalWindow   time.Duration

	mu    sync.Mutex
	state SchedulerState
	last  *SweepResult
}

// Run drives both sweep tickers until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	full := time.NewTicker(s.FullInterval)
	defer full.Stop()
	incr := time.NewTicker(s.IncrementalInterval)
	defer incr.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-full.C:
			s.RunFullSweep(ctx)
		case <-incr.C:
			s.RunIncrementalSweep(ctx)
		}
	}
}

// Status returns the current state and the last finished sweep, if any.
func (s *Scheduler) Status() (SchedulerState, *SweepResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == "" {
		return StateIdle, s.last
	}
	return s.state, s.last
}

// RunFullSweep evaluates every opted-in pair.
func (s *Scheduler) RunFullSweep(ctx context.Context) {
	if !s.tryAcquire("full") {
		return
	}
	defer s.release()

	users, err := s.Data.GetOptedInUsers(ctx)
	if err != nil {
		s.Log.Error("full sweep: listing users", "err", err)
		return
	}
	s.sweep(ctx, "full", allPairs(users))
}

// RunIncrementalSweep evaluates pairs touching users active within the
// trailing window, against the whole opted-in population.
func (s *Scheduler) RunIncrementalSweep(ctx context.Context) {
	if !s.tryAcquire("incremental") {
		return
	}
	defer s.release()

	since := time.Now().Add(-s.IncrementalWindow)
	recent, err := s.Data.GetRecentlyActiveUsers(ctx, since)
	if err != nil {
		s.Log.Error("incremental sweep: listing recent users", "err", err)
		return
	}
	if len(recent) == 0 {
		return
	}
	all, err := s.Data.GetOptedInUsers(ctx)
	if err != nil {
		s.Log.Error("incremental sweep: listing users", "err", err)
		return
	}
	s.sweep(ctx, "incremental", pairsTouching(recent, all))
}

func (s *Scheduler) tryAcquire(kind string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateRunning {
		s.Log.Info("sweep already running, trigger dropped", "kind", kind)
		return false
	}
	s.state = StateRunning
	return true
}

func (s *Scheduler) release() {
	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()
}

// sweep processes each pair independently. A failing pair is logged and
// skipped; it never aborts the run.
func (s *Scheduler) sweep(ctx context.Context, kind string, pairs [][2]uint64) {
	res := SweepResult{
		ID:        uuid.NewString(),
		Kind:      kind,
		StartedAt: time.Now(),
		Pairs:     len(pairs),
	}
	s.Log.Info("sweep started", "sweep_id", res.ID, "kind", kind, "pairs", len(pairs))

	for _, p := range pairs {
		wrote, err := s.Engine.ProcessPair(ctx, p[0], p[1])
		if err != nil {
			res.Failures++
			s.Log.Error("sweep pair failed",
				"sweep_id", res.ID, "user_a", p[0], "user_b", p[1], "err", err)
			continue
		}
		if wrote {
			res.Collisions++
		}
	}

	res.FinishedAt = time.Now()
	s.Log.Info("sweep finished",
		"sweep_id", res.ID, "kind", kind,
		"collisions", res.Collisions, "failures", res.Failures)

	s.mu.Lock()
	s.last = &res
	s.mu.Unlock()
}

func allPairs(users []uint64) [][2]uint64 {
	var out [][2]uint64
	for i := 0; i < len(users); i++ {
		for j := i + 1; j < len(users); j++ {
			out = append(out, [2]uint64{users[i], users[j]})
		}
	}
	return out
}

// pairsTouching returns deduplicated canonical pairs with at least one side
// in the recent set.
func pairsTouching(recent, all []uint64) [][2]uint64 {
	seen := map[[2]uint64]struct{}{}
	var out [][2]uint64
	for _, r := range recent {
		for _, u := range all {
			if r == u {
				continue
			}
			a, b := CanonicalPair(r, u)
			key := [2]uint64{a, b}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, key)
		}
	}
	return out
}
