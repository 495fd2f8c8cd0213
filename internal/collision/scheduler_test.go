package collision

import (
	"context"
	"errors"
	"testing"
	"time"

	"entwine/internal/event"
	"entwine/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(data *fakeData, writer *fakeWriter) *Scheduler {
	return &Scheduler{
		Engine: newTestEngine(data, writer),
		Data:   data,
		Log:    logger.NewNop(),

		FullInterval:        time.Hour,
		IncrementalInterval: time.Hour,
		IncrementalWindow:   24 * time.Hour,
	}
}

func TestScheduler_StatusInitiallyIdle(t *testing.T) {
	s := newTestScheduler(&fakeData{}, &fakeWriter{})

	state, last := s.Status()
	assert.Equal(t, StateIdle, state)
	assert.Nil(t, last)
}

func TestScheduler_OverlappingTriggerDropped(t *testing.T) {
	data := concertData()
	data.gate = make(chan struct{})
	writer := &fakeWriter{}
	s := newTestScheduler(data, writer)

	done := make(chan struct{})
	go func() {
		s.RunFullSweep(context.Background())
		close(done)
	}()

	require.Eventually(t, func() bool {
		state, _ := s.Status()
		return state == StateRunning
	}, time.Second, 5*time.Millisecond)

	// second trigger while running: dropped, not queued
	s.RunFullSweep(context.Background())

	close(data.gate)
	<-done

	state, last := s.Status()
	assert.Equal(t, StateIdle, state)
	require.NotNil(t, last)
	assert.Equal(t, "full", last.Kind)

	data.mu.Lock()
	calls := data.optedInCalls
	data.mu.Unlock()
	assert.Equal(t, 1, calls, "dropped trigger must not list users")
}

func TestScheduler_FullSweepProcessesAllPairs(t *testing.T) {
	data := concertData()
	data.identities[3] = identity(3, "carol", true)
	data.data[3] = event.UserEventData{}
	data.optedIn = []uint64{1, 2, 3}
	writer := &fakeWriter{}
	s := newTestScheduler(data, writer)

	s.RunFullSweep(context.Background())

	_, last := s.Status()
	require.NotNil(t, last)
	assert.Equal(t, 3, last.Pairs) // (1,2) (1,3) (2,3)
	assert.Equal(t, 1, last.Collisions)
	assert.Equal(t, 0, last.Failures)
}

func TestScheduler_PairFailureDoesNotAbortSweep(t *testing.T) {
	data := concertData()
	data.identities[3] = identity(3, "carol", true)
	data.data[3] = data.data[2] // carol shares bob's events, so every pair collides
	data.optedIn = []uint64{1, 2, 3}

	writer := &fakeWriter{
		errOn: map[[2]uint64]error{{1, 2}: errors.New("write failed")},
	}
	s := newTestScheduler(data, writer)

	s.RunFullSweep(context.Background())

	_, last := s.Status()
	require.NotNil(t, last)
	assert.Equal(t, 3, last.Pairs)
	assert.Equal(t, 1, last.Failures)
	assert.Equal(t, 2, last.Collisions) // (1,3) and (2,3) still processed
}

func TestScheduler_IncrementalSweepPairsRecentAgainstAll(t *testing.T) {
	data := concertData()
	data.identities[3] = identity(3, "carol", true)
	data.data[3] = event.UserEventData{}
	data.optedIn = []uint64{1, 2, 3}
	data.recent = []uint64{2}
	writer := &fakeWriter{}
	s := newTestScheduler(data, writer)

	s.RunIncrementalSweep(context.Background())

	_, last := s.Status()
	require.NotNil(t, last)
	assert.Equal(t, "incremental", last.Kind)
	assert.Equal(t, 2, last.Pairs) // (1,2) and (2,3)
	assert.Equal(t, 1, last.Collisions)
}

func TestScheduler_IncrementalSweepNoRecentUsersIsNoop(t *testing.T) {
	data := concertData()
	data.recent = nil
	s := newTestScheduler(data, &fakeWriter{})

	s.RunIncrementalSweep(context.Background())

	state, last := s.Status()
	assert.Equal(t, StateIdle, state)
	assert.Nil(t, last)
}
