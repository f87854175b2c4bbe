package timetrack

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukasw/clubsite/internal/app/models"
	"github.com/lukasw/clubsite/internal/pkg/apperrors"
)

// fakeClock advances only when told to and hands out tickers the test fires
// manually.
type fakeClock struct {
	mu   sync.Mutex
	now  time.Time
	last *fakeTicker
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func (c *fakeClock) NewTicker(_ time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = &fakeTicker{ch: make(chan time.Time, 1)}
	return c.last
}

type fakeTicker struct {
	ch chan time.Time
}

func (t *fakeTicker) C() <-chan time.Time { return t.ch }
func (t *fakeTicker) Stop()               {}

// fakeRemote serves one timer and records updates.
type fakeRemote struct {
	mu      sync.Mutex
	timer   *models.Timer
	updates []models.Timer
	err     error
}

func (f *fakeRemote) GetTimer(_ context.Context, id int64) (*models.Timer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	if f.timer == nil || f.timer.ID != id {
		return nil, apperrors.ErrTimerNotFound
	}
	t := *f.timer
	return &t, nil
}

func (f *fakeRemote) UpdateTimer(_ context.Context, timer models.Timer) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.updates = append(f.updates, timer)
	t := timer
	f.timer = &t
	return nil
}

func stoppedTimer(elapsed int64) models.Timer {
	return models.Timer{ID: 1, UserID: 5, Name: "Piano practice", ElapsedSeconds: elapsed}
}

func TestToggleFoldsRunningIntervalIntoElapsed(t *testing.T) {
	clock := newFakeClock()
	remote := &fakeRemote{}
	timer := stoppedTimer(100)
	remote.timer = &timer

	rt := NewRuntime(remote, clock, timer, nil)
	defer rt.Close()

	require.NoError(t, rt.Toggle(context.Background()))
	require.True(t, rt.Running())

	clock.Advance(30 * time.Second)

	require.NoError(t, rt.Toggle(context.Background()))

	assert.False(t, rt.Running())
	assert.Equal(t, int64(130), rt.Timer().ElapsedSeconds)
	assert.Nil(t, rt.Timer().StartTime)

	require.Len(t, remote.updates, 1)
	assert.Equal(t, int64(130), remote.updates[0].ElapsedSeconds)
	assert.Nil(t, remote.updates[0].StartTime)
}

func TestToggleStartResyncsFirst(t *testing.T) {
	clock := newFakeClock()
	remote := &fakeRemote{}

	// The remote already carries more committed time than the stale local copy.
	fresh := stoppedTimer(250)
	remote.timer = &fresh

	rt := NewRuntime(remote, clock, stoppedTimer(100), nil)
	defer rt.Close()

	require.NoError(t, rt.Toggle(context.Background()))

	assert.True(t, rt.Running())
	assert.Equal(t, int64(250), rt.Timer().ElapsedSeconds)
}

func TestToggleStartPicksUpRemoteRunningState(t *testing.T) {
	clock := newFakeClock()
	started := clock.Now().Add(-20 * time.Second)
	running := stoppedTimer(100)
	running.StartTime = &started
	remote := &fakeRemote{timer: &running}

	rt := NewRuntime(remote, clock, stoppedTimer(100), nil)
	defer rt.Close()

	// Another client already started the timer; toggle adopts that interval
	// instead of opening a second one.
	require.NoError(t, rt.Toggle(context.Background()))

	assert.True(t, rt.Running())
	assert.Equal(t, int64(120), rt.TotalSeconds())
	assert.Empty(t, remote.updates)
}

func TestToggleStopFailureRestoresRunningState(t *testing.T) {
	clock := newFakeClock()
	remote := &fakeRemote{}
	timer := stoppedTimer(100)
	remote.timer = &timer

	rt := NewRuntime(remote, clock, timer, nil)
	defer rt.Close()

	require.NoError(t, rt.Toggle(context.Background()))
	clock.Advance(10 * time.Second)

	remote.err = errors.New("persistence unavailable")
	require.Error(t, rt.Toggle(context.Background()))

	assert.True(t, rt.Running())
	assert.Equal(t, int64(100), rt.Timer().ElapsedSeconds)
	assert.Equal(t, int64(110), rt.TotalSeconds())
}

func TestResyncMarksDeletedTimerRemoved(t *testing.T) {
	clock := newFakeClock()
	remote := &fakeRemote{}

	rt := NewRuntime(remote, clock, stoppedTimer(100), nil)
	defer rt.Close()

	require.NoError(t, rt.Resync(context.Background()))

	assert.True(t, rt.Removed())
	assert.NoError(t, rt.Toggle(context.Background()))
	assert.False(t, rt.Running())
}

func TestDiscardIntervalKeepsCommittedTotal(t *testing.T) {
	clock := newFakeClock()
	remote := &fakeRemote{}
	timer := stoppedTimer(100)
	remote.timer = &timer

	rt := NewRuntime(remote, clock, timer, nil)
	defer rt.Close()

	require.NoError(t, rt.Toggle(context.Background()))
	clock.Advance(45 * time.Second)

	require.NoError(t, rt.DiscardInterval(context.Background()))

	assert.False(t, rt.Running())
	assert.Equal(t, int64(100), rt.Timer().ElapsedSeconds)
	assert.Equal(t, int64(100), rt.TotalSeconds())

	require.Len(t, remote.updates, 1)
	assert.Equal(t, int64(100), remote.updates[0].ElapsedSeconds)
	assert.Nil(t, remote.updates[0].StartTime)
}

func TestConcurrentStopAndDiscard(t *testing.T) {
	clock := newFakeClock()
	remote := &fakeRemote{}
	timer := stoppedTimer(0)
	remote.timer = &timer

	rt := NewRuntime(remote, clock, timer, nil)
	defer rt.Close()

	// Stop and discard racing on a running timer must never observe a
	// half-cleared startTime; whichever wins, the other degrades to a no-op
	// or a fresh start.
	for i := 0; i < 100; i++ {
		if !rt.Running() {
			require.NoError(t, rt.Toggle(context.Background()))
		}
		clock.Advance(time.Second)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = rt.Toggle(context.Background())
		}()
		go func() {
			defer wg.Done()
			_ = rt.DiscardInterval(context.Background())
		}()
		wg.Wait()
	}

	if rt.Running() {
		require.NoError(t, rt.Toggle(context.Background()))
	}
	assert.False(t, rt.Running())
	assert.Nil(t, rt.Timer().StartTime)
}

func TestTicksDriveTheDisplayCallback(t *testing.T) {
	clock := newFakeClock()
	remote := &fakeRemote{}
	timer := stoppedTimer(100)
	remote.timer = &timer

	totals := make(chan int64, 4)
	rt := NewRuntime(remote, clock, timer, func(total int64) { totals <- total })
	defer rt.Close()

	require.NoError(t, rt.Toggle(context.Background()))

	ticker := lastTicker(t, clock, rt)
	ticker.ch <- clock.Now()
	ticker.ch <- clock.Now()

	assert.Equal(t, int64(101), <-totals)
	assert.Equal(t, int64(102), <-totals)
}

func TestTickAfterCloseIsIgnored(t *testing.T) {
	clock := newFakeClock()
	remote := &fakeRemote{}
	timer := stoppedTimer(0)
	remote.timer = &timer

	ticked := make(chan int64, 1)
	rt := NewRuntime(remote, clock, timer, func(total int64) { ticked <- total })

	require.NoError(t, rt.Toggle(context.Background()))
	ticker := lastTicker(t, clock, rt)

	rt.Close()
	ticker.ch <- clock.Now()

	select {
	case total := <-ticked:
		t.Fatalf("tick delivered after close: total %d", total)
	case <-time.After(50 * time.Millisecond):
	}
}

// lastTicker digs the live fake ticker out of the runtime by starting from the
// clock side: the runtime keeps no ticker reference after handing it to the
// goroutine, so the test clock records the most recently created one instead.
func lastTicker(t *testing.T, clock *fakeClock, rt *Runtime) *fakeTicker {
	t.Helper()
	rt.mu.Lock()
	ticking := rt.cancel != nil
	rt.mu.Unlock()
	require.True(t, ticking, "runtime is not ticking")

	clock.mu.Lock()
	defer clock.mu.Unlock()
	require.NotNil(t, clock.last, "no ticker was created")
	return clock.last
}
