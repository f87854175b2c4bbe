// Package timetrack runs the client side of a personal timer: a local
// one-second tick for display, reconciled against the authoritative remote
// record. The remote holds the committed total in elapsedSeconds and the start
// of the running interval in startTime; the runtime folds the live interval
// into the total on stop and persists the result.
package timetrack

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lukasw/clubsite/internal/app/models"
	"github.com/lukasw/clubsite/internal/pkg/apperrors"
)

// Remote is the persistence side of the runtime.
type Remote interface {
	GetTimer(ctx context.Context, id int64) (*models.Timer, error)
	UpdateTimer(ctx context.Context, timer models.Timer) error
}

// Runtime drives a single timer. It ticks once per second while running so the
// caller can refresh its display, and guarantees at most one live ticker: every
// stop, restart and Close cancels the previous tick goroutine before anything
// else happens, and a goroutine that was already cancelled ignores late ticks.
type Runtime struct {
	remote Remote
	clock  Clock
	onTick func(totalSeconds int64)

	mu      sync.Mutex
	timer   models.Timer
	value   int64 // seconds of the live interval, display only
	removed bool
	closed  bool
	cancel  chan struct{}
}

// NewRuntime creates a runtime over an already-fetched timer. onTick is called
// once per second with the displayed total while the timer runs; it may be nil.
func NewRuntime(remote Remote, clock Clock, timer models.Timer, onTick func(totalSeconds int64)) *Runtime {
	if clock == nil {
		clock = SystemClock()
	}
	r := &Runtime{
		remote: remote,
		clock:  clock,
		onTick: onTick,
		timer:  timer,
	}
	if timer.StartTime != nil {
		r.value = int64(clock.Now().Sub(*timer.StartTime).Seconds())
		r.startTickLocked()
	}
	return r
}

// Timer returns a copy of the current timer state.
func (r *Runtime) Timer() models.Timer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer
}

// Running reports whether an interval is currently open.
func (r *Runtime) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer.Running()
}

// Removed reports whether a resync found the timer deleted remotely.
func (r *Runtime) Removed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.removed
}

// TotalSeconds returns the displayed total: the committed count plus the live
// interval when running.
func (r *Runtime) TotalSeconds() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.timer.ElapsedSeconds + r.value
}

// Toggle starts a stopped timer or stops a running one.
//
// Starting resyncs against the remote first, so a timer already started
// elsewhere is picked up instead of double-started. Stopping folds the live
// interval into elapsedSeconds, clears startTime and persists the result; on
// persistence failure the local state is restored so the caller can retry.
func (r *Runtime) Toggle(ctx context.Context) error {
	r.mu.Lock()
	if r.closed || r.removed {
		r.mu.Unlock()
		return nil
	}

	if !r.timer.Running() {
		r.mu.Unlock()
		if err := r.Resync(ctx); err != nil {
			return err
		}

		r.mu.Lock()
		defer r.mu.Unlock()
		if r.closed || r.removed || r.timer.Running() {
			return nil
		}
		now := r.clock.Now()
		r.timer.StartTime = &now
		r.value = 0
		r.startTickLocked()
		return nil
	}

	// Stop path. The fold happens under the same lock hold as the running
	// check: a concurrent Resync or DiscardInterval must not clear startTime
	// between the two.
	r.stopTickLocked()
	prev := r.timer
	now := r.clock.Now()
	r.timer.ElapsedSeconds += int64(now.Sub(*r.timer.StartTime).Seconds())
	r.timer.StartTime = nil
	r.value = 0
	updated := r.timer
	r.mu.Unlock()

	if err := r.remote.UpdateTimer(ctx, updated); err != nil {
		r.mu.Lock()
		if !r.closed && !r.timer.Running() {
			r.timer = prev
			r.value = int64(r.clock.Now().Sub(*prev.StartTime).Seconds())
			r.startTickLocked()
		}
		r.mu.Unlock()
		return err
	}
	return nil
}

// Resync refetches the timer and aligns local state with it. A timer that was
// deleted remotely is flagged as removed rather than treated as an error.
func (r *Runtime) Resync(ctx context.Context) error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	id := r.timer.ID
	r.mu.Unlock()

	remote, err := r.remote.GetTimer(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrTimerNotFound) {
			r.mu.Lock()
			r.stopTickLocked()
			r.removed = true
			r.mu.Unlock()
			return nil
		}
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil
	}
	r.stopTickLocked()
	r.timer = *remote
	if r.timer.StartTime != nil {
		r.value = int64(r.clock.Now().Sub(*r.timer.StartTime).Seconds())
		r.startTickLocked()
	} else {
		r.value = 0
	}
	return nil
}

// DiscardInterval throws away the current running interval without committing
// it: the tick stops, the displayed value resets and the cleared startTime is
// persisted. elapsedSeconds keeps its committed value.
func (r *Runtime) DiscardInterval(ctx context.Context) error {
	r.mu.Lock()
	if r.closed || !r.timer.Running() {
		r.mu.Unlock()
		return nil
	}
	r.stopTickLocked()
	r.timer.StartTime = nil
	r.value = 0
	updated := r.timer
	r.mu.Unlock()

	return r.remote.UpdateTimer(ctx, updated)
}

// Close stops any running tick goroutine. The runtime ignores everything after
// Close; ticks already in flight are dropped.
func (r *Runtime) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopTickLocked()
	r.closed = true
}

func (r *Runtime) startTickLocked() {
	r.stopTickLocked()

	done := make(chan struct{})
	r.cancel = done
	ticker := r.clock.NewTicker(time.Second)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C():
				r.mu.Lock()
				// A cancelled goroutine may still receive one buffered tick;
				// it must not touch state that now belongs to a successor.
				if r.closed || r.cancel != done {
					r.mu.Unlock()
					return
				}
				r.value++
				total := r.timer.ElapsedSeconds + r.value
				cb := r.onTick
				r.mu.Unlock()

				if cb != nil {
					cb(total)
				}
			}
		}
	}()
}

func (r *Runtime) stopTickLocked() {
	if r.cancel != nil {
		close(r.cancel)
		r.cancel = nil
	}
}
