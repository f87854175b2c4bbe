package eventsync

import (
	"context"
	"time"

	"github.com/lukasw/clubsite/internal/app/models"
)

// Source is the remote side of the reconciliation. The engine only ever reads
// from it; saving edited events back is the caller's concern.
type Source interface {
	GetSportEvents(ctx context.Context) ([]models.SportEvent, error)
}

// Engine owns the client-side sport event state: a pristine cache of the last
// fetch, the editable working copies shown to the user, and the uncommitted
// events that have no remote counterpart yet. All four collections are
// parallel within their pair: cache[i] is the baseline of events[i], and
// newEventsCache[i] the baseline of newEvents[i].
//
// The engine is not safe for concurrent use; it models the single-threaded
// view state of one client session.
type Engine struct {
	source Source

	cache  []models.SportEvent
	events []models.SportEvent

	newEvents      []models.SportEvent
	newEventsCache []models.SportEvent
}

// NewEngine creates an engine with empty state
func NewEngine(source Source) *Engine {
	return &Engine{source: source}
}

// Events returns the editable working copies of the persisted events.
// Callers edit these in place; the engine detects edits by comparing against
// its pristine cache.
func (e *Engine) Events() []models.SportEvent {
	return e.events
}

// NewEvents returns the uncommitted events. They have no id and exist only on
// this client until saved.
func (e *Engine) NewEvents() []models.SportEvent {
	return e.newEvents
}

// Changed reports whether the working copy at index i differs from its
// pristine cached baseline.
func (e *Engine) Changed(i int) bool {
	if i < 0 || i >= len(e.events) {
		return false
	}
	return !Equal(&e.cache[i], &e.events[i])
}

// Pull fetches the remote collection and replaces cache and working copies
// wholly, discarding any local edits to persisted events. Uncommitted events
// are left untouched; they have no remote counterpart to be replaced by.
// On fetch failure the existing state is left as it was.
func (e *Engine) Pull(ctx context.Context) error {
	remote, err := e.source.GetSportEvents(ctx)
	if err != nil {
		return err
	}

	e.cache = cloneAll(remote)
	e.events = cloneAll(remote)
	return nil
}

// Sync fetches the remote collection and three-way merges it against the
// cache and the working copies:
//
//   - unchanged locally: the remote copy replaces both cache and working copy
//     (or both are dropped when the event was deleted remotely)
//   - changed locally: the remote copy becomes the new baseline and the
//     edited copy is demoted into the uncommitted collection with its id
//     cleared, so the edit survives and the user can re-apply it
//   - remote events never seen before are appended
//
// On fetch failure the existing state is left as it was.
func (e *Engine) Sync(ctx context.Context) error {
	remote, err := e.source.GetSportEvents(ctx)
	if err != nil {
		return err
	}

	// Working set of remote events, consumed as matches are found so that the
	// leftover is exactly the never-seen-before events.
	pool := cloneAll(remote)

	var nextCache, nextEvents []models.SportEvent
	for i := range e.cache {
		cached := &e.cache[i]
		working := &e.events[i]

		ri := -1
		if cached.ID != nil {
			for j := range pool {
				if pool[j].ID != nil && *pool[j].ID == *cached.ID {
					ri = j
					break
				}
			}
		}

		if !Equal(cached, working) {
			// Conflict with a remote change or a remote deletion either way:
			// keep the user's edit as an uncommitted event on the side.
			demoted := working.Clone()
			demoted.ID = nil
			e.newEvents = append(e.newEvents, demoted)
			e.newEventsCache = append(e.newEventsCache, demoted.Clone())
		}

		if ri >= 0 {
			nextCache = append(nextCache, pool[ri].Clone())
			nextEvents = append(nextEvents, pool[ri].Clone())
			pool = append(pool[:ri], pool[ri+1:]...)
		}
	}

	// Whatever remains was never seen before
	for i := range pool {
		nextCache = append(nextCache, pool[i].Clone())
		nextEvents = append(nextEvents, pool[i].Clone())
	}

	e.cache = nextCache
	e.events = nextEvents
	return nil
}

// Add appends a blank uncommitted event owned by the given user and returns a
// pointer to its working copy.
func (e *Engine) Add(creator *models.User, sportID, locationID, eventTypeID int64) *models.SportEvent {
	now := time.Now().Truncate(time.Minute)
	ev := models.SportEvent{
		StartTime:   now,
		EndTime:     now.Add(time.Hour),
		Visibility:  models.VisibilityCreator,
		CreatorID:   creator.ID,
		Creator:     creator,
		SportID:     sportID,
		LocationID:  locationID,
		EventTypeID: eventTypeID,
		Clubs:       []models.EventClub{},
		Matches:     []models.SportMatch{},
	}

	e.newEvents = append(e.newEvents, ev.Clone())
	e.newEventsCache = append(e.newEventsCache, ev.Clone())
	return &e.newEvents[len(e.newEvents)-1]
}

// Discard reverts the uncommitted event at index i to its pristine baseline
// without removing it from the collection.
func (e *Engine) Discard(i int) {
	if i < 0 || i >= len(e.newEvents) {
		return
	}
	e.newEvents[i] = e.newEventsCache[i].Clone()
}

// DeleteNew removes the uncommitted event at index i from both parallel
// collections, preserving the order of the rest.
func (e *Engine) DeleteNew(i int) {
	if i < 0 || i >= len(e.newEvents) {
		return
	}
	e.newEvents = append(e.newEvents[:i], e.newEvents[i+1:]...)
	e.newEventsCache = append(e.newEventsCache[:i], e.newEventsCache[i+1:]...)
}

func cloneAll(events []models.SportEvent) []models.SportEvent {
	out := make([]models.SportEvent, len(events))
	for i := range events {
		out[i] = events[i].Clone()
	}
	return out
}
