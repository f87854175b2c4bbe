package eventsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukasw/clubsite/internal/app/models"
)

// fakeSource serves a scripted sequence of remote snapshots.
type fakeSource struct {
	snapshots [][]models.SportEvent
	err       error
	calls     int
}

func (f *fakeSource) GetSportEvents(_ context.Context) ([]models.SportEvent, error) {
	if f.err != nil {
		return nil, f.err
	}
	i := f.calls
	if i >= len(f.snapshots) {
		i = len(f.snapshots) - 1
	}
	f.calls++
	return f.snapshots[i], nil
}

func id64(v int64) *int64 { return &v }

func remoteEvent(id int64, description string) models.SportEvent {
	start := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	return models.SportEvent{
		ID:          id64(id),
		StartTime:   start,
		EndTime:     start.Add(2 * time.Hour),
		Description: description,
		Visibility:  models.VisibilityPublic,
		CreatorID:   1,
		SportID:     1,
		LocationID:  1,
		EventTypeID: 1,
		Clubs:       []models.EventClub{{SportClubID: 5, Host: true}},
		Matches:     []models.SportMatch{},
	}
}

func TestPullReplacesStateAndIsIdempotent(t *testing.T) {
	src := &fakeSource{snapshots: [][]models.SportEvent{
		{remoteEvent(1, "first"), remoteEvent(2, "second")},
	}}
	eng := NewEngine(src)

	require.NoError(t, eng.Pull(context.Background()))
	require.Len(t, eng.Events(), 2)

	// Local edit, then pull again: the edit is discarded.
	eng.Events()[0].Description = "edited locally"
	require.NoError(t, eng.Pull(context.Background()))

	assert.Equal(t, "first", eng.Events()[0].Description)
	assert.False(t, eng.Changed(0))
	assert.False(t, eng.Changed(1))

	// A second pull of the same snapshot changes nothing.
	before := cloneAll(eng.Events())
	require.NoError(t, eng.Pull(context.Background()))
	require.Len(t, eng.Events(), len(before))
	for i := range before {
		assert.True(t, Equal(&before[i], &eng.Events()[i]))
	}
}

func TestPullLeavesUncommittedEventsAlone(t *testing.T) {
	src := &fakeSource{snapshots: [][]models.SportEvent{
		{remoteEvent(1, "first")},
	}}
	eng := NewEngine(src)
	require.NoError(t, eng.Pull(context.Background()))

	creator := &models.User{ID: 7}
	draft := eng.Add(creator, 1, 1, 1)
	draft.Description = "my draft"

	require.NoError(t, eng.Pull(context.Background()))

	require.Len(t, eng.NewEvents(), 1)
	assert.Equal(t, "my draft", eng.NewEvents()[0].Description)
	assert.Nil(t, eng.NewEvents()[0].ID)
}

func TestPullFetchFailureKeepsState(t *testing.T) {
	src := &fakeSource{snapshots: [][]models.SportEvent{
		{remoteEvent(1, "first")},
	}}
	eng := NewEngine(src)
	require.NoError(t, eng.Pull(context.Background()))
	eng.Events()[0].Description = "edited locally"

	src.err = errors.New("connection refused")
	require.Error(t, eng.Pull(context.Background()))

	require.Len(t, eng.Events(), 1)
	assert.Equal(t, "edited locally", eng.Events()[0].Description)
	assert.True(t, eng.Changed(0))
}

func TestSyncWithoutLocalEditsMatchesRemote(t *testing.T) {
	src := &fakeSource{snapshots: [][]models.SportEvent{
		{remoteEvent(1, "first"), remoteEvent(2, "second")},
		{remoteEvent(1, "first updated"), remoteEvent(3, "third")},
	}}
	eng := NewEngine(src)
	require.NoError(t, eng.Pull(context.Background()))

	require.NoError(t, eng.Sync(context.Background()))

	require.Len(t, eng.Events(), 2)
	assert.Equal(t, "first updated", eng.Events()[0].Description)
	assert.Equal(t, int64(3), *eng.Events()[1].ID)
	assert.Empty(t, eng.NewEvents())
	assert.False(t, eng.Changed(0))
	assert.False(t, eng.Changed(1))
}

func TestSyncIdenticalRemoteIsNoOp(t *testing.T) {
	src := &fakeSource{snapshots: [][]models.SportEvent{
		{remoteEvent(1, "first"), remoteEvent(2, "second")},
	}}
	eng := NewEngine(src)
	require.NoError(t, eng.Pull(context.Background()))

	before := cloneAll(eng.Events())
	require.NoError(t, eng.Sync(context.Background()))

	require.Len(t, eng.Events(), len(before))
	for i := range before {
		assert.True(t, Equal(&before[i], &eng.Events()[i]))
		assert.False(t, eng.Changed(i))
	}
	assert.Empty(t, eng.NewEvents())
}

func TestSyncDemotesConflictingEdit(t *testing.T) {
	src := &fakeSource{snapshots: [][]models.SportEvent{
		{remoteEvent(1, "original")},
		{remoteEvent(1, "remote update")},
	}}
	eng := NewEngine(src)
	require.NoError(t, eng.Pull(context.Background()))

	eng.Events()[0].Description = "local update"

	require.NoError(t, eng.Sync(context.Background()))

	// The remote version wins the persisted slot.
	require.Len(t, eng.Events(), 1)
	assert.Equal(t, "remote update", eng.Events()[0].Description)
	assert.False(t, eng.Changed(0))

	// The local edit survives as an uncommitted event with its id cleared.
	require.Len(t, eng.NewEvents(), 1)
	demoted := eng.NewEvents()[0]
	assert.Nil(t, demoted.ID)
	assert.Equal(t, "local update", demoted.Description)
}

func TestSyncDemotesEditWhenEventDeletedRemotely(t *testing.T) {
	src := &fakeSource{snapshots: [][]models.SportEvent{
		{remoteEvent(1, "doomed"), remoteEvent(2, "stays")},
		{remoteEvent(2, "stays")},
	}}
	eng := NewEngine(src)
	require.NoError(t, eng.Pull(context.Background()))

	eng.Events()[0].Description = "edited before deletion"

	require.NoError(t, eng.Sync(context.Background()))

	require.Len(t, eng.Events(), 1)
	assert.Equal(t, int64(2), *eng.Events()[0].ID)

	require.Len(t, eng.NewEvents(), 1)
	assert.Nil(t, eng.NewEvents()[0].ID)
	assert.Equal(t, "edited before deletion", eng.NewEvents()[0].Description)
}

func TestSyncDropsUneditedDeletedEvent(t *testing.T) {
	src := &fakeSource{snapshots: [][]models.SportEvent{
		{remoteEvent(1, "doomed"), remoteEvent(2, "stays")},
		{remoteEvent(2, "stays")},
	}}
	eng := NewEngine(src)
	require.NoError(t, eng.Pull(context.Background()))

	require.NoError(t, eng.Sync(context.Background()))

	require.Len(t, eng.Events(), 1)
	assert.Equal(t, int64(2), *eng.Events()[0].ID)
	assert.Empty(t, eng.NewEvents())
}

func TestSyncFetchFailureKeepsState(t *testing.T) {
	src := &fakeSource{snapshots: [][]models.SportEvent{
		{remoteEvent(1, "first")},
	}}
	eng := NewEngine(src)
	require.NoError(t, eng.Pull(context.Background()))
	eng.Events()[0].Description = "local edit"

	src.err = errors.New("timeout")
	require.Error(t, eng.Sync(context.Background()))

	assert.Equal(t, "local edit", eng.Events()[0].Description)
	assert.True(t, eng.Changed(0))
	assert.Empty(t, eng.NewEvents())
}

func TestAddDiscardDeleteNew(t *testing.T) {
	eng := NewEngine(&fakeSource{snapshots: [][]models.SportEvent{{}}})
	creator := &models.User{ID: 9}

	first := eng.Add(creator, 2, 3, 4)
	eng.Add(creator, 2, 3, 4)
	require.Len(t, eng.NewEvents(), 2)

	assert.Nil(t, first.ID)
	assert.Equal(t, int64(9), first.CreatorID)
	assert.Equal(t, models.VisibilityCreator, first.Visibility)
	assert.True(t, first.EndTime.After(first.StartTime))

	first.Description = "scribbles"
	eng.Discard(0)
	assert.Empty(t, eng.NewEvents()[0].Description)

	eng.DeleteNew(0)
	require.Len(t, eng.NewEvents(), 1)
}
