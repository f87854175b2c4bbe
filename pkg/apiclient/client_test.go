package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukasw/clubsite/internal/app/models"
	"github.com/lukasw/clubsite/internal/app/models/dto"
	"github.com/lukasw/clubsite/internal/pkg/apperrors"
	"github.com/lukasw/clubsite/pkg/eventsync"
	"github.com/lukasw/clubsite/pkg/timetrack"
)

// The client is the concrete backing of both client core packages.
var (
	_ eventsync.Source = (*Client)(nil)
	_ timetrack.Remote = (*Client)(nil)
)

func envelope(data interface{}) []byte {
	out, _ := json.Marshal(dto.APIResponse{Data: data, Timestamp: time.Now()})
	return out
}

func errorEnvelope(code dto.ErrorCode, message string) []byte {
	out, _ := json.Marshal(dto.NewErrorResponse(dto.NewErrorDetail(code, message)))
	return out
}

func TestLoginStoresTokenAndSendsItAfterwards(t *testing.T) {
	var seenAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			var req dto.LoginRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "User42", req.Username)
			w.Write(envelope(dto.TokenResponse{AccessToken: "access-abc", RefreshToken: "refresh-def"}))
		case "/timers":
			seenAuth = r.Header.Get("Authorization")
			w.Write(envelope([]models.Timer{}))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	require.NoError(t, c.Login(context.Background(), "User42", "secret12"))

	_, err := c.GetTimers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer access-abc", seenAuth)
}

func TestGetSportEventsDecodesEnvelope(t *testing.T) {
	start := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	id := int64(7)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sport-events", r.URL.Path)
		w.Write(envelope([]models.SportEvent{{
			ID:        &id,
			StartTime: start,
			EndTime:   start.Add(time.Hour),
			Matches: []models.SportMatch{{
				ID:    3,
				Teams: []models.SportTeam{{TeamNumber: 0, Users: []models.UserRef{{ID: 11}}}},
			}},
		}}))
	}))
	defer srv.Close()

	events, err := New(srv.URL, WithToken("tok")).GetSportEvents(context.Background())

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(7), *events[0].ID)
	assert.True(t, events[0].StartTime.Equal(start))
	require.Len(t, events[0].Matches, 1)
	assert.Equal(t, int64(11), events[0].Matches[0].Teams[0].Users[0].ID)
}

func TestUnauthorizedMapsToTokenInvalid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write(errorEnvelope(dto.ErrorCodeExpiredToken, "Token has expired"))
	}))
	defer srv.Close()

	_, err := New(srv.URL, WithToken("stale")).GetSportEvents(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
	assert.Equal(t, "Token has expired", err.Error())
}

func TestTimerNotFoundMapsToSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write(errorEnvelope(dto.ErrorCodeResourceNotFound, "timer not found"))
	}))
	defer srv.Close()

	c := New(srv.URL, WithToken("tok"))
	_, err := c.GetTimer(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrTimerNotFound)

	err = c.UpdateTimer(context.Background(), models.Timer{ID: 99})
	assert.ErrorIs(t, err, apperrors.ErrTimerNotFound)
}

func TestUpdateTimerSendsRunningState(t *testing.T) {
	started := time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/timers/4", r.URL.Path)

		var req dto.UpdateTimerRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(130), req.ElapsedSeconds)
		require.NotNil(t, req.StartTime)
		assert.True(t, req.StartTime.Equal(started))

		w.Write(envelope(nil))
	}))
	defer srv.Close()

	err := New(srv.URL, WithToken("tok")).UpdateTimer(context.Background(), models.Timer{
		ID:             4,
		Name:           "Piano practice",
		ElapsedSeconds: 130,
		StartTime:      &started,
	})
	require.NoError(t, err)
}

func TestUpdateSportEventRejectsUnpersistedEvent(t *testing.T) {
	c := New("http://unused")
	_, err := c.UpdateSportEvent(context.Background(), &models.SportEvent{})
	assert.ErrorIs(t, err, apperrors.ErrBadRequest)
}
