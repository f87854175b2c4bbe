// Package apiclient is the HTTP client for the REST API. It backs the client
// core packages: it is the eventsync.Source the reconciliation engine pulls
// from and the timetrack.Remote the timer runtime persists through.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/lukasw/clubsite/internal/app/models"
	"github.com/lukasw/clubsite/internal/app/models/dto"
	"github.com/lukasw/clubsite/internal/pkg/apperrors"
)

const defaultTimeout = 15 * time.Second

// Client talks to the API over HTTP with bearer-token auth. It is safe for
// concurrent use after login; the token is only written by Login, Refresh and
// SetToken.
type Client struct {
	baseURL string
	http    *http.Client

	accessToken  string
	refreshToken string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithToken sets the bearer token up front, skipping Login.
func WithToken(token string) Option {
	return func(c *Client) { c.accessToken = token }
}

// New creates a client for the API rooted at baseURL, e.g.
// "https://clubsite.app/api/v1".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Login exchanges credentials for a token pair and stores it on the client.
func (c *Client) Login(ctx context.Context, username, password string) error {
	var tokens dto.TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{
		Username: username,
		Password: password,
	}, &tokens, nil)
	if err != nil {
		return err
	}
	c.accessToken = tokens.AccessToken
	c.refreshToken = tokens.RefreshToken
	return nil
}

// Refresh trades the stored refresh token for a fresh pair.
func (c *Client) Refresh(ctx context.Context) error {
	if c.refreshToken == "" {
		return apperrors.ErrTokenNotFound
	}
	var tokens dto.TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/refresh", dto.RefreshTokenRequest{
		RefreshToken: c.refreshToken,
	}, &tokens, nil)
	if err != nil {
		return err
	}
	c.accessToken = tokens.AccessToken
	c.refreshToken = tokens.RefreshToken
	return nil
}

// SetToken replaces the bearer token.
func (c *Client) SetToken(token string) {
	c.accessToken = token
}

// GetSportEvents fetches every event visible to the authenticated user. This
// is the eventsync.Source implementation.
func (c *Client) GetSportEvents(ctx context.Context) ([]models.SportEvent, error) {
	var events []models.SportEvent
	if err := c.do(ctx, http.MethodGet, "/sport-events", nil, &events, nil); err != nil {
		return nil, err
	}
	return events, nil
}

// GetSportEvent fetches a single event.
func (c *Client) GetSportEvent(ctx context.Context, id int64) (*models.SportEvent, error) {
	var ev models.SportEvent
	path := fmt.Sprintf("/sport-events/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &ev, apperrors.ErrSportEventNotFound); err != nil {
		return nil, err
	}
	return &ev, nil
}

// CreateSportEvent persists an uncommitted event and returns the stored graph
// with its server-assigned ids.
func (c *Client) CreateSportEvent(ctx context.Context, ev *models.SportEvent) (*models.SportEvent, error) {
	var created models.SportEvent
	if err := c.do(ctx, http.MethodPost, "/sport-events", ev, &created, nil); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateSportEvent replaces the whole event graph.
func (c *Client) UpdateSportEvent(ctx context.Context, ev *models.SportEvent) (*models.SportEvent, error) {
	if ev.ID == nil {
		return nil, apperrors.NewBadRequestError("event has not been persisted yet")
	}
	var updated models.SportEvent
	path := fmt.Sprintf("/sport-events/%d", *ev.ID)
	if err := c.do(ctx, http.MethodPut, path, ev, &updated, apperrors.ErrSportEventNotFound); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteSportEvent removes an event.
func (c *Client) DeleteSportEvent(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/sport-events/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, apperrors.ErrSportEventNotFound)
}

// GetTimers lists the authenticated user's timers.
func (c *Client) GetTimers(ctx context.Context) ([]models.Timer, error) {
	var timers []models.Timer
	if err := c.do(ctx, http.MethodGet, "/timers", nil, &timers, nil); err != nil {
		return nil, err
	}
	return timers, nil
}

// GetTimer fetches one timer. Together with UpdateTimer this is the
// timetrack.Remote implementation.
func (c *Client) GetTimer(ctx context.Context, id int64) (*models.Timer, error) {
	var timer models.Timer
	path := fmt.Sprintf("/timers/%d", id)
	if err := c.do(ctx, http.MethodGet, path, nil, &timer, apperrors.ErrTimerNotFound); err != nil {
		return nil, err
	}
	return &timer, nil
}

// AddTimer creates a stopped timer with the given name.
func (c *Client) AddTimer(ctx context.Context, name string) (*models.Timer, error) {
	var timer models.Timer
	err := c.do(ctx, http.MethodPost, "/timers", dto.AddTimerRequest{Name: name}, &timer, nil)
	if err != nil {
		return nil, err
	}
	return &timer, nil
}

// UpdateTimer persists the timer's name, committed total and running state.
func (c *Client) UpdateTimer(ctx context.Context, timer models.Timer) error {
	path := fmt.Sprintf("/timers/%d", timer.ID)
	return c.do(ctx, http.MethodPut, path, dto.UpdateTimerRequest{
		Name:           timer.Name,
		ElapsedSeconds: timer.ElapsedSeconds,
		StartTime:      timer.StartTime,
	}, nil, apperrors.ErrTimerNotFound)
}

// DeleteTimer removes a timer.
func (c *Client) DeleteTimer(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/timers/%d", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, apperrors.ErrTimerNotFound)
}

// do performs one request against the API and decodes the response envelope
// into out. notFound, when non-nil, is the sentinel a 404 maps to; other
// failure statuses map to the shared auth and permission sentinels.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, notFound error) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.mapFailure(resp.StatusCode, raw, notFound)
	}
	if out == nil {
		return nil
	}

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decoding response envelope: %w", err)
	}
	if len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

func (c *Client) mapFailure(status int, raw []byte, notFound error) error {
	message := fmt.Sprintf("request failed with status %d", status)
	var env struct {
		Error *dto.ErrorDetail `json:"error"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && env.Error != nil && env.Error.Message != "" {
		message = env.Error.Message
	}

	switch status {
	case http.StatusUnauthorized:
		return apperrors.NewCustomError(apperrors.ErrTokenInvalid, message)
	case http.StatusForbidden:
		return apperrors.NewCustomError(apperrors.ErrPermissionDenied, message)
	case http.StatusNotFound:
		if notFound == nil {
			notFound = apperrors.ErrResourceNotFound
		}
		return apperrors.NewCustomError(notFound, message)
	case http.StatusConflict:
		return apperrors.NewCustomError(apperrors.ErrConflict, message)
	case http.StatusBadRequest:
		return apperrors.NewCustomError(apperrors.ErrBadRequest, message)
	default:
		return apperrors.NewCustomError(nil, message).WithCode(fmt.Sprintf("HTTP_%d", status))
	}
}
