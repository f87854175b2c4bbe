package services

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/lukasw/clubsite/internal/app/models"
	"github.com/lukasw/clubsite/internal/app/repositories"
)

type mockUserStore struct {
	mock.Mock
}

func (m *mockUserStore) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) GetByActivationCode(ctx context.Context, code string) (*models.User, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *mockUserStore) UsernameExists(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserStore) Activate(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockUserStore) UpdateProfile(ctx context.Context, userID int64, firstName, lastName string) error {
	args := m.Called(ctx, userID, firstName, lastName)
	return args.Error(0)
}

func (m *mockUserStore) RequestEmailChange(ctx context.Context, userID int64, email, activationCode string) error {
	args := m.Called(ctx, userID, email, activationCode)
	return args.Error(0)
}

func (m *mockUserStore) ConfirmEmailChange(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *mockUserStore) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	args := m.Called(ctx, userID, passwordHash)
	return args.Error(0)
}

func (m *mockUserStore) Delete(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockTokenStore struct {
	mock.Mock
}

func (m *mockTokenStore) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	args := m.Called(ctx, token, userID, expiryDate)
	return args.Error(0)
}

func (m *mockTokenStore) GetTokenByValue(ctx context.Context, token string) (int64, time.Time, bool, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Get(1).(time.Time), args.Bool(2), args.Error(3)
}

func (m *mockTokenStore) RevokeToken(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockTokenStore) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type mockEventStore struct {
	mock.Mock
}

func (m *mockEventStore) List(ctx context.Context, filter repositories.EventFilter) ([]models.SportEvent, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SportEvent), args.Error(1)
}

func (m *mockEventStore) GetByID(ctx context.Context, id int64) (*models.SportEvent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SportEvent), args.Error(1)
}

func (m *mockEventStore) Create(ctx context.Context, ev *models.SportEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *mockEventStore) Update(ctx context.Context, ev *models.SportEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *mockEventStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockTimerStore struct {
	mock.Mock
}

func (m *mockTimerStore) ListByUser(ctx context.Context, userID int64) ([]models.Timer, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Timer), args.Error(1)
}

func (m *mockTimerStore) GetByID(ctx context.Context, id int64) (*models.Timer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Timer), args.Error(1)
}

func (m *mockTimerStore) Create(ctx context.Context, timer *models.Timer) error {
	args := m.Called(ctx, timer)
	return args.Error(0)
}

func (m *mockTimerStore) Update(ctx context.Context, timer *models.Timer) error {
	args := m.Called(ctx, timer)
	return args.Error(0)
}

func (m *mockTimerStore) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
