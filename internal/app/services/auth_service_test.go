package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lukasw/clubsite/internal/app/models"
	"github.com/lukasw/clubsite/internal/app/models/dto"
	"github.com/lukasw/clubsite/internal/pkg/apperrors"
	"github.com/lukasw/clubsite/internal/pkg/auth"
)

func testJWTService() *auth.JWTService {
	return auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Hour,
		RefreshTokenExp: 24 * time.Hour,
		TokenIssuer:     "test",
	})
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.RegisterRequest
		wantErr error
	}{
		{
			"username with underscore",
			dto.RegisterRequest{Username: "user_42", Email: "a@b.com", Password: "secret12"},
			apperrors.ErrInvalidUsername,
		},
		{
			"username containing admin",
			dto.RegisterRequest{Username: "Administrator", Email: "a@b.com", Password: "secret12"},
			apperrors.ErrInvalidUsername,
		},
		{
			"bad email",
			dto.RegisterRequest{Username: "User42", Email: "not-an-email", Password: "secret12"},
			apperrors.ErrInvalidEmail,
		},
		{
			"password without digit",
			dto.RegisterRequest{Username: "User42", Email: "a@b.com", Password: "secretpw"},
			apperrors.ErrInvalidPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(new(mockUserStore), new(mockTokenStore), testJWTService())
			_, err := svc.Register(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	userRepo := new(mockUserStore)
	userRepo.On("UsernameExists", mock.Anything, "User42").Return(true, nil)

	svc := NewAuthService(userRepo, new(mockTokenStore), testJWTService())
	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "User42",
		Email:    "a@b.com",
		Password: "secret12",
	})

	assert.ErrorIs(t, err, apperrors.ErrUsernameAlreadyExists)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterCreatesInactiveUser(t *testing.T) {
	userRepo := new(mockUserStore)
	userRepo.On("UsernameExists", mock.Anything, "User42").Return(false, nil)
	userRepo.On("EmailExists", mock.Anything, "a@b.com").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
		return !u.Active && u.ActivationCode != nil && *u.ActivationCode != "" &&
			u.Username == "User42" && u.Password != "secret12"
	})).Return(nil)

	svc := NewAuthService(userRepo, new(mockTokenStore), testJWTService())
	user, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Username: "User42",
		Email:    "a@b.com",
		Password: "secret12",
	})

	require.NoError(t, err)
	assert.False(t, user.Active)
	userRepo.AssertExpectations(t)
}

func TestActivateFreshAccount(t *testing.T) {
	code := "some-code"
	userRepo := new(mockUserStore)
	userRepo.On("GetByActivationCode", mock.Anything, code).
		Return(&models.User{ID: 5, Active: false, ActivationCode: &code}, nil)
	userRepo.On("Activate", mock.Anything, int64(5)).Return(nil)

	svc := NewAuthService(userRepo, new(mockTokenStore), testJWTService())
	require.NoError(t, svc.Activate(context.Background(), code))
	userRepo.AssertExpectations(t)
}

func TestActivateEmailChange(t *testing.T) {
	code := "some-code"
	pending := "new@example.com"
	userRepo := new(mockUserStore)
	userRepo.On("GetByActivationCode", mock.Anything, code).
		Return(&models.User{ID: 5, Active: true, UnconfirmedEmail: &pending, ActivationCode: &code}, nil)
	userRepo.On("ConfirmEmailChange", mock.Anything, int64(5)).Return(nil)

	svc := NewAuthService(userRepo, new(mockTokenStore), testJWTService())
	require.NoError(t, svc.Activate(context.Background(), code))
	userRepo.AssertExpectations(t)
}

func TestActivateUnknownCode(t *testing.T) {
	userRepo := new(mockUserStore)
	userRepo.On("GetByActivationCode", mock.Anything, "nope").
		Return(nil, apperrors.ErrInvalidActivationCode)

	svc := NewAuthService(userRepo, new(mockTokenStore), testJWTService())
	assert.ErrorIs(t, svc.Activate(context.Background(), "nope"), apperrors.ErrInvalidActivationCode)
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("secret12")
	require.NoError(t, err)

	activeUser := &models.User{ID: 1, Username: "User42", Password: hash, Active: true}
	inactiveUser := &models.User{ID: 2, Username: "Newbie1", Password: hash, Active: false}

	tests := []struct {
		name     string
		req      dto.LoginRequest
		user     *models.User
		userErr  error
		wantErr  error
		wantPair bool
	}{
		{"success", dto.LoginRequest{Username: "User42", Password: "secret12"}, activeUser, nil, nil, true},
		{"wrong password", dto.LoginRequest{Username: "User42", Password: "wrong123"}, activeUser, nil, apperrors.ErrInvalidCredentials, false},
		{"unknown user", dto.LoginRequest{Username: "Ghost1", Password: "secret12"}, nil, apperrors.ErrUserNotFound, apperrors.ErrInvalidCredentials, false},
		{"inactive account", dto.LoginRequest{Username: "Newbie1", Password: "secret12"}, inactiveUser, nil, apperrors.ErrAccountInactive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(mockUserStore)
			userRepo.On("GetByUsername", mock.Anything, tt.req.Username).Return(tt.user, tt.userErr)

			tokenRepo := new(mockTokenStore)
			if tt.wantPair {
				tokenRepo.On("CreateToken", mock.Anything, mock.Anything, tt.user.ID, mock.Anything).Return(nil)
			}

			svc := NewAuthService(userRepo, tokenRepo, testJWTService())
			resp, err := svc.Login(context.Background(), &tt.req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, resp.AccessToken)
			assert.NotEmpty(t, resp.RefreshToken)
			assert.Equal(t, "Bearer", resp.TokenType)
			tokenRepo.AssertExpectations(t)
		})
	}
}

func TestRefreshTokenRotation(t *testing.T) {
	user := &models.User{ID: 1, Username: "User42", Active: true}

	userRepo := new(mockUserStore)
	userRepo.On("GetByID", mock.Anything, int64(1)).Return(user, nil)

	tokenRepo := new(mockTokenStore)
	tokenRepo.On("GetTokenByValue", mock.Anything, "old-token").
		Return(int64(1), time.Now().Add(time.Hour), false, nil)
	tokenRepo.On("RevokeToken", mock.Anything, "old-token").Return(nil)
	tokenRepo.On("CreateToken", mock.Anything, mock.Anything, int64(1), mock.Anything).Return(nil)

	svc := NewAuthService(userRepo, tokenRepo, testJWTService())
	resp, err := svc.RefreshToken(context.Background(), "old-token")

	require.NoError(t, err)
	assert.NotEqual(t, "old-token", resp.RefreshToken)
	tokenRepo.AssertExpectations(t)
}

func TestRefreshTokenExpired(t *testing.T) {
	tokenRepo := new(mockTokenStore)
	tokenRepo.On("GetTokenByValue", mock.Anything, "stale").
		Return(int64(1), time.Now().Add(-time.Minute), false, nil)
	tokenRepo.On("RevokeToken", mock.Anything, "stale").Return(nil)

	svc := NewAuthService(new(mockUserStore), tokenRepo, testJWTService())
	_, err := svc.RefreshToken(context.Background(), "stale")
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)
}

func TestRefreshTokenRevoked(t *testing.T) {
	tokenRepo := new(mockTokenStore)
	tokenRepo.On("GetTokenByValue", mock.Anything, "revoked").
		Return(int64(1), time.Now().Add(time.Hour), true, nil)

	svc := NewAuthService(new(mockUserStore), tokenRepo, testJWTService())
	_, err := svc.RefreshToken(context.Background(), "revoked")
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}
