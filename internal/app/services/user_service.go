package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lukasw/clubsite/internal/app/models"
	"github.com/lukasw/clubsite/internal/app/models/dto"
	"github.com/lukasw/clubsite/internal/pkg/apperrors"
	"github.com/lukasw/clubsite/internal/pkg/auth"
	"github.com/lukasw/clubsite/internal/pkg/logger"
	"github.com/lukasw/clubsite/internal/pkg/validation"
)

// UserService handles profile, email, password and account deletion
type UserService struct {
	userRepo  UserStore
	tokenRepo TokenStore
}

// NewUserService creates a new UserService
func NewUserService(userRepo UserStore, tokenRepo TokenStore) *UserService {
	return &UserService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
	}
}

// UpdateProfile changes the user's name fields
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.User, error) {
	if err := s.userRepo.UpdateProfile(ctx, userID, req.FirstName, req.LastName); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

// ChangeEmail starts an email change. The new address is stored unconfirmed
// and only takes effect once its activation code is submitted.
func (s *UserService) ChangeEmail(ctx context.Context, userID int64, req *dto.ChangeEmailRequest) error {
	if !validation.ValidEmail(req.Email) {
		return apperrors.ErrInvalidEmail
	}

	exists, err := s.userRepo.EmailExists(ctx, req.Email)
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return apperrors.ErrEmailAlreadyExists
	}

	code := uuid.New().String()
	if err := s.userRepo.RequestEmailChange(ctx, userID, req.Email, code); err != nil {
		return err
	}

	logger.Info().
		Int64("userID", userID).
		Str("activationCode", code).
		Msg("Email change requested, awaiting confirmation")

	return nil
}

// ChangePassword verifies the old password, sets the new one and revokes every
// refresh token of the user.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, req.OldPassword) {
		return apperrors.ErrInvalidCredentials
	}
	if !validation.ValidPassword(req.NewPassword) {
		return apperrors.ErrInvalidPassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	return s.tokenRepo.RevokeAllUserTokens(ctx, userID)
}

// DeleteAccount removes the account after verifying the current password
func (s *UserService) DeleteAccount(ctx context.Context, userID int64, req *dto.DeleteAccountRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return apperrors.ErrInvalidCredentials
	}

	if err := s.tokenRepo.RevokeAllUserTokens(ctx, userID); err != nil {
		return err
	}

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return err
	}

	logger.Info().Int64("userID", userID).Msg("Account deleted")
	return nil
}
