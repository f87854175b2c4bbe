package services

import (
	"context"

	"github.com/lukasw/clubsite/internal/app/models"
	"github.com/lukasw/clubsite/internal/app/models/dto"
	"github.com/lukasw/clubsite/internal/pkg/apperrors"
)

// TimerService handles per-user time tracking. Timers are strictly private:
// other users' timers behave as if they did not exist.
type TimerService struct {
	timerRepo TimerStore
}

// NewTimerService creates a new TimerService
func NewTimerService(timerRepo TimerStore) *TimerService {
	return &TimerService{timerRepo: timerRepo}
}

// List retrieves all timers of the user
func (s *TimerService) List(ctx context.Context, userID int64) ([]models.Timer, error) {
	return s.timerRepo.ListByUser(ctx, userID)
}

// Get retrieves one timer of the user
func (s *TimerService) Get(ctx context.Context, userID, timerID int64) (*models.Timer, error) {
	return s.owned(ctx, userID, timerID)
}

// Create adds a new stopped timer with zero elapsed time
func (s *TimerService) Create(ctx context.Context, userID int64, req *dto.AddTimerRequest) (*models.Timer, error) {
	timer := &models.Timer{
		UserID: userID,
		Name:   req.Name,
	}
	if err := s.timerRepo.Create(ctx, timer); err != nil {
		return nil, err
	}
	return timer, nil
}

// Update persists timer state. A non-nil start time means the timer is
// running; elapsed seconds only cover completed intervals.
func (s *TimerService) Update(ctx context.Context, userID, timerID int64, req *dto.UpdateTimerRequest) (*models.Timer, error) {
	timer, err := s.owned(ctx, userID, timerID)
	if err != nil {
		return nil, err
	}

	timer.Name = req.Name
	timer.ElapsedSeconds = req.ElapsedSeconds
	timer.StartTime = req.StartTime

	if err := s.timerRepo.Update(ctx, timer); err != nil {
		return nil, err
	}
	return timer, nil
}

// Delete removes a timer of the user
func (s *TimerService) Delete(ctx context.Context, userID, timerID int64) error {
	if _, err := s.owned(ctx, userID, timerID); err != nil {
		return err
	}
	return s.timerRepo.Delete(ctx, timerID)
}

func (s *TimerService) owned(ctx context.Context, userID, timerID int64) (*models.Timer, error) {
	timer, err := s.timerRepo.GetByID(ctx, timerID)
	if err != nil {
		return nil, err
	}
	if timer.UserID != userID {
		return nil, apperrors.ErrTimerNotFound
	}
	return timer, nil
}
