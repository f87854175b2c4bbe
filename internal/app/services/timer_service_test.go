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
)

func TestTimerCreateStartsStopped(t *testing.T) {
	timerRepo := new(mockTimerStore)
	timerRepo.On("Create", mock.Anything, mock.MatchedBy(func(timer *models.Timer) bool {
		return timer.UserID == 5 && timer.ElapsedSeconds == 0 && timer.StartTime == nil
	})).Return(nil)

	svc := NewTimerService(timerRepo)
	timer, err := svc.Create(context.Background(), 5, &dto.AddTimerRequest{Name: "Piano practice"})

	require.NoError(t, err)
	assert.False(t, timer.Running())
	timerRepo.AssertExpectations(t)
}

func TestTimerForeignAccessReportsNotFound(t *testing.T) {
	timerRepo := new(mockTimerStore)
	timerRepo.On("GetByID", mock.Anything, int64(7)).
		Return(&models.Timer{ID: 7, UserID: 5}, nil)

	svc := NewTimerService(timerRepo)

	_, err := svc.Get(context.Background(), 99, 7)
	assert.ErrorIs(t, err, apperrors.ErrTimerNotFound)

	_, err = svc.Update(context.Background(), 99, 7, &dto.UpdateTimerRequest{Name: "x"})
	assert.ErrorIs(t, err, apperrors.ErrTimerNotFound)

	err = svc.Delete(context.Background(), 99, 7)
	assert.ErrorIs(t, err, apperrors.ErrTimerNotFound)

	timerRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestTimerUpdatePersistsRunningState(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	timerRepo := new(mockTimerStore)
	timerRepo.On("GetByID", mock.Anything, int64(7)).
		Return(&models.Timer{ID: 7, UserID: 5, Name: "Run", ElapsedSeconds: 100}, nil)
	timerRepo.On("Update", mock.Anything, mock.MatchedBy(func(timer *models.Timer) bool {
		return timer.ElapsedSeconds == 100 && timer.StartTime != nil && timer.StartTime.Equal(start)
	})).Return(nil)

	svc := NewTimerService(timerRepo)
	timer, err := svc.Update(context.Background(), 5, 7, &dto.UpdateTimerRequest{
		Name:           "Run",
		ElapsedSeconds: 100,
		StartTime:      &start,
	})

	require.NoError(t, err)
	assert.True(t, timer.Running())
	timerRepo.AssertExpectations(t)
}
