package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lukasw/clubsite/internal/app/models"
	"github.com/lukasw/clubsite/internal/pkg/apperrors"
)

// TimerRepository handles timer database operations
type TimerRepository struct {
	db *pgxpool.Pool
}

// NewTimerRepository creates a new TimerRepository
func NewTimerRepository(db *pgxpool.Pool) *TimerRepository {
	return &TimerRepository{db: db}
}

// ListByUser retrieves all timers owned by a user
func (r *TimerRepository) ListByUser(ctx context.Context, userID int64) ([]models.Timer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, name, elapsed_seconds, start_time
		 FROM timers WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying timers: %w", err)
	}
	defer rows.Close()

	timers := []models.Timer{}
	for rows.Next() {
		var t models.Timer
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.ElapsedSeconds, &t.StartTime); err != nil {
			return nil, fmt.Errorf("error scanning timer row: %w", err)
		}
		timers = append(timers, t)
	}
	return timers, rows.Err()
}

// GetByID retrieves a timer by id
func (r *TimerRepository) GetByID(ctx context.Context, id int64) (*models.Timer, error) {
	var t models.Timer
	err := r.db.QueryRow(ctx,
		`SELECT id, user_id, name, elapsed_seconds, start_time FROM timers WHERE id = $1`, id).
		Scan(&t.ID, &t.UserID, &t.Name, &t.ElapsedSeconds, &t.StartTime)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTimerNotFound
		}
		return nil, fmt.Errorf("error getting timer: %w", err)
	}
	return &t, nil
}

// Create inserts a new stopped timer and sets its generated id
func (r *TimerRepository) Create(ctx context.Context, timer *models.Timer) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO timers (user_id, name, elapsed_seconds, start_time)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		timer.UserID, timer.Name, timer.ElapsedSeconds, timer.StartTime).Scan(&timer.ID)
	if err != nil {
		return fmt.Errorf("error creating timer: %w", err)
	}
	return nil
}

// Update persists name, elapsed seconds and start time
func (r *TimerRepository) Update(ctx context.Context, timer *models.Timer) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE timers SET name = $2, elapsed_seconds = $3, start_time = $4 WHERE id = $1`,
		timer.ID, timer.Name, timer.ElapsedSeconds, timer.StartTime)
	if err != nil {
		return fmt.Errorf("error updating timer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTimerNotFound
	}
	return nil
}

// Delete removes a timer
func (r *TimerRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM timers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting timer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTimerNotFound
	}
	return nil
}
