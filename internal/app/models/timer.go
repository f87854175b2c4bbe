package models

import (
	"time"
)

// Timer defines a personal stopwatch based on the 'timers' table. StartTime is
// nil while the timer is stopped and set to the instant the current running
// interval began otherwise.
type Timer struct {
	ID             int64      `json:"id" db:"id" example:"1"`
	UserID         int64      `json:"userId" db:"user_id"`
	Name           string     `json:"name" db:"name" example:"Piano practice"`
	ElapsedSeconds int64      `json:"elapsedSeconds" db:"elapsed_seconds" example:"3600"` // Committed total, excluding the running interval
	StartTime      *time.Time `json:"startTime,omitempty" db:"start_time"`
}

// Running reports whether an interval is currently open.
func (t *Timer) Running() bool {
	return t.StartTime != nil
}

// TotalSeconds returns the true elapsed total at the given instant, folding in
// the live interval when the timer is running.
func (t *Timer) TotalSeconds(now time.Time) int64 {
	total := t.ElapsedSeconds
	if t.StartTime != nil {
		total += int64(now.Sub(*t.StartTime).Seconds())
	}
	return total
}
