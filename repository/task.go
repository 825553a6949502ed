package repository

import (
	"context"
	"time"

	"github.com/Laaxxmm/Pomodoro/domain"
)

// TaskFilter narrows task scans. Completed is a tri-state: nil means both.
type TaskFilter struct {
	UserID        string
	Completed     *bool
	ScheduledDate string
	IDs           []string
	Limit         int
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	Update(ctx context.Context, task *domain.Task) error
	Delete(ctx context.Context, id string) error

	// SetPriority writes the score and rationale produced by prioritization.
	// The write is idempotent and safe to retry.
	SetPriority(ctx context.Context, id string, score int, reason string) error
	// MarkStarted stamps started_at once; later calls are no-ops.
	MarkStarted(ctx context.Context, id string, at time.Time) error
	// MarkCompleted flips the task to its terminal state.
	MarkCompleted(ctx context.Context, id string, at time.Time, timeSpentSeconds int) error
	// AddTimeSpent accumulates focused seconds onto the task.
	AddTimeSpent(ctx context.Context, id string, seconds int) error
	// RolloverDue pushes every incomplete task scheduled on or before
	// today to tomorrow, incrementing its rollover count. An empty userID
	// rolls over all scopes. Returns the number of affected tasks.
	RolloverDue(ctx context.Context, userID, today, tomorrow string) (int, error)
	// CountPending and CountCompletedSince feed the stats endpoint.
	CountPending(ctx context.Context, userID string) (int, error)
	CountCompletedSince(ctx context.Context, userID, date string) (int, error)
}
