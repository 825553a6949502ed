package repository

import (
	"context"
	"time"

	"github.com/Laaxxmm/Pomodoro/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, session *domain.PomodoroSession) (*domain.PomodoroSession, error)
	GetByID(ctx context.Context, id string) (*domain.PomodoroSession, error)
	// Complete transitions the session to its terminal state exactly once.
	Complete(ctx context.Context, id string, endedAt time.Time, durationSeconds int) (*domain.PomodoroSession, error)
	// ListCompletedWork returns completed work sessions started on or after
	// the given date, newest first.
	ListCompletedWork(ctx context.Context, userID, sinceDate string, limit int) ([]domain.PomodoroSession, error)
}
