package pomodoro

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Laaxxmm/Pomodoro/domain"
	"github.com/Laaxxmm/Pomodoro/pkg/clock"
	"github.com/Laaxxmm/Pomodoro/repository"
)

// Stats summarizes today's completed focus work.
type Stats struct {
	TodaySessions     int                      `json:"today_sessions"`
	TodayFocusMinutes int                      `json:"today_focus_minutes"`
	Sessions          []domain.PomodoroSession `json:"sessions"`
}

// UseCase tracks focus sessions against tasks. Completing a work session
// accumulates its duration onto the task; break sessions never do.
type UseCase struct {
	sessions repository.SessionRepository
	tasks    repository.TaskRepository
	clock    clock.Clock
	logger   *zap.Logger
}

func New(sessions repository.SessionRepository, tasks repository.TaskRepository, clk clock.Clock, logger *zap.Logger) *UseCase {
	if clk == nil {
		clk = clock.System()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		sessions: sessions,
		tasks:    tasks,
		clock:    clk,
		logger:   logger,
	}
}

// Start opens a session against a task. The first work session also stamps
// the task's started_at.
func (uc *UseCase) Start(ctx context.Context, userID, taskID string, kind domain.SessionKind) (*domain.PomodoroSession, error) {
	if taskID == "" {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "task id is required", nil)
	}
	if _, err := uc.tasks.GetByID(ctx, taskID); err != nil {
		return nil, err
	}
	if kind == "" {
		kind = domain.SessionWork
	}

	now := uc.clock.Now()
	session := &domain.PomodoroSession{
		ID:        uuid.NewString(),
		UserID:    userID,
		TaskID:    taskID,
		StartedAt: now,
		Kind:      kind,
	}
	created, err := uc.sessions.Create(ctx, session)
	if err != nil {
		return nil, err
	}

	if kind == domain.SessionWork {
		if err := uc.tasks.MarkStarted(ctx, taskID, now); err != nil {
			uc.logger.Warn("failed to stamp task start",
				zap.String("task_id", taskID), zap.Error(err))
		}
	}
	return created, nil
}

// Complete transitions the session to its terminal state and, for work
// sessions, adds the duration to the task's accumulated focus time.
func (uc *UseCase) Complete(ctx context.Context, sessionID string, durationSeconds int) (*domain.PomodoroSession, error) {
	if durationSeconds < 0 {
		durationSeconds = 0
	}

	session, err := uc.sessions.Complete(ctx, sessionID, uc.clock.Now(), durationSeconds)
	if err != nil {
		return nil, err
	}

	if session.CountsTowardFocus() {
		if err := uc.tasks.AddTimeSpent(ctx, session.TaskID, durationSeconds); err != nil {
			// The task may have been deleted mid-session.
			uc.logger.Warn("failed to accumulate focus time",
				zap.String("task_id", session.TaskID), zap.Error(err))
		}
	}
	return session, nil
}

// TodayStats reports today's completed work sessions and total focus time.
func (uc *UseCase) TodayStats(ctx context.Context, userID string) (*Stats, error) {
	sessions, err := uc.sessions.ListCompletedWork(ctx, userID, uc.clock.Today(), 100)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, s := range sessions {
		total += s.DurationSeconds
	}
	if sessions == nil {
		sessions = []domain.PomodoroSession{}
	}
	return &Stats{
		TodaySessions:     len(sessions),
		TodayFocusMinutes: total / 60,
		Sessions:          sessions,
	}, nil
}
