package stats

import (
	"context"

	"go.uber.org/zap"

	"github.com/Laaxxmm/Pomodoro/pkg/clock"
	"github.com/Laaxxmm/Pomodoro/repository"
)

// Summary is the productivity overview served by /stats.
type Summary struct {
	CompletedToday    int `json:"completed_today"`
	PendingTasks      int `json:"pending_tasks"`
	FocusMinutesToday int `json:"focus_minutes_today"`
	PomodorosToday    int `json:"pomodoros_today"`
}

type UseCase struct {
	tasks    repository.TaskRepository
	sessions repository.SessionRepository
	clock    clock.Clock
	logger   *zap.Logger
}

func New(tasks repository.TaskRepository, sessions repository.SessionRepository, clk clock.Clock, logger *zap.Logger) *UseCase {
	if clk == nil {
		clk = clock.System()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:    tasks,
		sessions: sessions,
		clock:    clk,
		logger:   logger,
	}
}

func (uc *UseCase) Summary(ctx context.Context, userID string) (*Summary, error) {
	today := uc.clock.Today()

	completed, err := uc.tasks.CountCompletedSince(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	pending, err := uc.tasks.CountPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	sessions, err := uc.sessions.ListCompletedWork(ctx, userID, today, 100)
	if err != nil {
		return nil, err
	}

	focus := 0
	for _, s := range sessions {
		focus += s.DurationSeconds
	}

	return &Summary{
		CompletedToday:    completed,
		PendingTasks:      pending,
		FocusMinutesToday: focus / 60,
		PomodorosToday:    len(sessions),
	}, nil
}
