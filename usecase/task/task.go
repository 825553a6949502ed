package task

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Laaxxmm/Pomodoro/domain"
	"github.com/Laaxxmm/Pomodoro/pkg/clock"
	"github.com/Laaxxmm/Pomodoro/repository"
)

// UseCase covers task CRUD, the start/complete transitions and recurrence
// expansion. Prioritization lives in the planner use case.
type UseCase struct {
	tasks  repository.TaskRepository
	clock  clock.Clock
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, clk clock.Clock, logger *zap.Logger) *UseCase {
	if clk == nil {
		clk = clock.System()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		clock:  clk,
		logger: logger,
	}
}

func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return uc.tasks.List(ctx, filter)
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil || task.Title == "" {
		return nil, domain.WrapError(domain.ErrCodeInvalid, "task title is required", nil)
	}
	task.Normalize(uc.clock.Now())
	return uc.tasks.Create(ctx, task)
}

func (uc *UseCase) UpdateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil || task.ID == "" {
		return nil, domain.ErrInvalidPayload
	}
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	return uc.tasks.Delete(ctx, id)
}

// StartTask stamps started_at; repeated starts keep the original timestamp.
func (uc *UseCase) StartTask(ctx context.Context, id string) (*domain.Task, error) {
	if _, err := uc.tasks.GetByID(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.tasks.MarkStarted(ctx, id, uc.clock.Now()); err != nil {
		return nil, err
	}
	return uc.tasks.GetByID(ctx, id)
}

// CompleteTask moves the task to its terminal state and, when the task
// carries a recurrence rule, creates the next occurrence.
func (uc *UseCase) CompleteTask(ctx context.Context, id string, timeSpentSeconds int) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if timeSpentSeconds < 0 {
		timeSpentSeconds = 0
	}

	now := uc.clock.Now()
	if err := uc.tasks.MarkCompleted(ctx, id, now, timeSpentSeconds); err != nil {
		return nil, err
	}

	if next := task.Recurrence.SpawnNext(task, uuid.NewString(), now); next != nil {
		if _, err := uc.tasks.Create(ctx, next); err != nil {
			// The completion already happened; losing the next occurrence
			// is logged, not surfaced.
			uc.logger.Error("failed to create recurring follow-up",
				zap.String("task_id", id), zap.Error(err))
		} else {
			uc.logger.Info("recurring task expanded",
				zap.String("task_id", id),
				zap.String("next_id", next.ID),
				zap.String("scheduled_date", next.ScheduledDate))
		}
	}

	return uc.tasks.GetByID(ctx, id)
}
