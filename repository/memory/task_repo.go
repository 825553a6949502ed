// Package memory provides in-memory repository implementations used by
// use-case tests. Iteration order is insertion order, which stands in for
// the stores' deterministic ordering.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Laaxxmm/Pomodoro/domain"
	"github.com/Laaxxmm/Pomodoro/repository"
)

type TaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]domain.Task
	order []string
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{tasks: make(map[string]domain.Task)}
}

func (r *TaskRepository) GetByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	task, ok := r.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	copied := task
	return &copied, nil
}

func (r *TaskRepository) List(_ context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var wanted map[string]struct{}
	if len(filter.IDs) > 0 {
		wanted = make(map[string]struct{}, len(filter.IDs))
		for _, id := range filter.IDs {
			wanted[id] = struct{}{}
		}
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	var out []domain.Task
	for _, id := range r.order {
		task, ok := r.tasks[id]
		if !ok {
			continue
		}
		if filter.UserID != "" && task.UserID != filter.UserID {
			continue
		}
		if filter.Completed != nil && task.Completed != *filter.Completed {
			continue
		}
		if filter.ScheduledDate != "" && task.ScheduledDate != filter.ScheduledDate {
			continue
		}
		if wanted != nil {
			if _, ok := wanted[id]; !ok {
				continue
			}
		}
		out = append(out, task)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (r *TaskRepository) Create(_ context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil || task.Title == "" {
		return nil, domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.Normalize(time.Now().UTC())
	r.tasks[task.ID] = *task
	r.order = append(r.order, task.ID)
	copied := *task
	return &copied, nil
}

func (r *TaskRepository) Update(_ context.Context, task *domain.Task) error {
	if task == nil || task.ID == "" {
		return domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[task.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *TaskRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *TaskRepository) SetPriority(_ context.Context, id string, score int, reason string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	task.PriorityScore = score
	task.PriorityReason = reason
	r.tasks[id] = task
	return nil
}

func (r *TaskRepository) MarkStarted(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	if task.StartedAt == nil {
		task.StartedAt = &at
		r.tasks[id] = task
	}
	return nil
}

func (r *TaskRepository) MarkCompleted(_ context.Context, id string, at time.Time, timeSpentSeconds int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	task.Completed = true
	task.CompletedAt = &at
	task.TimeSpentSeconds += timeSpentSeconds
	r.tasks[id] = task
	return nil
}

func (r *TaskRepository) AddTimeSpent(_ context.Context, id string, seconds int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	task, ok := r.tasks[id]
	if !ok {
		return domain.ErrTaskNotFound
	}
	task.TimeSpentSeconds += seconds
	r.tasks[id] = task
	return nil
}

func (r *TaskRepository) RolloverDue(_ context.Context, userID, today, tomorrow string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for id, task := range r.tasks {
		if userID != "" && task.UserID != userID {
			continue
		}
		if task.Completed || task.ScheduledDate > today {
			continue
		}
		task.ScheduledDate = tomorrow
		task.RolloverCount++
		r.tasks[id] = task
		count++
	}
	return count, nil
}

func (r *TaskRepository) CountPending(_ context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, task := range r.tasks {
		if userID != "" && task.UserID != userID {
			continue
		}
		if !task.Completed {
			count++
		}
	}
	return count, nil
}

func (r *TaskRepository) CountCompletedSince(_ context.Context, userID, date string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	count := 0
	for _, task := range r.tasks {
		if userID != "" && task.UserID != userID {
			continue
		}
		if task.Completed && task.CompletedAt != nil && domain.Date(*task.CompletedAt) >= date {
			count++
		}
	}
	return count, nil
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
