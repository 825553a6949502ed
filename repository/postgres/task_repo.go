package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Laaxxmm/Pomodoro/domain"
	"github.com/Laaxxmm/Pomodoro/repository"
)

const taskColumns = `id, user_id, title, description, deadline, estimated_minutes, category,
	origin, priority_score, priority_reason, completed, started_at, completed_at,
	time_spent_seconds, created_at, scheduled_date, rollover_count, recurrence`

type taskRepository struct {
	pool *pgxpool.Pool
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{pool: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`
	row := r.pool.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	query := `
	SELECT ` + taskColumns + `
	FROM tasks
	WHERE ($1 = '' OR user_id = $1)
	  AND ($2::boolean IS NULL OR completed = $2)
	  AND ($3 = '' OR scheduled_date = $3)
	  AND (cardinality($4::text[]) = 0 OR id = ANY($4))
	ORDER BY created_at DESC
	LIMIT $5
	`
	ids := filter.IDs
	if ids == nil {
		ids = []string{}
	}
	rows, err := r.pool.Query(ctx, query,
		filter.UserID,
		filter.Completed,
		filter.ScheduledDate,
		ids,
		clampLimit(filter.Limit),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil || task.Title == "" {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.Normalize(time.Now().UTC())

	const query = `
	INSERT INTO tasks (id, user_id, title, description, deadline, estimated_minutes, category,
		origin, priority_score, priority_reason, completed, started_at, completed_at,
		time_spent_seconds, created_at, scheduled_date, rollover_count, recurrence)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`
	_, err := r.pool.Exec(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.Deadline,
		task.EstimatedMinutes,
		task.Category,
		string(task.Origin),
		task.PriorityScore,
		task.PriorityReason,
		task.Completed,
		task.StartedAt,
		task.CompletedAt,
		task.TimeSpentSeconds,
		task.CreatedAt,
		task.ScheduledDate,
		task.RolloverCount,
		marshalRecurrence(task.Recurrence),
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (r *taskRepository) Update(ctx context.Context, task *domain.Task) error {
	if task == nil || task.ID == "" {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE tasks
	SET title = $2,
		description = $3,
		deadline = $4,
		estimated_minutes = $5,
		category = $6,
		priority_score = $7,
		scheduled_date = $8,
		recurrence = $9
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		task.Deadline,
		task.EstimatedMinutes,
		task.Category,
		task.PriorityScore,
		task.ScheduledDate,
		marshalRecurrence(task.Recurrence),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) SetPriority(ctx context.Context, id string, score int, reason string) error {
	const query = `UPDATE tasks SET priority_score = $2, priority_reason = $3 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, score, reason)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) MarkStarted(ctx context.Context, id string, at time.Time) error {
	const query = `UPDATE tasks SET started_at = $2 WHERE id = $1 AND started_at IS NULL`
	if _, err := r.pool.Exec(ctx, query, id, at); err != nil {
		return err
	}
	return nil
}

func (r *taskRepository) MarkCompleted(ctx context.Context, id string, at time.Time, timeSpentSeconds int) error {
	const query = `
	UPDATE tasks
	SET completed = TRUE,
		completed_at = $2,
		time_spent_seconds = time_spent_seconds + $3
	WHERE id = $1
	`
	tag, err := r.pool.Exec(ctx, query, id, at, timeSpentSeconds)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) AddTimeSpent(ctx context.Context, id string, seconds int) error {
	const query = `UPDATE tasks SET time_spent_seconds = time_spent_seconds + $2 WHERE id = $1`
	tag, err := r.pool.Exec(ctx, query, id, seconds)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

func (r *taskRepository) RolloverDue(ctx context.Context, userID, today, tomorrow string) (int, error) {
	const query = `
	UPDATE tasks
	SET scheduled_date = $3,
		rollover_count = rollover_count + 1
	WHERE ($1 = '' OR user_id = $1)
	  AND completed = FALSE
	  AND scheduled_date <= $2
	`
	tag, err := r.pool.Exec(ctx, query, userID, today, tomorrow)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (r *taskRepository) CountPending(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM tasks WHERE ($1 = '' OR user_id = $1) AND completed = FALSE`
	var count int
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *taskRepository) CountCompletedSince(ctx context.Context, userID, date string) (int, error) {
	const query = `
	SELECT COUNT(*) FROM tasks
	WHERE ($1 = '' OR user_id = $1)
	  AND completed = TRUE
	  AND completed_at >= $2::date
	`
	var count int
	if err := r.pool.QueryRow(ctx, query, userID, date).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var (
		origin     string
		recurrence []byte
	)

	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&task.Deadline,
		&task.EstimatedMinutes,
		&task.Category,
		&origin,
		&task.PriorityScore,
		&task.PriorityReason,
		&task.Completed,
		&task.StartedAt,
		&task.CompletedAt,
		&task.TimeSpentSeconds,
		&task.CreatedAt,
		&task.ScheduledDate,
		&task.RolloverCount,
		&recurrence,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, err
	}

	task.Origin = domain.TaskOrigin(origin)
	task.Recurrence = unmarshalRecurrence(recurrence)
	return &task, nil
}
