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

type planRepository struct {
	pool *pgxpool.Pool
}

// NewPlanRepository returns a Postgres-backed implementation of PlanRepository.
func NewPlanRepository(pool *pgxpool.Pool) repository.PlanRepository {
	return &planRepository{pool: pool}
}

func (r *planRepository) GetByDate(ctx context.Context, userID, date string) (*domain.DailyPlan, error) {
	const query = `
	SELECT id, user_id, plan_date, task_ids, reason, created_at
	FROM daily_plans
	WHERE user_id = $1 AND plan_date = $2
	`
	var plan domain.DailyPlan
	err := r.pool.QueryRow(ctx, query, userID, date).Scan(
		&plan.ID,
		&plan.UserID,
		&plan.Date,
		&plan.TaskIDs,
		&plan.Reason,
		&plan.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// Upsert enforces the one-plan-per-(date,user) invariant at the store:
// a conflicting row is replaced, keys and all.
func (r *planRepository) Upsert(ctx context.Context, plan *domain.DailyPlan) error {
	if plan == nil || plan.UserID == "" || plan.Date == "" {
		return domain.ErrInvalidPayload
	}
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = time.Now().UTC()
	}

	const query = `
	INSERT INTO daily_plans (id, user_id, plan_date, task_ids, reason, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (user_id, plan_date) DO UPDATE
	SET id = EXCLUDED.id,
		task_ids = EXCLUDED.task_ids,
		reason = EXCLUDED.reason,
		created_at = EXCLUDED.created_at
	`
	_, err := r.pool.Exec(ctx, query,
		plan.ID,
		plan.UserID,
		plan.Date,
		plan.TaskIDs,
		plan.Reason,
		plan.CreatedAt,
	)
	return err
}
