package repository

import (
	"context"

	"github.com/Laaxxmm/Pomodoro/domain"
)

type PlanRepository interface {
	// GetByDate returns the plan for (date, user) or domain.ErrPlanNotFound.
	GetByDate(ctx context.Context, userID, date string) (*domain.DailyPlan, error)
	// Upsert writes the plan, replacing any existing row for (date, user).
	Upsert(ctx context.Context, plan *domain.DailyPlan) error
}
