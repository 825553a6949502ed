package memory

import (
	"context"
	"sync"

	"github.com/Laaxxmm/Pomodoro/domain"
	"github.com/Laaxxmm/Pomodoro/repository"
)

type PlanRepository struct {
	mu    sync.RWMutex
	plans map[string]domain.DailyPlan
}

func NewPlanRepository() *PlanRepository {
	return &PlanRepository{plans: make(map[string]domain.DailyPlan)}
}

func planKey(userID, date string) string {
	return userID + "|" + date
}

func (r *PlanRepository) GetByDate(_ context.Context, userID, date string) (*domain.DailyPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	plan, ok := r.plans[planKey(userID, date)]
	if !ok {
		return nil, domain.ErrPlanNotFound
	}
	copied := plan
	copied.TaskIDs = append([]string(nil), plan.TaskIDs...)
	return &copied, nil
}

func (r *PlanRepository) Upsert(_ context.Context, plan *domain.DailyPlan) error {
	if plan == nil || plan.Date == "" {
		return domain.ErrInvalidPayload
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *plan
	stored.TaskIDs = append([]string(nil), plan.TaskIDs...)
	r.plans[planKey(plan.UserID, plan.Date)] = stored
	return nil
}

// Len reports the number of stored plans.
func (r *PlanRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plans)
}

var _ repository.PlanRepository = (*PlanRepository)(nil)
