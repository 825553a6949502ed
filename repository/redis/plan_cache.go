package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/Laaxxmm/Pomodoro/domain"
	"github.com/Laaxxmm/Pomodoro/repository"
)

// planCache is a read-through cache in front of a PlanRepository. The daily
// plan is read on every /today call, so the hot (date, user) lookup is kept
// in Redis; entries expire shortly after the next UTC midnight, when the
// plan stops being "today's".
type planCache struct {
	inner  repository.PlanRepository
	client *redislib.Client
	prefix string
}

// NewPlanCache wraps the given repository with a Redis cache. A nil client
// returns the inner repository unchanged.
func NewPlanCache(inner repository.PlanRepository, client *redislib.Client) repository.PlanRepository {
	if client == nil {
		return inner
	}
	return &planCache{
		inner:  inner,
		client: client,
		prefix: "plan:",
	}
}

func (c *planCache) GetByDate(ctx context.Context, userID, date string) (*domain.DailyPlan, error) {
	key := c.key(userID, date)
	if cached, err := c.client.Get(ctx, key).Result(); err == nil {
		var plan domain.DailyPlan
		if err := json.Unmarshal([]byte(cached), &plan); err == nil {
			return &plan, nil
		}
		// Unreadable entry: drop it and fall through to the store.
		_ = c.client.Del(ctx, key).Err()
	}

	plan, err := c.inner.GetByDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}
	c.store(ctx, plan)
	return plan, nil
}

func (c *planCache) Upsert(ctx context.Context, plan *domain.DailyPlan) error {
	if err := c.inner.Upsert(ctx, plan); err != nil {
		return err
	}
	c.store(ctx, plan)
	return nil
}

func (c *planCache) store(ctx context.Context, plan *domain.DailyPlan) {
	if plan == nil {
		return
	}
	payload, err := json.Marshal(plan)
	if err != nil {
		return
	}
	// Best effort: a cache write failure never fails the request.
	_ = c.client.Set(ctx, c.key(plan.UserID, plan.Date), payload, ttlForDate(plan.Date)).Err()
}

func (c *planCache) key(userID, date string) string {
	return fmt.Sprintf("%s%s:%s", c.prefix, userID, date)
}

func ttlForDate(date string) time.Duration {
	day, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return time.Hour
	}
	ttl := time.Until(day.AddDate(0, 0, 1).Add(time.Hour))
	if ttl <= 0 {
		ttl = time.Hour
	}
	return ttl
}
