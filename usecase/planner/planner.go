package planner

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Laaxxmm/Pomodoro/domain"
	"github.com/Laaxxmm/Pomodoro/pkg/clock"
	"github.com/Laaxxmm/Pomodoro/repository"
)

// PriorityBuffer absorbs score writes that fail against the primary store.
// Score updates are idempotent, so retrying them later is always safe.
type PriorityBuffer interface {
	BufferPriority(ctx context.Context, userID, taskID string, score int, reason string) error
}

// TodayResult is the daily selection returned to the presentation layer.
type TodayResult struct {
	Date   string        `json:"date"`
	Tasks  []domain.Task `json:"tasks"`
	Reason string        `json:"reason"`
	PlanID string        `json:"plan_id,omitempty"`
}

// RolloverResult reports a forward migration of unfinished tasks.
type RolloverResult struct {
	RolledOver int    `json:"rolled_over"`
	NewDate    string `json:"new_date"`
}

const poolLimit = 100

// UseCase owns the select-today's-tasks workflow: plan lookup-or-create,
// ranking with fallback, score persistence and rollover. The store is the
// only synchronization point; concurrent prioritizations for the same day
// are resolved last-write-wins by the plan upsert.
type UseCase struct {
	tasks    repository.TaskRepository
	plans    repository.PlanRepository
	settings repository.SettingsRepository
	oracle   Oracle
	buffer   PriorityBuffer
	clock    clock.Clock
	logger   *zap.Logger
}

func New(
	tasks repository.TaskRepository,
	plans repository.PlanRepository,
	settings repository.SettingsRepository,
	oracle Oracle,
	buffer PriorityBuffer,
	clk clock.Clock,
	logger *zap.Logger,
) *UseCase {
	if clk == nil {
		clk = clock.System()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:    tasks,
		plans:    plans,
		settings: settings,
		oracle:   oracle,
		buffer:   buffer,
		clock:    clk,
		logger:   logger,
	}
}

// Today returns the selection for the current date, creating a plan on the
// first call of the day. Repeat calls are idempotent: once a plan exists it
// is served as-is, without re-ranking.
func (uc *UseCase) Today(ctx context.Context, userID string) (*TodayResult, error) {
	today := uc.clock.Today()

	plan, err := uc.plans.GetByDate(ctx, userID, today)
	if err == nil {
		return uc.resultFromPlan(ctx, today, plan)
	}
	if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "loading daily plan", err)
	}
	return uc.Reprioritize(ctx, userID)
}

// Reprioritize always re-runs ranking and overwrites the plan for today.
// Ranking degradation is never an error: oracle failures fall back to the
// heuristic and are reported through the rationale text only.
func (uc *UseCase) Reprioritize(ctx context.Context, userID string) (*TodayResult, error) {
	today := uc.clock.Today()

	settings, err := uc.settings.Get(ctx, userID)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "loading settings", err)
	}

	incomplete := false
	pool, err := uc.tasks.List(ctx, repository.TaskFilter{
		UserID:    userID,
		Completed: &incomplete,
		Limit:     poolLimit,
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "loading task pool", err)
	}
	if len(pool) == 0 {
		return &TodayResult{
			Date:   today,
			Tasks:  []domain.Task{},
			Reason: "No tasks to prioritize",
		}, nil
	}

	result := uc.rank(ctx, today, pool)

	// Persist scores for every task the ranking touched, selected or not.
	// These writes are idempotent; a failed one is buffered for retry and
	// never fails the whole request.
	for id, priority := range result.TaskPriorities {
		if err := uc.tasks.SetPriority(ctx, id, priority.Score, priority.Reason); err != nil {
			uc.bufferPriority(ctx, userID, id, priority, err)
		}
	}

	limit := settings.DailyTaskLimit
	if limit <= 0 {
		limit = maxSelection
	}
	selected := result.SelectedTaskIDs
	if len(selected) > limit {
		selected = selected[:limit]
	}

	plan := &domain.DailyPlan{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      today,
		TaskIDs:   selected,
		Reason:    result.Reason,
		CreatedAt: uc.clock.Now(),
	}
	if err := uc.plans.Upsert(ctx, plan); err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "persisting daily plan", err)
	}

	uc.logger.Info("daily plan created",
		zap.String("user_id", userID),
		zap.String("date", today),
		zap.Int("pool", len(pool)),
		zap.Int("selected", len(selected)))

	return uc.resultFromPlan(ctx, today, plan)
}

// Rollover pushes every incomplete task scheduled on or before today to
// tomorrow and bumps its rollover count. Running it twice in one day rolls
// tasks forward twice; callers are expected to trigger it once per day.
func (uc *UseCase) Rollover(ctx context.Context, userID string) (*RolloverResult, error) {
	today := uc.clock.Today()
	tomorrow := domain.NextDate(today, 1)

	count, err := uc.tasks.RolloverDue(ctx, userID, today, tomorrow)
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "rolling over tasks", err)
	}

	uc.logger.Info("rollover completed",
		zap.String("user_id", userID),
		zap.Int("rolled_over", count),
		zap.String("new_date", tomorrow))

	return &RolloverResult{RolledOver: count, NewDate: tomorrow}, nil
}

// rank runs the oracle -> validator chain and degrades to the heuristic on
// any failure, recording the cause in the rationale.
func (uc *UseCase) rank(ctx context.Context, today string, pool []domain.Task) RankResult {
	if uc.oracle == nil {
		return heuristicRank(pool)
	}

	raw, err := uc.oracle.Rank(ctx, rankInstruction, buildTaskListing(today, pool))
	if err != nil {
		uc.logger.Warn("oracle call failed, using heuristic ranking", zap.Error(err))
		result := heuristicRank(pool)
		result.Reason = fmt.Sprintf("Prioritized by deadline (AI error: %s)", truncateError(err, 50))
		return result
	}

	parsed, ok := parseRankResponse(raw)
	if !ok {
		uc.logger.Warn("oracle response unparseable, using heuristic ranking",
			zap.Int("response_len", len(raw)))
		result := heuristicRank(pool)
		result.Reason = "Prioritized by deadline and urgency"
		return result
	}

	repairSelection(pool, parsed)
	return *parsed
}

// resultFromPlan fetches the plan's still-incomplete members and orders them
// by score. Tasks completed or deleted since the plan was made are silently
// excluded.
func (uc *UseCase) resultFromPlan(ctx context.Context, today string, plan *domain.DailyPlan) (*TodayResult, error) {
	result := &TodayResult{
		Date:   today,
		Tasks:  []domain.Task{},
		Reason: plan.Reason,
		PlanID: plan.ID,
	}
	if len(plan.TaskIDs) == 0 {
		return result, nil
	}

	incomplete := false
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{
		UserID:    plan.UserID,
		Completed: &incomplete,
		IDs:       plan.TaskIDs,
		Limit:     len(plan.TaskIDs),
	})
	if err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable, "loading planned tasks", err)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].PriorityScore > tasks[j].PriorityScore
	})
	result.Tasks = tasks
	return result, nil
}

func (uc *UseCase) bufferPriority(ctx context.Context, userID, taskID string, priority TaskScore, cause error) {
	if domain.IsDomainError(cause, domain.ErrCodeNotFound) {
		// The oracle may score a task deleted mid-flight; nothing to retry.
		return
	}
	if uc.buffer == nil {
		uc.logger.Warn("priority write failed", zap.String("task_id", taskID), zap.Error(cause))
		return
	}
	if err := uc.buffer.BufferPriority(ctx, userID, taskID, priority.Score, priority.Reason); err != nil {
		uc.logger.Error("failed to buffer priority write",
			zap.String("task_id", taskID), zap.Error(err))
		return
	}
	uc.logger.Warn("priority write buffered", zap.String("task_id", taskID), zap.Error(cause))
}
