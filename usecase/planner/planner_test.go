package planner

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Laaxxmm/Pomodoro/domain"
	"github.com/Laaxxmm/Pomodoro/pkg/clock"
	"github.com/Laaxxmm/Pomodoro/repository/memory"
)

const testUser = "user-1"

type stubOracle struct {
	response string
	err      error
	calls    int
}

func (s *stubOracle) Rank(_ context.Context, _, _ string) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

type fixture struct {
	tasks    *memory.TaskRepository
	plans    *memory.PlanRepository
	settings *memory.SettingsRepository
	uc       *UseCase
}

func newFixture(t *testing.T, oracle Oracle) *fixture {
	t.Helper()
	f := &fixture{
		tasks:    memory.NewTaskRepository(),
		plans:    memory.NewPlanRepository(),
		settings: memory.NewSettingsRepository(),
	}
	clk := clock.Fixed{Instant: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	f.uc = New(f.tasks, f.plans, f.settings, oracle, nil, clk, nil)
	return f
}

func (f *fixture) seed(t *testing.T, task domain.Task) {
	t.Helper()
	task.UserID = testUser
	if task.ScheduledDate == "" {
		task.ScheduledDate = "2026-03-10"
	}
	if _, err := f.tasks.Create(context.Background(), &task); err != nil {
		t.Fatalf("seed task %s: %v", task.ID, err)
	}
}

func (f *fixture) seedPool(t *testing.T) {
	t.Helper()
	f.seed(t, domain.Task{ID: "t1", Title: "Write report", Deadline: "2026-03-11"})
	f.seed(t, domain.Task{ID: "t2", Title: "Review PR", Deadline: "2026-03-12"})
	f.seed(t, domain.Task{ID: "t3", Title: "Plan sprint", Deadline: "2026-03-13"})
	f.seed(t, domain.Task{ID: "t4", Title: "Clean inbox"})
	f.seed(t, domain.Task{ID: "t5", Title: "Read paper"})
}

func TestTodayEmptyPool(t *testing.T) {
	oracle := &stubOracle{}
	f := newFixture(t, oracle)

	result, err := f.uc.Today(context.Background(), testUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(result.Tasks))
	}
	if result.Reason != "No tasks to prioritize" {
		t.Fatalf("reason %q", result.Reason)
	}
	if oracle.calls != 0 {
		t.Fatalf("oracle called %d times for an empty pool", oracle.calls)
	}
	if f.plans.Len() != 0 {
		t.Fatal("no plan should be persisted for an empty pool")
	}
}

func TestTodayIsIdempotent(t *testing.T) {
	oracle := &stubOracle{response: `{"selected_task_ids": ["t1", "t2"], "reason": "Deadlines first"}`}
	f := newFixture(t, oracle)
	f.seedPool(t)

	first, err := f.uc.Today(context.Background(), testUser)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := f.uc.Today(context.Background(), testUser)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if oracle.calls != 1 {
		t.Fatalf("oracle called %d times, want 1", oracle.calls)
	}
	if first.PlanID == "" || first.PlanID != second.PlanID {
		t.Fatalf("plan identity changed between calls: %q vs %q", first.PlanID, second.PlanID)
	}
	if len(first.Tasks) != len(second.Tasks) {
		t.Fatalf("selections differ: %d vs %d tasks", len(first.Tasks), len(second.Tasks))
	}
	for i := range first.Tasks {
		if first.Tasks[i].ID != second.Tasks[i].ID {
			t.Fatalf("selection order changed at %d: %q vs %q", i, first.Tasks[i].ID, second.Tasks[i].ID)
		}
	}
}

func TestReprioritizeReplacesPlan(t *testing.T) {
	oracle := &stubOracle{response: `{"selected_task_ids": ["t1"], "reason": "First pass"}`}
	f := newFixture(t, oracle)
	f.seedPool(t)

	first, err := f.uc.Reprioritize(context.Background(), testUser)
	if err != nil {
		t.Fatalf("first reprioritize: %v", err)
	}

	oracle.response = `{"selected_task_ids": ["t2", "t3"], "reason": "Second pass"}`
	second, err := f.uc.Reprioritize(context.Background(), testUser)
	if err != nil {
		t.Fatalf("second reprioritize: %v", err)
	}

	if f.plans.Len() != 1 {
		t.Fatalf("expected one plan row per (user, date), got %d", f.plans.Len())
	}
	if first.PlanID == second.PlanID {
		t.Fatal("reprioritize should mint a new plan ID")
	}
	stored, err := f.plans.GetByDate(context.Background(), testUser, "2026-03-10")
	if err != nil {
		t.Fatalf("load stored plan: %v", err)
	}
	if stored.ID != second.PlanID || stored.Reason != "Second pass" {
		t.Fatalf("stored plan does not reflect the latest pass: %+v", stored)
	}
	if len(stored.TaskIDs) != 2 {
		t.Fatalf("stored selection %v", stored.TaskIDs)
	}
}

func TestReprioritizeWithoutOracle(t *testing.T) {
	f := newFixture(t, nil)
	f.seedPool(t)

	result, err := f.uc.Reprioritize(context.Background(), testUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Tasks) != 4 {
		t.Fatalf("selected %d tasks, want 4 of the 5", len(result.Tasks))
	}
	if !strings.Contains(result.Reason, "AI unavailable") {
		t.Fatalf("rationale should say the fallback was used, got %q", result.Reason)
	}

	// t1-t3 have ascending deadlines, t4/t5 are undated; ties break by pool order.
	want := []string{"t1", "t2", "t3", "t4"}
	wantScores := []int{100, 80, 60, 40}
	for i, id := range want {
		if result.Tasks[i].ID != id {
			t.Fatalf("position %d: got %q, want %q", i, result.Tasks[i].ID, id)
		}
		if result.Tasks[i].PriorityScore != wantScores[i] {
			t.Fatalf("task %q: score %d, want %d", id, result.Tasks[i].PriorityScore, wantScores[i])
		}
	}

	stored, err := f.tasks.GetByID(context.Background(), "t1")
	if err != nil {
		t.Fatalf("load t1: %v", err)
	}
	if stored.PriorityScore != 100 || stored.PriorityReason != "Priority #1" {
		t.Fatalf("score not persisted on the task: %d %q", stored.PriorityScore, stored.PriorityReason)
	}
}

func TestReprioritizeOracleCallFailure(t *testing.T) {
	oracle := &stubOracle{err: errors.New("connection refused: upstream LLM endpoint is not accepting requests at the moment")}
	f := newFixture(t, oracle)
	f.seedPool(t)

	result, err := f.uc.Reprioritize(context.Background(), testUser)
	if err != nil {
		t.Fatalf("oracle failure must not fail the request: %v", err)
	}
	if len(result.Tasks) != 4 {
		t.Fatalf("fallback should still select 4 tasks, got %d", len(result.Tasks))
	}
	if !strings.HasPrefix(result.Reason, "Prioritized by deadline (AI error: ") {
		t.Fatalf("rationale %q", result.Reason)
	}
	if len(result.Reason) > len("Prioritized by deadline (AI error: )")+50 {
		t.Fatalf("error detail should be truncated to 50 characters, got %q", result.Reason)
	}
}

func TestReprioritizeOracleParseFailure(t *testing.T) {
	oracle := &stubOracle{response: "Sorry, I can only answer questions about cooking."}
	f := newFixture(t, oracle)
	f.seedPool(t)

	result, err := f.uc.Reprioritize(context.Background(), testUser)
	if err != nil {
		t.Fatalf("unparseable response must not fail the request: %v", err)
	}
	if result.Reason != "Prioritized by deadline and urgency" {
		t.Fatalf("rationale %q", result.Reason)
	}
	if len(result.Tasks) != 4 {
		t.Fatalf("fallback should still select 4 tasks, got %d", len(result.Tasks))
	}
}

func TestReprioritizePersistsUnselectedScores(t *testing.T) {
	oracle := &stubOracle{response: `{
		"selected_task_ids": ["t2", "t1"],
		"reason": "Reviews unblock others",
		"task_priorities": {
			"t2": {"score": 95, "reason": "Unblocks the team"},
			"t1": {"score": 85, "reason": "Due tomorrow"},
			"t5": {"score": 20, "reason": "Can wait"}
		}
	}`}
	f := newFixture(t, oracle)
	f.seedPool(t)

	result, err := f.uc.Reprioritize(context.Background(), testUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Tasks) != 2 || result.Tasks[0].ID != "t2" || result.Tasks[1].ID != "t1" {
		t.Fatalf("selection should follow oracle scores: %+v", result.Tasks)
	}
	if result.Reason != "Reviews unblock others" {
		t.Fatalf("rationale %q", result.Reason)
	}

	// t5 was scored but not selected; its score still lands on the task.
	unselected, err := f.tasks.GetByID(context.Background(), "t5")
	if err != nil {
		t.Fatalf("load t5: %v", err)
	}
	if unselected.PriorityScore != 20 || unselected.PriorityReason != "Can wait" {
		t.Fatalf("unselected score not persisted: %d %q", unselected.PriorityScore, unselected.PriorityReason)
	}
}

func TestReprioritizeHonorsDailyTaskLimit(t *testing.T) {
	f := newFixture(t, nil)
	f.seedPool(t)

	settings, err := f.settings.Get(context.Background(), testUser)
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	settings.DailyTaskLimit = 2
	if _, err := f.settings.Update(context.Background(), settings); err != nil {
		t.Fatalf("update settings: %v", err)
	}

	result, err := f.uc.Reprioritize(context.Background(), testUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Tasks) != 2 {
		t.Fatalf("selected %d tasks, want limit of 2", len(result.Tasks))
	}
}

func TestTodayExcludesCompletedSincePlan(t *testing.T) {
	f := newFixture(t, nil)
	f.seedPool(t)

	first, err := f.uc.Today(context.Background(), testUser)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	if len(first.Tasks) != 4 {
		t.Fatalf("expected 4 planned tasks, got %d", len(first.Tasks))
	}

	completedID := first.Tasks[0].ID
	if err := f.tasks.MarkCompleted(context.Background(), completedID, time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC), 0); err != nil {
		t.Fatalf("complete task: %v", err)
	}

	second, err := f.uc.Today(context.Background(), testUser)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if second.PlanID != first.PlanID {
		t.Fatal("completing a task must not trigger a new plan")
	}
	if len(second.Tasks) != 3 {
		t.Fatalf("expected 3 remaining tasks, got %d", len(second.Tasks))
	}
	for _, task := range second.Tasks {
		if task.ID == completedID {
			t.Fatalf("completed task %q still in the selection", completedID)
		}
	}
}

func TestRollover(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t, domain.Task{ID: "overdue", Title: "Overdue", ScheduledDate: "2026-03-08", RolloverCount: 1})
	f.seed(t, domain.Task{ID: "today-a", Title: "Today A", ScheduledDate: "2026-03-10"})
	f.seed(t, domain.Task{ID: "today-b", Title: "Today B", ScheduledDate: "2026-03-10"})
	f.seed(t, domain.Task{ID: "tomorrow", Title: "Tomorrow", ScheduledDate: "2026-03-11"})

	result, err := f.uc.Rollover(context.Background(), testUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RolledOver != 3 {
		t.Fatalf("rolled over %d tasks, want 3", result.RolledOver)
	}
	if result.NewDate != "2026-03-11" {
		t.Fatalf("new date %q", result.NewDate)
	}

	rolled, err := f.tasks.GetByID(context.Background(), "overdue")
	if err != nil {
		t.Fatalf("load overdue: %v", err)
	}
	if rolled.ScheduledDate != "2026-03-11" || rolled.RolloverCount != 2 {
		t.Fatalf("overdue task not rolled: date %q count %d", rolled.ScheduledDate, rolled.RolloverCount)
	}

	untouched, err := f.tasks.GetByID(context.Background(), "tomorrow")
	if err != nil {
		t.Fatalf("load tomorrow: %v", err)
	}
	if untouched.ScheduledDate != "2026-03-11" || untouched.RolloverCount != 0 {
		t.Fatalf("future task was touched: date %q count %d", untouched.ScheduledDate, untouched.RolloverCount)
	}
}

func TestRolloverSkipsCompleted(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t, domain.Task{ID: "done", Title: "Done", ScheduledDate: "2026-03-09"})
	if err := f.tasks.MarkCompleted(context.Background(), "done", time.Date(2026, 3, 9, 18, 0, 0, 0, time.UTC), 0); err != nil {
		t.Fatalf("complete task: %v", err)
	}

	result, err := f.uc.Rollover(context.Background(), testUser)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.RolledOver != 0 {
		t.Fatalf("completed tasks must not roll over, got %d", result.RolledOver)
	}
}

// failingPriorityRepo simulates a store that accepts reads but rejects
// score writes, the situation the retry buffer exists for.
type failingPriorityRepo struct {
	*memory.TaskRepository
	writeErr error
}

func (r *failingPriorityRepo) SetPriority(_ context.Context, _ string, _ int, _ string) error {
	return r.writeErr
}

type recordingBuffer struct {
	entries map[string]int
}

func (b *recordingBuffer) BufferPriority(_ context.Context, _, taskID string, score int, _ string) error {
	if b.entries == nil {
		b.entries = make(map[string]int)
	}
	b.entries[taskID] = score
	return nil
}

func TestReprioritizeBuffersFailedScoreWrites(t *testing.T) {
	tasks := &failingPriorityRepo{
		TaskRepository: memory.NewTaskRepository(),
		writeErr:       errors.New("write refused"),
	}
	plans := memory.NewPlanRepository()
	settings := memory.NewSettingsRepository()
	buffer := &recordingBuffer{}
	clk := clock.Fixed{Instant: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	uc := New(tasks, plans, settings, nil, buffer, clk, nil)

	for _, id := range []string{"t1", "t2"} {
		task := domain.Task{ID: id, UserID: testUser, Title: id, ScheduledDate: "2026-03-10"}
		if _, err := tasks.Create(context.Background(), &task); err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}

	result, err := uc.Reprioritize(context.Background(), testUser)
	if err != nil {
		t.Fatalf("buffered writes must not fail the request: %v", err)
	}
	if len(result.Tasks) != 2 {
		t.Fatalf("selection should survive buffering, got %d tasks", len(result.Tasks))
	}
	if len(buffer.entries) != 2 {
		t.Fatalf("buffered %d writes, want 2", len(buffer.entries))
	}
	for id, score := range buffer.entries {
		if score != 100 && score != 80 {
			t.Fatalf("task %q buffered with score %d", id, score)
		}
	}
}
