package pomodoro

import (
	"context"
	"testing"
	"time"

	"github.com/Laaxxmm/Pomodoro/domain"
	"github.com/Laaxxmm/Pomodoro/pkg/clock"
	"github.com/Laaxxmm/Pomodoro/repository/memory"
)

const testUser = "user-1"

type fixture struct {
	sessions *memory.SessionRepository
	tasks    *memory.TaskRepository
	uc       *UseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		sessions: memory.NewSessionRepository(),
		tasks:    memory.NewTaskRepository(),
	}
	clk := clock.Fixed{Instant: time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)}
	f.uc = New(f.sessions, f.tasks, clk, nil)

	task := domain.Task{ID: "t1", UserID: testUser, Title: "Write report"}
	if _, err := f.tasks.Create(context.Background(), &task); err != nil {
		t.Fatalf("seed task: %v", err)
	}
	return f
}

func (f *fixture) completeSession(t *testing.T, kind domain.SessionKind, durationSeconds int) {
	t.Helper()
	session, err := f.uc.Start(context.Background(), testUser, "t1", kind)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if _, err := f.uc.Complete(context.Background(), session.ID, durationSeconds); err != nil {
		t.Fatalf("complete session: %v", err)
	}
}

func TestWorkSessionsAccumulateOnTask(t *testing.T) {
	f := newFixture(t)

	f.completeSession(t, domain.SessionWork, 1500)
	f.completeSession(t, domain.SessionWork, 900)

	task, err := f.tasks.GetByID(context.Background(), "t1")
	if err != nil {
		t.Fatalf("load task: %v", err)
	}
	if task.TimeSpentSeconds != 2400 {
		t.Fatalf("accumulated %d seconds, want 2400", task.TimeSpentSeconds)
	}
}

func TestBreakSessionsDoNotAccumulate(t *testing.T) {
	f := newFixture(t)

	f.completeSession(t, domain.SessionShortBreak, 300)
	f.completeSession(t, domain.SessionLongBreak, 900)

	task, err := f.tasks.GetByID(context.Background(), "t1")
	if err != nil {
		t.Fatalf("load task: %v", err)
	}
	if task.TimeSpentSeconds != 0 {
		t.Fatalf("break time leaked onto the task: %d seconds", task.TimeSpentSeconds)
	}
	if task.StartedAt != nil {
		t.Fatal("break sessions must not stamp the task start")
	}
}

func TestFirstWorkSessionStampsTaskStart(t *testing.T) {
	f := newFixture(t)

	if _, err := f.uc.Start(context.Background(), testUser, "t1", domain.SessionWork); err != nil {
		t.Fatalf("start session: %v", err)
	}

	task, err := f.tasks.GetByID(context.Background(), "t1")
	if err != nil {
		t.Fatalf("load task: %v", err)
	}
	if task.StartedAt == nil {
		t.Fatal("work session should stamp started_at")
	}
	first := *task.StartedAt

	if _, err := f.uc.Start(context.Background(), testUser, "t1", domain.SessionWork); err != nil {
		t.Fatalf("second start: %v", err)
	}
	task, _ = f.tasks.GetByID(context.Background(), "t1")
	if !task.StartedAt.Equal(first) {
		t.Fatal("repeated starts must keep the original timestamp")
	}
}

func TestStartUnknownTask(t *testing.T) {
	f := newFixture(t)

	if _, err := f.uc.Start(context.Background(), testUser, "missing", domain.SessionWork); err == nil {
		t.Fatal("expected an error for an unknown task")
	}
}

func TestStartDefaultsToWork(t *testing.T) {
	f := newFixture(t)

	session, err := f.uc.Start(context.Background(), testUser, "t1", "")
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if session.Kind != domain.SessionWork {
		t.Fatalf("kind %q, want work", session.Kind)
	}
}

func TestTodayStats(t *testing.T) {
	f := newFixture(t)

	f.completeSession(t, domain.SessionWork, 1500)
	f.completeSession(t, domain.SessionWork, 900)
	f.completeSession(t, domain.SessionShortBreak, 300)

	// An in-flight session does not count.
	if _, err := f.uc.Start(context.Background(), testUser, "t1", domain.SessionWork); err != nil {
		t.Fatalf("start session: %v", err)
	}

	stats, err := f.uc.TodayStats(context.Background(), testUser)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TodaySessions != 2 {
		t.Fatalf("counted %d sessions, want 2 completed work sessions", stats.TodaySessions)
	}
	if stats.TodayFocusMinutes != 40 {
		t.Fatalf("focus minutes %d, want 40", stats.TodayFocusMinutes)
	}
}

func TestNegativeDurationClampedToZero(t *testing.T) {
	f := newFixture(t)

	session, err := f.uc.Start(context.Background(), testUser, "t1", domain.SessionWork)
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	completed, err := f.uc.Complete(context.Background(), session.ID, -120)
	if err != nil {
		t.Fatalf("complete session: %v", err)
	}
	if completed.DurationSeconds != 0 {
		t.Fatalf("duration %d, want 0", completed.DurationSeconds)
	}
}
