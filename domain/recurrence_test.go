package domain

import (
	"testing"
	"time"
)

func TestNextOccurrence(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		rule Recurrence
		from string
		want string
	}{
		{"daily", Recurrence{Frequency: RecurDaily, Interval: 1}, "2026-03-10", "2026-03-11"},
		{"every third day", Recurrence{Frequency: RecurDaily, Interval: 3}, "2026-03-10", "2026-03-13"},
		{"weekly", Recurrence{Frequency: RecurWeekly, Interval: 1}, "2026-03-10", "2026-03-17"},
		{"biweekly", Recurrence{Frequency: RecurWeekly, Interval: 2}, "2026-03-10", "2026-03-24"},
		{"monthly", Recurrence{Frequency: RecurMonthly, Interval: 1}, "2026-03-10", "2026-04-10"},
		{"month boundary", Recurrence{Frequency: RecurDaily, Interval: 1}, "2026-03-31", "2026-04-01"},
		{"zero interval treated as one", Recurrence{Frequency: RecurDaily}, "2026-03-10", "2026-03-11"},
		{"unknown frequency falls back to daily", Recurrence{Frequency: "hourly", Interval: 1}, "2026-03-10", "2026-03-11"},
	}
	for _, tc := range cases {
		if got := tc.rule.NextOccurrence(tc.from, now); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestNextOccurrenceMalformedBase(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	rule := Recurrence{Frequency: RecurDaily, Interval: 1}

	if got := rule.NextOccurrence("not-a-date", now); got != "2026-03-11" {
		t.Fatalf("malformed base should fall back to today, got %q", got)
	}
}

func TestSpawnNext(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	completed := &Task{
		ID:               "t1",
		UserID:           "user-1",
		Title:            "Weekly review",
		Description:      "Go over the board",
		EstimatedMinutes: 30,
		Category:         "work",
		Origin:           OriginManual,
		ScheduledDate:    "2026-03-10",
		RolloverCount:    3,
		Recurrence:       &Recurrence{Frequency: RecurWeekly, Interval: 1},
	}

	next := completed.Recurrence.SpawnNext(completed, "t2", now)
	if next == nil {
		t.Fatal("expected a follow-up task")
	}
	if next.ID != "t2" || next.UserID != "user-1" || next.Title != "Weekly review" {
		t.Fatalf("identity fields not carried: %+v", next)
	}
	if next.ScheduledDate != "2026-03-17" {
		t.Fatalf("scheduled %q, want next week", next.ScheduledDate)
	}
	if next.Origin != OriginRecurring {
		t.Fatalf("origin %q", next.Origin)
	}
	if next.RolloverCount != 0 || next.Completed {
		t.Fatalf("follow-up must start fresh: %+v", next)
	}
	if next.Recurrence == completed.Recurrence {
		t.Fatal("recurrence rule must be copied, not shared")
	}
}

func TestSpawnNextNilRule(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	task := &Task{ID: "t1", Title: "One-off"}

	if next := task.Recurrence.SpawnNext(task, "t2", now); next != nil {
		t.Fatalf("nil rule spawned %+v", next)
	}
}
