package planner

import (
	"errors"
	"strings"
	"testing"

	"github.com/Laaxxmm/Pomodoro/domain"
)

func TestParseRankResponsePlainJSON(t *testing.T) {
	raw := `{"selected_task_ids": ["t1", "t2"], "reason": "Deadlines first", "task_priorities": {"t1": {"score": 95, "reason": "Due today"}}}`

	result, ok := parseRankResponse(raw)
	if !ok {
		t.Fatal("expected successful parse")
	}
	if len(result.SelectedTaskIDs) != 2 || result.SelectedTaskIDs[0] != "t1" {
		t.Fatalf("unexpected selection: %v", result.SelectedTaskIDs)
	}
	if result.Reason != "Deadlines first" {
		t.Fatalf("reason %q", result.Reason)
	}
	if result.TaskPriorities["t1"].Score != 95 {
		t.Fatalf("score %d, want 95", result.TaskPriorities["t1"].Score)
	}
}

func TestParseRankResponseWithProse(t *testing.T) {
	raw := `Here is my analysis of your tasks.

{"selected_task_ids": ["t1"], "reason": "One urgent task"}

Let me know if you need anything else.`

	result, ok := parseRankResponse(raw)
	if !ok {
		t.Fatal("expected parse to tolerate surrounding prose")
	}
	if len(result.SelectedTaskIDs) != 1 || result.SelectedTaskIDs[0] != "t1" {
		t.Fatalf("unexpected selection: %v", result.SelectedTaskIDs)
	}
}

func TestParseRankResponseWithCodeFence(t *testing.T) {
	raw := "```json\n{\"selected_task_ids\": [\"t1\", \"t2\"], \"reason\": \"Fenced\"}\n```"

	result, ok := parseRankResponse(raw)
	if !ok {
		t.Fatal("expected parse to tolerate a code fence")
	}
	if len(result.SelectedTaskIDs) != 2 {
		t.Fatalf("unexpected selection: %v", result.SelectedTaskIDs)
	}
}

func TestParseRankResponseDefaults(t *testing.T) {
	result, ok := parseRankResponse(`{"selected_task_ids": []}`)
	if !ok {
		t.Fatal("empty selection with the key present should parse")
	}
	if result.Reason != "Prioritized by AI" {
		t.Fatalf("missing reason should default, got %q", result.Reason)
	}
	if result.TaskPriorities == nil {
		t.Fatal("task priorities map should never be nil")
	}
}

func TestParseRankResponseFailures(t *testing.T) {
	cases := map[string]string{
		"no json at all":   "I cannot rank these tasks right now.",
		"missing key":      `{"reason": "no selection here"}`,
		"malformed json":   `{"selected_task_ids": ["t1",}`,
		"empty response":   "",
		"wrong value type": `{"selected_task_ids": "t1"}`,
	}
	for name, raw := range cases {
		if _, ok := parseRankResponse(raw); ok {
			t.Fatalf("%s: expected parse failure for %q", name, raw)
		}
	}
}

func TestBuildTaskListing(t *testing.T) {
	tasks := []domain.Task{
		{ID: "t1", Title: "Ship release", Deadline: "2026-03-11", EstimatedMinutes: 60,
			Category: "work", Origin: domain.OriginManual, RolloverCount: 2,
			Description: strings.Repeat("x", 150)},
		{ID: "t2", Title: "Water plants", EstimatedMinutes: 10, Category: "home",
			Origin: domain.OriginRecurring},
	}

	listing := buildTaskListing("2026-03-10", tasks)

	if !strings.Contains(listing, "Today's date: 2026-03-10") {
		t.Fatal("listing should carry today's date")
	}
	if !strings.Contains(listing, "ID: t1, Title: Ship release, Deadline: 2026-03-11") {
		t.Fatalf("listing missing first task line:\n%s", listing)
	}
	if !strings.Contains(listing, "Deadline: None") {
		t.Fatal("undated task should show Deadline: None")
	}
	if strings.Contains(listing, strings.Repeat("x", 101)) {
		t.Fatal("description should be truncated to 100 characters")
	}
}

func TestTruncateError(t *testing.T) {
	err := errors.New(strings.Repeat("a", 80))
	if got := truncateError(err, 50); len(got) != 50 {
		t.Fatalf("truncated to %d characters, want 50", len(got))
	}
	short := errors.New("timeout")
	if got := truncateError(short, 50); got != "timeout" {
		t.Fatalf("short message should pass through, got %q", got)
	}
}
