package planner

import (
	"strings"
	"testing"

	"github.com/Laaxxmm/Pomodoro/domain"
)

func repairPool() []domain.Task {
	return []domain.Task{
		{ID: "t1", Title: "Write report", Deadline: "2026-03-11"},
		{ID: "t2", Title: "Review PR", Deadline: "2026-03-12"},
		{ID: "t3", Title: "Plan sprint", Deadline: "2026-03-13"},
		{ID: "t4", Title: "Clean inbox"},
		{ID: "t5", Title: "Read paper"},
	}
}

func TestRepairSelectionMixedReferences(t *testing.T) {
	result := &RankResult{
		SelectedTaskIDs: []string{"t1", "Review PR", "totally-made-up"},
		Reason:          "Deadlines first",
		TaskPriorities:  map[string]TaskScore{},
	}

	repairSelection(repairPool(), result)

	want := []string{"t1", "t2"}
	if len(result.SelectedTaskIDs) != len(want) {
		t.Fatalf("got %v, want %v", result.SelectedTaskIDs, want)
	}
	for i, id := range want {
		if result.SelectedTaskIDs[i] != id {
			t.Fatalf("position %d: got %q, want %q", i, result.SelectedTaskIDs[i], id)
		}
	}
	if strings.Contains(result.Reason, "auto-corrected") {
		t.Fatalf("partial repair should not flag the rationale, got %q", result.Reason)
	}
}

func TestRepairSelectionTitleMatchIsForgiving(t *testing.T) {
	result := &RankResult{
		SelectedTaskIDs: []string{"  review pr  "},
		TaskPriorities:  map[string]TaskScore{},
	}

	repairSelection(repairPool(), result)

	if len(result.SelectedTaskIDs) != 1 || result.SelectedTaskIDs[0] != "t2" {
		t.Fatalf("case and whitespace should not matter, got %v", result.SelectedTaskIDs)
	}
}

func TestRepairSelectionTotalFailureFallsBack(t *testing.T) {
	pool := repairPool()
	result := &RankResult{
		SelectedTaskIDs: []string{"nope-1", "nope-2"},
		Reason:          "Confidently wrong",
		TaskPriorities: map[string]TaskScore{
			"t5": {Score: 42, Reason: "Oracle scored this one"},
		},
	}

	repairSelection(pool, result)

	fallback := heuristicRank(pool)
	if len(result.SelectedTaskIDs) != len(fallback.SelectedTaskIDs) {
		t.Fatalf("got %v, want heuristic picks %v", result.SelectedTaskIDs, fallback.SelectedTaskIDs)
	}
	for i, id := range fallback.SelectedTaskIDs {
		if result.SelectedTaskIDs[i] != id {
			t.Fatalf("position %d: got %q, want %q", i, result.SelectedTaskIDs[i], id)
		}
	}
	if !strings.HasSuffix(result.Reason, autoCorrectedNote) {
		t.Fatalf("rationale should record the correction, got %q", result.Reason)
	}
	// Scores the oracle did produce survive the fallback merge.
	if result.TaskPriorities["t5"].Score != 42 {
		t.Fatalf("existing score was overwritten: %+v", result.TaskPriorities["t5"])
	}
}

func TestRepairSelectionValidIDsUntouched(t *testing.T) {
	result := &RankResult{
		SelectedTaskIDs: []string{"t3", "t1"},
		TaskPriorities:  map[string]TaskScore{},
	}

	repairSelection(repairPool(), result)

	if result.SelectedTaskIDs[0] != "t3" || result.SelectedTaskIDs[1] != "t1" {
		t.Fatalf("valid selection should keep oracle order, got %v", result.SelectedTaskIDs)
	}
}
