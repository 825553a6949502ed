package planner

import (
	"fmt"
	"sort"

	"github.com/Laaxxmm/Pomodoro/domain"
)

// maxSelection caps how many tasks a ranking pass may surface for one day.
const maxSelection = 4

const reasonAIUnavailable = "Prioritized by deadline and urgency (AI unavailable)"

// heuristicRank is the deterministic fallback ranking. Tasks are ordered by
// rollover count (most postponed first), then deadline (undated last), then
// estimated minutes (largest first); the top four get scores 100, 80, 60, 40.
// It never fails for a non-empty pool.
func heuristicRank(tasks []domain.Task) RankResult {
	sorted := make([]domain.Task, len(tasks))
	copy(sorted, tasks)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].RolloverCount != sorted[j].RolloverCount {
			return sorted[i].RolloverCount > sorted[j].RolloverCount
		}
		di, dj := sorted[i].DeadlineOrSentinel(), sorted[j].DeadlineOrSentinel()
		if di != dj {
			return di < dj
		}
		return sorted[i].EstimatedMinutes > sorted[j].EstimatedMinutes
	})

	if len(sorted) > maxSelection {
		sorted = sorted[:maxSelection]
	}

	result := RankResult{
		Reason:         reasonAIUnavailable,
		TaskPriorities: make(map[string]TaskScore, len(sorted)),
	}
	for i, task := range sorted {
		result.SelectedTaskIDs = append(result.SelectedTaskIDs, task.ID)
		result.TaskPriorities[task.ID] = TaskScore{
			Score:  100 - i*20,
			Reason: fmt.Sprintf("Priority #%d", i+1),
		}
	}
	return result
}
