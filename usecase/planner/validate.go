package planner

import (
	"strings"

	"github.com/Laaxxmm/Pomodoro/domain"
)

const autoCorrectedNote = " (auto-corrected: task IDs were missing or invalid)"

// repairSelection reconciles oracle-selected identifiers against the pool
// actually presented to it. A free-text oracle may invent identifiers or
// substitute task titles for opaque IDs; invalid references must never reach
// the rest of the system.
//
// Each returned identifier is kept if valid, resolved via a case-insensitive
// trimmed title match otherwise, and dropped silently as a last resort. If
// nothing survives, the selection is replaced wholesale with the heuristic
// top picks and the rationale says so.
func repairSelection(tasks []domain.Task, result *RankResult) {
	valid := make(map[string]struct{}, len(tasks))
	byTitle := make(map[string]string, len(tasks))
	for _, t := range tasks {
		valid[t.ID] = struct{}{}
		byTitle[normalizeTitle(t.Title)] = t.ID
	}

	repaired := make([]string, 0, len(result.SelectedTaskIDs))
	for _, id := range result.SelectedTaskIDs {
		if _, ok := valid[id]; ok {
			repaired = append(repaired, id)
			continue
		}
		if resolved, ok := byTitle[normalizeTitle(id)]; ok {
			repaired = append(repaired, resolved)
		}
	}

	if len(repaired) == 0 {
		fallback := heuristicRank(tasks)
		result.SelectedTaskIDs = fallback.SelectedTaskIDs
		for id, score := range fallback.TaskPriorities {
			if _, scored := result.TaskPriorities[id]; !scored {
				result.TaskPriorities[id] = score
			}
		}
		result.Reason += autoCorrectedNote
		return
	}
	result.SelectedTaskIDs = repaired
}

func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
