package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Laaxxmm/Pomodoro/domain"
)

// Oracle is the external ranking service. It takes a fixed instruction and a
// task listing and returns free-form text that is not guaranteed to be
// well-formed JSON. Any error (timeout, auth, quota) is a call failure.
type Oracle interface {
	Rank(ctx context.Context, instruction, input string) (string, error)
}

// TaskScore is one per-task entry of an oracle ranking.
type TaskScore struct {
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

// RankResult is the structured outcome of a ranking pass, whether it came
// from the oracle or the heuristic fallback.
type RankResult struct {
	SelectedTaskIDs []string             `json:"selected_task_ids"`
	Reason          string               `json:"reason"`
	TaskPriorities  map[string]TaskScore `json:"task_priorities"`
}

const rankInstruction = `You are a productivity expert. Analyze the given tasks and select the 3-4 MOST IMPORTANT tasks for today.

Consider:
1. Deadlines (urgent tasks first)
2. Revenue/business impact
3. Dependencies (what unblocks other work)
4. Rollover count (tasks repeatedly postponed need attention)
5. Estimated time vs available work hours

Respond in JSON format:
{
    "selected_task_ids": ["id1", "id2", "id3"],
    "reason": "Brief explanation of prioritization logic",
    "task_priorities": {
        "id1": {"score": 95, "reason": "Critical deadline today"},
        "id2": {"score": 85, "reason": "High revenue impact"}
    }
}`

const descriptionLimit = 100

// buildTaskListing serializes the pool into the compact line-per-task form
// the instruction expects.
func buildTaskListing(today string, tasks []domain.Task) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Today's date: %s\n\nTasks to prioritize:\n", today)
	for _, t := range tasks {
		deadline := t.Deadline
		if deadline == "" {
			deadline = "None"
		}
		desc := t.Description
		if len(desc) > descriptionLimit {
			desc = desc[:descriptionLimit]
		}
		fmt.Fprintf(&b, "- ID: %s, Title: %s, Deadline: %s, Est: %dmin, Category: %s, Origin: %s, Rollover: %d, Desc: %s\n",
			t.ID, t.Title, deadline, t.EstimatedMinutes, t.Category, t.Origin, t.RolloverCount, desc)
	}
	return b.String()
}

// parseRankResponse extracts a RankResult from the oracle's raw reply.
// The reply may wrap the JSON in prose or a code fence; only the span from
// the first opening brace to the last closing brace is parsed. A reply with
// no such span, unparseable JSON, or no "selected_task_ids" key is a parse
// failure.
func parseRankResponse(raw string) (*RankResult, bool) {
	span, ok := extractJSON(raw)
	if !ok {
		return nil, false
	}

	var probe struct {
		SelectedTaskIDs *[]string            `json:"selected_task_ids"`
		Reason          string               `json:"reason"`
		TaskPriorities  map[string]TaskScore `json:"task_priorities"`
	}
	if err := json.Unmarshal([]byte(span), &probe); err != nil {
		return nil, false
	}
	if probe.SelectedTaskIDs == nil {
		return nil, false
	}

	result := &RankResult{
		SelectedTaskIDs: *probe.SelectedTaskIDs,
		Reason:          probe.Reason,
		TaskPriorities:  probe.TaskPriorities,
	}
	if result.TaskPriorities == nil {
		result.TaskPriorities = map[string]TaskScore{}
	}
	if result.Reason == "" {
		result.Reason = "Prioritized by AI"
	}
	return result, true
}

func extractJSON(raw string) (string, bool) {
	if fenced, ok := unfence(raw); ok {
		raw = fenced
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

func unfence(raw string) (string, bool) {
	open := strings.Index(raw, "```")
	if open == -1 {
		return "", false
	}
	rest := raw[open+3:]
	if nl := strings.Index(rest, "\n"); nl != -1 {
		// Skip a language tag such as ```json.
		rest = rest[nl+1:]
	}
	close := strings.Index(rest, "```")
	if close == -1 {
		return "", false
	}
	return rest[:close], true
}

func truncateError(err error, limit int) string {
	msg := err.Error()
	if len(msg) > limit {
		msg = msg[:limit]
	}
	return msg
}
