package domain

import "time"

// DailyPlan records which tasks were selected for one (date, user) pair.
// It references tasks by identifier only and never duplicates task data.
type DailyPlan struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	TaskIDs   []string  `json:"task_ids"`
	Reason    string    `json:"prioritization_reason"`
	CreatedAt time.Time `json:"created_at"`
}

// Contains reports whether the plan references the given task.
func (p *DailyPlan) Contains(taskID string) bool {
	if p == nil {
		return false
	}
	for _, id := range p.TaskIDs {
		if id == taskID {
			return true
		}
	}
	return false
}
