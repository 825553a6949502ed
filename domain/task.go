package domain

import "time"

// TaskOrigin identifies the ingestion path that created a task.
type TaskOrigin string

const (
	OriginManual    TaskOrigin = "manual"
	OriginCalendar  TaskOrigin = "calendar"
	OriginEmail     TaskOrigin = "email"
	OriginRecurring TaskOrigin = "recurring"
)

const (
	DefaultEstimatedMinutes = 25
	DefaultCategory         = "general"
)

// DeadlineSentinel sorts undated tasks after every dated one.
const DeadlineSentinel = "9999-12-31"

// Task represents a user-owned unit of work. Calendar dates (Deadline,
// ScheduledDate) are ISO YYYY-MM-DD strings so lexicographic order is
// chronological order; instants are time.Time.
type Task struct {
	ID               string      `json:"id"`
	UserID           string      `json:"user_id"`
	Title            string      `json:"title"`
	Description      string      `json:"description,omitempty"`
	Deadline         string      `json:"deadline,omitempty"`
	EstimatedMinutes int         `json:"estimated_minutes"`
	Category         string      `json:"category"`
	Origin           TaskOrigin  `json:"origin"`
	PriorityScore    int         `json:"priority_score"`
	PriorityReason   string      `json:"priority_reason,omitempty"`
	Completed        bool        `json:"completed"`
	StartedAt        *time.Time  `json:"started_at,omitempty"`
	CompletedAt      *time.Time  `json:"completed_at,omitempty"`
	TimeSpentSeconds int         `json:"time_spent_seconds"`
	CreatedAt        time.Time   `json:"created_at"`
	ScheduledDate    string      `json:"scheduled_date"`
	RolloverCount    int         `json:"rollover_count"`
	Recurrence       *Recurrence `json:"recurrence,omitempty"`
}

// DeadlineOrSentinel returns the deadline, or the sentinel when unset.
func (t *Task) DeadlineOrSentinel() string {
	if t == nil || t.Deadline == "" {
		return DeadlineSentinel
	}
	return t.Deadline
}

// Normalize fills the defaults a freshly created task is expected to carry.
func (t *Task) Normalize(now time.Time) {
	if t == nil {
		return
	}
	if t.EstimatedMinutes <= 0 {
		t.EstimatedMinutes = DefaultEstimatedMinutes
	}
	if t.Category == "" {
		t.Category = DefaultCategory
	}
	if t.Origin == "" {
		t.Origin = OriginManual
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	if t.ScheduledDate == "" {
		t.ScheduledDate = t.CreatedAt.UTC().Format(DateLayout)
	}
}
