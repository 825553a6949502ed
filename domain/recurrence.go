package domain

import "time"

// RecurrenceFrequency enumerates the supported repetition cadences.
type RecurrenceFrequency string

const (
	RecurDaily   RecurrenceFrequency = "daily"
	RecurWeekly  RecurrenceFrequency = "weekly"
	RecurMonthly RecurrenceFrequency = "monthly"
)

// Recurrence describes how a task repeats after completion.
type Recurrence struct {
	Frequency RecurrenceFrequency `json:"frequency"`
	Interval  int                 `json:"interval"`
}

// NextOccurrence computes the scheduled date of the follow-up task created
// when a recurring task is completed. The base date falls back to today when
// it cannot be parsed.
func (r *Recurrence) NextOccurrence(from string, now time.Time) string {
	if r == nil {
		return from
	}
	interval := r.Interval
	if interval <= 0 {
		interval = 1
	}
	base, err := time.Parse(DateLayout, from)
	if err != nil {
		base = now.UTC()
	}
	switch r.Frequency {
	case RecurWeekly:
		base = base.AddDate(0, 0, 7*interval)
	case RecurMonthly:
		base = base.AddDate(0, interval, 0)
	default:
		base = base.AddDate(0, 0, interval)
	}
	return base.Format(DateLayout)
}

// SpawnNext derives the follow-up task for a completed recurring task.
func (r *Recurrence) SpawnNext(completed *Task, id string, now time.Time) *Task {
	if r == nil || completed == nil {
		return nil
	}
	next := &Task{
		ID:               id,
		UserID:           completed.UserID,
		Title:            completed.Title,
		Description:      completed.Description,
		EstimatedMinutes: completed.EstimatedMinutes,
		Category:         completed.Category,
		Origin:           OriginRecurring,
		CreatedAt:        now,
		ScheduledDate:    r.NextOccurrence(completed.ScheduledDate, now),
		Recurrence:       &Recurrence{Frequency: r.Frequency, Interval: r.Interval},
	}
	return next
}
