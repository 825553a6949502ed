package domain

import "time"

// SessionKind enumerates pomodoro interval types.
type SessionKind string

const (
	SessionWork       SessionKind = "work"
	SessionShortBreak SessionKind = "short_break"
	SessionLongBreak  SessionKind = "long_break"
)

// PomodoroSession is one focus interval tracked against a task. It is
// created open-ended and mutated exactly once into its terminal state.
type PomodoroSession struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	TaskID          string      `json:"task_id"`
	StartedAt       time.Time   `json:"started_at"`
	EndedAt         *time.Time  `json:"ended_at,omitempty"`
	DurationSeconds int         `json:"duration_seconds"`
	Kind            SessionKind `json:"session_type"`
	Completed       bool        `json:"completed"`
}

// CountsTowardFocus reports whether a completed session's duration
// accumulates onto its task.
func (s *PomodoroSession) CountsTowardFocus() bool {
	return s != nil && s.Kind == SessionWork
}
