package domain

// Settings holds per-user tunables. Missing rows are materialized with
// these defaults on first read.
type Settings struct {
	UserID              string `json:"user_id"`
	PomodoroWorkMinutes int    `json:"pomodoro_work_minutes"`
	PomodoroShortBreak  int    `json:"pomodoro_short_break"`
	PomodoroLongBreak   int    `json:"pomodoro_long_break"`
	DailyTaskLimit      int    `json:"daily_task_limit"`
	AutoRollover        bool   `json:"auto_rollover"`
}

// DefaultSettings returns the settings a user starts with.
func DefaultSettings(userID string) *Settings {
	return &Settings{
		UserID:              userID,
		PomodoroWorkMinutes: 25,
		PomodoroShortBreak:  5,
		PomodoroLongBreak:   15,
		DailyTaskLimit:      4,
		AutoRollover:        true,
	}
}
