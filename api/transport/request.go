package transport

type RecurrenceRequest struct {
	Frequency string `json:"frequency"`
	Interval  int    `json:"interval"`
}

type TaskRequest struct {
	ID               string             `json:"id"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Deadline         string             `json:"deadline"`
	EstimatedMinutes int                `json:"estimated_minutes"`
	Category         string             `json:"category"`
	Origin           string             `json:"source"`
	ScheduledDate    string             `json:"scheduled_date"`
	Recurrence       *RecurrenceRequest `json:"recurrence"`
}

type CompleteTaskRequest struct {
	TimeSpentSeconds int `json:"time_spent_seconds"`
}

type StartPomodoroRequest struct {
	TaskID      string `json:"task_id"`
	SessionType string `json:"session_type"`
}

type CompletePomodoroRequest struct {
	SessionID       string `json:"session_id"`
	DurationSeconds int    `json:"duration_seconds"`
}

type SettingsRequest struct {
	PomodoroWorkMinutes *int  `json:"pomodoro_work_minutes"`
	PomodoroShortBreak  *int  `json:"pomodoro_short_break"`
	PomodoroLongBreak   *int  `json:"pomodoro_long_break"`
	DailyTaskLimit      *int  `json:"daily_task_limit"`
	AutoRollover        *bool `json:"auto_rollover"`
}
