package domain

import "time"

// DateLayout is the ISO calendar-date format used for deadlines,
// scheduled dates and plan dates.
const DateLayout = "2006-01-02"

// Date formats an instant as a UTC calendar date.
func Date(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// NextDate returns the calendar date n days after the given date.
// A malformed input is returned unchanged.
func NextDate(date string, days int) string {
	parsed, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return parsed.AddDate(0, 0, days).Format(DateLayout)
}
