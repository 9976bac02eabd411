package utils

import "time"

// MonthKey formats a timestamp as the calendar bucket key used across the
// analytics and export layers ("2006-01").
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// DayIndex maps a timestamp to the journal's day-of-week index
// (0=Sunday … 6=Saturday).
func DayIndex(t time.Time) int {
	return int(t.Weekday())
}

// DayName returns the display label for a day-of-week index. Out-of-range
// indexes return an empty string.
func DayName(day int) string {
	if day < 0 || day > 6 {
		return ""
	}
	return time.Weekday(day).String()
}
