package stats

import "time"

// DayFormat is the calendar-date layout used throughout the progress log.
// Dates are timezone-naive: a day string refers to the local calendar.
const DayFormat = "2006-01-02"

// ParseDay parses a YYYY-MM-DD string. Strings carrying a time component
// (e.g. a full RFC3339 stamp) are truncated to their date part first.
func ParseDay(s string) (time.Time, error) {
	if len(s) > len(DayFormat) {
		s = s[:len(DayFormat)]
	}
	return time.Parse(DayFormat, s)
}

// FormatDay renders t as a YYYY-MM-DD string.
func FormatDay(t time.Time) string {
	return t.Format(DayFormat)
}

// DateOnly truncates t to midnight in its own location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b, ignoring the
// time-of-day of both.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// DaysSince counts elapsed days from created to today, inclusive of both the
// creation day and today. The result is never less than one.
func DaysSince(created, today time.Time) int {
	days := DaysBetween(created, today) + 1
	if days < 1 {
		return 1
	}
	return days
}

// InRange reports whether day falls inside the inclusive [from, to] range.
// All three are YYYY-MM-DD strings, which order lexicographically.
func InRange(day, from, to string) bool {
	return day >= from && day <= to
}
