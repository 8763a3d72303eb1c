package models

import "time"

// Progress is one habit's ledger entry for one calendar day. At most one
// record exists per (HabitID, Date) pair, and a record whose activity has
// returned to zero is pruned rather than kept as a zero row.
//
// Completed is a derived flag: it is recomputed from the habit's target on
// every mutation and never treated as an independent source of truth.
type Progress struct {
	ID               string     `json:"id"`
	HabitID          string     `json:"habit_id"`
	Date             string     `json:"date"` // YYYY-MM-DD format
	Count            int        `json:"count"`
	Completed        bool       `json:"completed"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	MinutesSpent     int        `json:"minutes_spent,omitempty"`
	PomodoroSessions int        `json:"pomodoro_sessions,omitempty"`
}

// CompletionMet evaluates the type-specific completion predicate for a
// progress record against its habit's target.
func CompletionMet(h Habit, p Progress) bool {
	switch h.Type {
	case HabitTypeTimer:
		return p.MinutesSpent >= h.TargetMinutes
	case HabitTypePomodoro:
		return p.PomodoroSessions >= h.TargetCount
	default:
		return p.Count >= h.TargetCount
	}
}

// Empty reports whether the record carries no activity at all and should be
// pruned to absence.
func (p Progress) Empty() bool {
	return p.Count <= 0 && p.MinutesSpent <= 0 && p.PomodoroSessions <= 0
}

// HabitWithProgress joins a habit with its progress record for a single date
// plus the two scalars the presentation layer renders alongside it. It is a
// read-time projection and is never persisted.
type HabitWithProgress struct {
	Habit
	Progress         *Progress `json:"progress,omitempty"`
	Streak           int       `json:"streak"`
	TotalCompletions int       `json:"total_completions"`
}
