// Package view builds the read-time projections the presentation layer
// consumes: habits joined with their progress for a date, group filtering,
// and period-scoped aggregation. Everything is recomputed from the raw
// entity slices on every call; nothing here holds state.
package view

import (
	"sort"
	"time"

	"github.com/ritmoapp/ritmo/internal/models"
	"github.com/ritmoapp/ritmo/internal/stats"
)

// Combine joins one habit with its progress record for date (if any) and
// attaches the current streak and lifetime completion count.
func Combine(habit models.Habit, progress []models.Progress, date string, today time.Time) models.HabitWithProgress {
	out := models.HabitWithProgress{
		Habit:            habit,
		Streak:           stats.CurrentStreak(progress, habit.ID, today),
		TotalCompletions: stats.TotalCompletions(progress, habit.ID),
	}
	for i := range progress {
		if progress[i].HabitID == habit.ID && progress[i].Date == date {
			p := progress[i]
			out.Progress = &p
			break
		}
	}
	return out
}

// HabitsWithProgress maps every habit, sorted by order, through Combine for
// the given date.
func HabitsWithProgress(habits []models.Habit, progress []models.Progress, date string, today time.Time) []models.HabitWithProgress {
	sorted := make([]models.Habit, len(habits))
	copy(sorted, habits)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	out := make([]models.HabitWithProgress, 0, len(sorted))
	for _, h := range sorted {
		out = append(out, Combine(h, progress, date, today))
	}
	return out
}

// HabitsByGroup is HabitsWithProgress filtered to habits whose group matches
// groupID. A nil groupID selects ungrouped habits.
func HabitsByGroup(habits []models.Habit, progress []models.Progress, groupID *string, date string, today time.Time) []models.HabitWithProgress {
	var filtered []models.Habit
	for _, h := range habits {
		switch {
		case groupID == nil && h.GroupID == nil:
			filtered = append(filtered, h)
		case groupID != nil && h.GroupID != nil && *h.GroupID == *groupID:
			filtered = append(filtered, h)
		}
	}
	return HabitsWithProgress(filtered, progress, date, today)
}

// FilterKnown drops progress records that reference no existing habit. Such
// records can linger after interleaved rollbacks; they are excluded from
// every derived view rather than actively reconciled.
func FilterKnown(habits []models.Habit, progress []models.Progress) []models.Progress {
	known := make(map[string]bool, len(habits))
	for _, h := range habits {
		known[h.ID] = true
	}
	out := make([]models.Progress, 0, len(progress))
	for _, p := range progress {
		if known[p.HabitID] {
			out = append(out, p)
		}
	}
	return out
}
