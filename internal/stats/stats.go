// Package stats derives streaks, rates, and cross-habit insights from the
// raw progress log. Every function here is pure: results depend only on the
// records passed in and the reference "today", and nothing is cached.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/ritmoapp/ritmo/internal/models"
)

// CurrentStreak walks backward day by day from today and counts consecutive
// days that have any progress record for the habit. Existence is what keeps
// the streak alive, not completion: a timer habit with partial minutes still
// counts. The walk stops at the first missing day, so a day with no record
// yet today yields zero.
func CurrentStreak(progress []models.Progress, habitID string, today time.Time) int {
	days := make(map[string]bool)
	for _, p := range progress {
		if p.HabitID == habitID {
			days[p.Date] = true
		}
	}

	streak := 0
	day := DateOnly(today)
	for days[FormatDay(day)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

// LongestStreak finds the maximum run of calendar-consecutive dates among
// the habit's completed records. Unlike CurrentStreak, only completed
// records qualify here.
func LongestStreak(progress []models.Progress, habitID string) int {
	var days []time.Time
	for _, p := range progress {
		if p.HabitID != habitID || !p.Completed {
			continue
		}
		d, err := ParseDay(p.Date)
		if err != nil {
			continue
		}
		days = append(days, d)
	}
	if len(days) == 0 {
		return 0
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	longest, run := 1, 1
	for i := 1; i < len(days); i++ {
		gap := DaysBetween(days[i-1], days[i])
		switch {
		case gap == 0:
			// duplicate day, ignore
		case gap == 1:
			run++
		default:
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// TotalCompletions counts the habit's completed records across all time.
func TotalCompletions(progress []models.Progress, habitID string) int {
	total := 0
	for _, p := range progress {
		if p.HabitID == habitID && p.Completed {
			total++
		}
	}
	return total
}

// CompletionRate returns the habit's lifetime completion percentage:
// completed records divided by days since creation (inclusive of both the
// creation day and today), rounded to the nearest integer.
func CompletionRate(habit models.Habit, progress []models.Progress, today time.Time) int {
	days := DaysSince(habit.CreatedAt, today)
	completed := TotalCompletions(progress, habit.ID)
	return int(math.Round(float64(completed) / float64(days) * 100))
}

// WeeklyAverage returns the habit's average completions per week since
// creation, rounded to one decimal.
func WeeklyAverage(habit models.Habit, progress []models.Progress, today time.Time) float64 {
	days := DaysSince(habit.CreatedAt, today)
	completed := TotalCompletions(progress, habit.ID)
	weeks := float64(days) / 7
	return math.Round(float64(completed)/weeks*10) / 10
}
