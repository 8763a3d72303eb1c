package view

import (
	"math"
	"sort"
	"time"

	"github.com/ritmoapp/ritmo/internal/models"
	"github.com/ritmoapp/ritmo/internal/stats"
)

// DayBucket is one day's completion tally inside a period.
type DayBucket struct {
	Date      string `json:"date"`
	Completed int    `json:"completed"`
}

// HabitPeriodStat summarizes one habit's activity inside a period.
type HabitPeriodStat struct {
	HabitID   string `json:"habit_id"`
	Title     string `json:"title"`
	Completed int    `json:"completed"`
	Rate      int    `json:"rate"`   // completed / days-in-period, percent
	Streak    int    `json:"streak"` // longest completed run inside the period
}

// PeriodStats is the week/month/year aggregation over an inclusive date
// range.
type PeriodStats struct {
	From           string                  `json:"from"`
	To             string                  `json:"to"`
	Days           int                     `json:"days"`
	TotalCompleted int                     `json:"total_completed"`
	CompletionRate int                     `json:"completion_rate"` // across all habits and days, percent
	ByCategory     map[models.Category]int `json:"by_category"`
	Daily          []DayBucket             `json:"daily"`
	Habits         []HabitPeriodStat       `json:"habits"`
}

// ComputePeriodStats filters the progress log to the inclusive [from, to]
// range and derives the period aggregation from scratch. Records referencing
// unknown habits are excluded.
func ComputePeriodStats(habits []models.Habit, progress []models.Progress, from, to string) (PeriodStats, error) {
	fromDay, err := stats.ParseDay(from)
	if err != nil {
		return PeriodStats{}, err
	}
	toDay, err := stats.ParseDay(to)
	if err != nil {
		return PeriodStats{}, err
	}
	days := stats.DaysBetween(fromDay, toDay) + 1
	if days < 1 {
		days = 1
	}

	out := PeriodStats{
		From:       from,
		To:         to,
		Days:       days,
		ByCategory: make(map[models.Category]int),
	}

	byHabit := make(map[string]map[string]bool) // habit -> completed days
	categories := make(map[string]models.Category, len(habits))
	for _, h := range habits {
		categories[h.ID] = h.Category
	}

	daily := make(map[string]int)
	var inRange []models.Progress
	for _, p := range FilterKnown(habits, progress) {
		if !stats.InRange(p.Date, from, to) {
			continue
		}
		inRange = append(inRange, p)
		if !p.Completed {
			continue
		}
		out.TotalCompleted++
		out.ByCategory[categories[p.HabitID]]++
		daily[p.Date]++
		if byHabit[p.HabitID] == nil {
			byHabit[p.HabitID] = make(map[string]bool)
		}
		byHabit[p.HabitID][p.Date] = true
	}

	// Per-day buckets cover every day of the period, including empty ones.
	for d := stats.DateOnly(fromDay); !d.After(toDay); d = d.AddDate(0, 0, 1) {
		day := stats.FormatDay(d)
		out.Daily = append(out.Daily, DayBucket{Date: day, Completed: daily[day]})
	}

	possible := len(habits) * days
	if possible > 0 {
		out.CompletionRate = int(math.Round(float64(out.TotalCompleted) / float64(possible) * 100))
	}

	sorted := make([]models.Habit, len(habits))
	copy(sorted, habits)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	for _, h := range sorted {
		completed := len(byHabit[h.ID])
		out.Habits = append(out.Habits, HabitPeriodStat{
			HabitID:   h.ID,
			Title:     h.Title,
			Completed: completed,
			Rate:      int(math.Round(float64(completed) / float64(days) * 100)),
			Streak:    stats.LongestStreak(inRange, h.ID),
		})
	}

	return out, nil
}

// PeriodRange resolves a named period (week, month, year) ending at today
// into an inclusive from/to pair.
func PeriodRange(period string, today time.Time) (from, to string) {
	day := stats.DateOnly(today)
	to = stats.FormatDay(day)
	switch period {
	case "month":
		from = stats.FormatDay(day.AddDate(0, -1, 1))
	case "year":
		from = stats.FormatDay(day.AddDate(-1, 0, 1))
	default:
		from = stats.FormatDay(day.AddDate(0, 0, -6))
	}
	return from, to
}
