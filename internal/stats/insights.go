package stats

import (
	"math"
	"time"

	"github.com/ritmoapp/ritmo/internal/models"
)

// Insights aggregates the full progress log into the cross-habit summary the
// insights view renders.
type Insights struct {
	// BestWeekday is the weekday with the most completions. Valid only when
	// HasBestWeekday is set.
	BestWeekday      time.Weekday
	BestWeekdayCount int
	HasBestWeekday   bool

	// MostConsistentHabitID is the habit with the most completions.
	MostConsistentHabitID string

	// WeekOverWeekPct compares completions in the last seven days against the
	// seven days before that, as a percentage change rounded to one decimal.
	WeekOverWeekPct float64
}

// ComputeInsights derives the cross-habit summary from the progress log.
// Ties are broken by encounter order: the first weekday or habit to reach the
// maximum wins.
func ComputeInsights(progress []models.Progress, today time.Time) Insights {
	var out Insights

	weekdayCounts := make(map[time.Weekday]int)
	habitCounts := make(map[string]int)
	bestHabitCount := 0

	for _, p := range progress {
		if !p.Completed {
			continue
		}
		if d, err := ParseDay(p.Date); err == nil {
			wd := d.Weekday()
			weekdayCounts[wd]++
			if weekdayCounts[wd] > out.BestWeekdayCount {
				out.BestWeekday = wd
				out.BestWeekdayCount = weekdayCounts[wd]
				out.HasBestWeekday = true
			}
		}
		habitCounts[p.HabitID]++
		if habitCounts[p.HabitID] > bestHabitCount {
			bestHabitCount = habitCounts[p.HabitID]
			out.MostConsistentHabitID = p.HabitID
		}
	}

	out.WeekOverWeekPct = weekOverWeek(progress, today)
	return out
}

// weekOverWeek compares the trailing seven days (ending today) with the
// seven days before them. A previous week with zero completions maps to 100
// when the current week has any, and 0 when it does not.
func weekOverWeek(progress []models.Progress, today time.Time) float64 {
	day := DateOnly(today)
	curFrom := FormatDay(day.AddDate(0, 0, -6))
	curTo := FormatDay(day)
	prevFrom := FormatDay(day.AddDate(0, 0, -13))
	prevTo := FormatDay(day.AddDate(0, 0, -7))

	cur, prev := 0, 0
	for _, p := range progress {
		if !p.Completed {
			continue
		}
		switch {
		case InRange(p.Date, curFrom, curTo):
			cur++
		case InRange(p.Date, prevFrom, prevTo):
			prev++
		}
	}

	if prev == 0 {
		if cur > 0 {
			return 100
		}
		return 0
	}
	return math.Round(float64(cur-prev)/float64(prev)*1000) / 10
}
