package stats

import (
	"testing"
	"time"

	"github.com/ritmoapp/ritmo/internal/models"
)

func TestComputeInsights_BestWeekdayTieGoesToFirstReachingMax(t *testing.T) {
	// 2024-01-01 is a Monday, 2024-01-02 a Tuesday. One completion each:
	// Monday is encountered first and keeps the title on the tie.
	progress := []models.Progress{
		{HabitID: "h1", Date: "2024-01-01", Count: 1, Completed: true},
		{HabitID: "h1", Date: "2024-01-02", Count: 1, Completed: true},
	}
	insights := ComputeInsights(progress, day("2024-01-07"))

	if !insights.HasBestWeekday {
		t.Fatal("expected a best weekday")
	}
	if insights.BestWeekday != time.Monday {
		t.Fatalf("expected Monday on tie, got %s", insights.BestWeekday)
	}
	if insights.BestWeekdayCount != 1 {
		t.Fatalf("expected count 1, got %d", insights.BestWeekdayCount)
	}
}

func TestComputeInsights_MostConsistentHabit(t *testing.T) {
	progress := []models.Progress{
		{HabitID: "h1", Date: "2024-01-01", Count: 1, Completed: true},
		{HabitID: "h2", Date: "2024-01-01", Count: 1, Completed: true},
		{HabitID: "h2", Date: "2024-01-02", Count: 1, Completed: true},
		{HabitID: "h1", Date: "2024-01-03", Count: 1}, // incomplete, does not count
	}
	insights := ComputeInsights(progress, day("2024-01-07"))
	if insights.MostConsistentHabitID != "h2" {
		t.Fatalf("expected h2, got %q", insights.MostConsistentHabitID)
	}
}

func TestComputeInsights_IgnoresIncomplete(t *testing.T) {
	progress := []models.Progress{
		{HabitID: "h1", Date: "2024-01-01", Count: 1},
	}
	insights := ComputeInsights(progress, day("2024-01-07"))
	if insights.HasBestWeekday {
		t.Fatal("incomplete records should not produce a best weekday")
	}
	if insights.MostConsistentHabitID != "" {
		t.Fatalf("expected no most-consistent habit, got %q", insights.MostConsistentHabitID)
	}
}

func TestWeekOverWeek(t *testing.T) {
	today := day("2024-01-14")
	mk := func(dates ...string) []models.Progress {
		var out []models.Progress
		for _, d := range dates {
			out = append(out, models.Progress{HabitID: "h1", Date: d, Count: 1, Completed: true})
		}
		return out
	}

	// Previous week (Jan 1-7): 2 completions. Current week (Jan 8-14): 3.
	progress := mk("2024-01-02", "2024-01-05", "2024-01-09", "2024-01-11", "2024-01-14")
	if got := ComputeInsights(progress, today).WeekOverWeekPct; got != 50.0 {
		t.Fatalf("expected +50%%, got %v", got)
	}

	// No previous activity, some current: reported as +100%.
	progress = mk("2024-01-10")
	if got := ComputeInsights(progress, today).WeekOverWeekPct; got != 100.0 {
		t.Fatalf("expected 100, got %v", got)
	}

	// No activity at all: 0.
	if got := ComputeInsights(nil, today).WeekOverWeekPct; got != 0.0 {
		t.Fatalf("expected 0, got %v", got)
	}
}
