package view

import (
	"testing"

	"github.com/ritmoapp/ritmo/internal/models"
)

func TestComputePeriodStats(t *testing.T) {
	habits := []models.Habit{
		{ID: "h1", Title: "Read", Category: models.CategoryLearning, Order: 0},
		{ID: "h2", Title: "Run", Category: models.CategoryFitness, Order: 1},
	}
	progress := []models.Progress{
		{HabitID: "h1", Date: "2024-06-10", Count: 1, Completed: true},
		{HabitID: "h1", Date: "2024-06-11", Count: 1, Completed: true},
		{HabitID: "h1", Date: "2024-06-12", Count: 1, Completed: true},
		{HabitID: "h2", Date: "2024-06-11", Count: 1, Completed: true},
		{HabitID: "h2", Date: "2024-06-13", Count: 1},                      // incomplete
		{HabitID: "h1", Date: "2024-06-01", Count: 1, Completed: true},    // before range
		{HabitID: "orphan", Date: "2024-06-11", Count: 1, Completed: true}, // unknown habit
	}

	got, err := ComputePeriodStats(habits, progress, "2024-06-10", "2024-06-13")
	if err != nil {
		t.Fatal(err)
	}

	if got.Days != 4 {
		t.Fatalf("expected 4 days, got %d", got.Days)
	}
	if got.TotalCompleted != 4 {
		t.Fatalf("expected 4 completions in range, got %d", got.TotalCompleted)
	}
	// 4 completions / (2 habits * 4 days) = 50%.
	if got.CompletionRate != 50 {
		t.Fatalf("expected rate 50, got %d", got.CompletionRate)
	}
	if got.ByCategory[models.CategoryLearning] != 3 || got.ByCategory[models.CategoryFitness] != 1 {
		t.Fatalf("category tally wrong: %+v", got.ByCategory)
	}

	if len(got.Daily) != 4 {
		t.Fatalf("daily buckets should cover every day, got %d", len(got.Daily))
	}
	wantDaily := map[string]int{"2024-06-10": 1, "2024-06-11": 2, "2024-06-12": 1, "2024-06-13": 0}
	for _, b := range got.Daily {
		if b.Completed != wantDaily[b.Date] {
			t.Fatalf("bucket %s: expected %d, got %d", b.Date, wantDaily[b.Date], b.Completed)
		}
	}

	if len(got.Habits) != 2 {
		t.Fatalf("expected 2 habit rows, got %d", len(got.Habits))
	}
	read := got.Habits[0]
	if read.HabitID != "h1" || read.Completed != 3 || read.Rate != 75 || read.Streak != 3 {
		t.Fatalf("h1 row wrong: %+v", read)
	}
	run := got.Habits[1]
	if run.Completed != 1 || run.Rate != 25 || run.Streak != 1 {
		t.Fatalf("h2 row wrong: %+v", run)
	}
}

func TestComputePeriodStats_BadDate(t *testing.T) {
	if _, err := ComputePeriodStats(nil, nil, "junk", "2024-06-13"); err == nil {
		t.Fatal("expected error for unparseable from date")
	}
}

func TestPeriodRange(t *testing.T) {
	today := day("2024-06-15")

	from, to := PeriodRange("week", today)
	if from != "2024-06-09" || to != "2024-06-15" {
		t.Fatalf("week range wrong: %s..%s", from, to)
	}
	from, to = PeriodRange("month", today)
	if from != "2024-05-16" || to != "2024-06-15" {
		t.Fatalf("month range wrong: %s..%s", from, to)
	}
	from, to = PeriodRange("year", today)
	if from != "2023-06-16" || to != "2024-06-15" {
		t.Fatalf("year range wrong: %s..%s", from, to)
	}
}
