package stats

import (
	"testing"
	"time"

	"github.com/ritmoapp/ritmo/internal/models"
)

func day(s string) time.Time {
	t, err := time.Parse(DayFormat, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCurrentStreak_CountsAnyRecordBackFromToday(t *testing.T) {
	progress := []models.Progress{
		{HabitID: "h1", Date: "2024-01-13", Count: 1},
		{HabitID: "h1", Date: "2024-01-14", Count: 1, MinutesSpent: 10}, // partial day still counts
		{HabitID: "h1", Date: "2024-01-15", Count: 2, Completed: true},
		{HabitID: "h1", Date: "2024-01-10", Count: 1}, // gap before the run
		{HabitID: "h2", Date: "2024-01-12", Count: 1}, // other habit
	}

	if got := CurrentStreak(progress, "h1", day("2024-01-15")); got != 3 {
		t.Fatalf("expected streak 3, got %d", got)
	}
}

func TestCurrentStreak_ZeroWhenTodayMissing(t *testing.T) {
	progress := []models.Progress{
		{HabitID: "h1", Date: "2024-01-14", Count: 1},
	}
	if got := CurrentStreak(progress, "h1", day("2024-01-15")); got != 0 {
		t.Fatalf("expected streak 0, got %d", got)
	}
}

func TestLongestStreak_BreaksOnGap(t *testing.T) {
	// Completed on Jan 1-3 and Jan 5: the three consecutive days win.
	progress := []models.Progress{
		{HabitID: "h1", Date: "2024-01-05", Count: 1, Completed: true},
		{HabitID: "h1", Date: "2024-01-01", Count: 1, Completed: true},
		{HabitID: "h1", Date: "2024-01-03", Count: 1, Completed: true},
		{HabitID: "h1", Date: "2024-01-02", Count: 1, Completed: true},
	}
	if got := LongestStreak(progress, "h1"); got != 3 {
		t.Fatalf("expected longest streak 3, got %d", got)
	}
}

func TestLongestStreak_IgnoresIncompleteRecords(t *testing.T) {
	progress := []models.Progress{
		{HabitID: "h1", Date: "2024-01-01", Count: 1, Completed: true},
		{HabitID: "h1", Date: "2024-01-02", Count: 1}, // not completed, breaks the run
		{HabitID: "h1", Date: "2024-01-03", Count: 1, Completed: true},
	}
	if got := LongestStreak(progress, "h1"); got != 1 {
		t.Fatalf("expected longest streak 1, got %d", got)
	}
}

func TestCompletionRate_FirstDayFullyDone(t *testing.T) {
	habit := models.Habit{ID: "h1", Type: models.HabitTypeCounter, TargetCount: 1, CreatedAt: day("2024-03-10")}
	progress := []models.Progress{
		{HabitID: "h1", Date: "2024-03-10", Count: 1, Completed: true},
	}
	if got := CompletionRate(habit, progress, day("2024-03-10")); got != 100 {
		t.Fatalf("expected rate 100, got %d", got)
	}
}

func TestCompletionRate_InclusiveDayCount(t *testing.T) {
	// Created 9 days before today: 10 elapsed days, 5 completions -> 50%.
	habit := models.Habit{ID: "h1", CreatedAt: day("2024-03-01")}
	var progress []models.Progress
	for i := 0; i < 5; i++ {
		progress = append(progress, models.Progress{
			HabitID: "h1", Date: FormatDay(day("2024-03-01").AddDate(0, 0, i)), Count: 1, Completed: true,
		})
	}
	if got := CompletionRate(habit, progress, day("2024-03-10")); got != 50 {
		t.Fatalf("expected rate 50, got %d", got)
	}
}

func TestWeeklyAverage_RoundsToOneDecimal(t *testing.T) {
	// 14 elapsed days = 2 weeks, 5 completions -> 2.5 per week.
	habit := models.Habit{ID: "h1", CreatedAt: day("2024-03-01")}
	var progress []models.Progress
	for i := 0; i < 5; i++ {
		progress = append(progress, models.Progress{
			HabitID: "h1", Date: FormatDay(day("2024-03-01").AddDate(0, 0, i)), Count: 1, Completed: true,
		})
	}
	if got := WeeklyAverage(habit, progress, day("2024-03-14")); got != 2.5 {
		t.Fatalf("expected 2.5 per week, got %v", got)
	}
}

func TestTotalCompletions(t *testing.T) {
	progress := []models.Progress{
		{HabitID: "h1", Date: "2024-01-01", Count: 1, Completed: true},
		{HabitID: "h1", Date: "2024-01-02", Count: 1},
		{HabitID: "h2", Date: "2024-01-01", Count: 1, Completed: true},
	}
	if got := TotalCompletions(progress, "h1"); got != 1 {
		t.Fatalf("expected 1 completion, got %d", got)
	}
}

func TestDaysSince_NeverBelowOne(t *testing.T) {
	created := day("2024-05-05")
	if got := DaysSince(created, day("2024-05-05")); got != 1 {
		t.Fatalf("same-day should count as 1, got %d", got)
	}
	if got := DaysSince(day("2024-05-06"), day("2024-05-05")); got != 1 {
		t.Fatalf("future creation should clamp to 1, got %d", got)
	}
}

func TestParseDay_TruncatesTimestamps(t *testing.T) {
	got, err := ParseDay("2024-06-01T15:04:05Z")
	if err != nil {
		t.Fatalf("ParseDay failed: %v", err)
	}
	if FormatDay(got) != "2024-06-01" {
		t.Fatalf("expected 2024-06-01, got %s", FormatDay(got))
	}
}
