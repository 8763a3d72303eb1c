package store

import (
	"time"

	"github.com/google/uuid"

	"github.com/ritmoapp/ritmo/internal/models"
	"github.com/ritmoapp/ritmo/internal/stats"
)

// demoData builds the starter dataset shown on a first run: one habit of
// each type with a few days of history, so streaks and stats have something
// to render before the user adds anything.
func demoData(now time.Time) ([]models.Habit, []models.HabitGroup, []models.Progress) {
	created := now.AddDate(0, 0, -6)

	wellbeing := models.HabitGroup{
		ID:    uuid.New().String(),
		Name:  "Wellbeing",
		Icon:  "heart",
		Color: "#e76f51",
		Order: 0,
	}

	water := models.Habit{
		ID:          uuid.New().String(),
		Title:       "Drink water",
		Icon:        "droplet",
		Color:       "#2a9d8f",
		Category:    models.CategoryHealth,
		Frequency:   models.FrequencyDaily,
		Type:        models.HabitTypeCounter,
		TargetCount: 8,
		CreatedAt:   created,
		Order:       0,
		GroupID:     &wellbeing.ID,
	}
	reading := models.Habit{
		ID:            uuid.New().String(),
		Title:         "Read",
		Icon:          "book",
		Color:         "#264653",
		Category:      models.CategoryLearning,
		Frequency:     models.FrequencyDaily,
		Type:          models.HabitTypeTimer,
		TargetMinutes: 30,
		CreatedAt:     created,
		Order:         1,
	}
	deepWork := models.Habit{
		ID:            uuid.New().String(),
		Title:         "Deep work",
		Icon:          "target",
		Color:         "#e9c46a",
		Category:      models.CategoryProductivity,
		Frequency:     models.FrequencyDaily,
		Type:          models.HabitTypePomodoro,
		TargetCount:   4,
		PomodoroWork:  25,
		PomodoroBreak: 5,
		CreatedAt:     created,
		Order:         2,
	}

	var progress []models.Progress
	for offset := 3; offset >= 1; offset-- {
		day := stats.FormatDay(now.AddDate(0, 0, -offset))
		completedAt := now.AddDate(0, 0, -offset)
		progress = append(progress, models.Progress{
			ID:          uuid.New().String(),
			HabitID:     water.ID,
			Date:        day,
			Count:       8,
			Completed:   true,
			CompletedAt: &completedAt,
		})
	}
	progress = append(progress, models.Progress{
		ID:           uuid.New().String(),
		HabitID:      reading.ID,
		Date:         stats.FormatDay(now.AddDate(0, 0, -1)),
		Count:        1,
		MinutesSpent: 20,
	})

	return []models.Habit{water, reading, deepWork},
		[]models.HabitGroup{wellbeing},
		progress
}
