package models

import "time"

type HabitType string

const (
	HabitTypeCounter  HabitType = "counter"
	HabitTypeTimer    HabitType = "timer"
	HabitTypePomodoro HabitType = "pomodoro"
)

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyCustom Frequency = "custom"
)

type Category string

const (
	CategoryHealth       Category = "health"
	CategoryFitness      Category = "fitness"
	CategoryMindfulness  Category = "mindfulness"
	CategoryProductivity Category = "productivity"
	CategoryLearning     Category = "learning"
	CategorySocial       Category = "social"
	CategoryCreativity   Category = "creativity"
	CategoryOther        Category = "other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryHealth,
	CategoryFitness,
	CategoryMindfulness,
	CategoryProductivity,
	CategoryLearning,
	CategorySocial,
	CategoryCreativity,
	CategoryOther,
}

// ValidCategory reports whether c is one of the known categories.
func ValidCategory(c Category) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Habit represents a recurring practice to track. The habit type decides
// which target field is authoritative: TargetCount for counter and pomodoro
// habits, TargetMinutes for timer habits. The remaining target fields are
// retained but ignored.
type Habit struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Icon          string    `json:"icon"`
	Color         string    `json:"color"`
	BgColor       string    `json:"bg_color,omitempty"`
	Category      Category  `json:"category"`
	Frequency     Frequency `json:"frequency"`
	Type          HabitType `json:"type"`
	TargetCount   int       `json:"target_count,omitempty"`
	TargetMinutes int       `json:"target_minutes,omitempty"`
	PomodoroWork  int       `json:"pomodoro_work,omitempty"`
	PomodoroBreak int       `json:"pomodoro_break,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	Order         int       `json:"order"`
	GroupID       *string   `json:"group_id,omitempty"`
}
