package store

import (
	"github.com/ritmoapp/ritmo/internal/models"
	"github.com/ritmoapp/ritmo/internal/stats"
	"github.com/ritmoapp/ritmo/internal/view"
)

// Read paths. Each call copies the relevant slices under the lock and hands
// them to the pure view/stats functions, so derived values are always
// recomputed from the live progress log and nothing is cached in the store.

// Habits returns a copy of all habits.
func (s *Store) Habits() []models.Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Habit, len(s.habits))
	copy(out, s.habits)
	return out
}

// Groups returns a copy of all groups.
func (s *Store) Groups() []models.HabitGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.HabitGroup, len(s.groups))
	copy(out, s.groups)
	return out
}

// ProgressLog returns a copy of the full progress log, including records
// whose habit no longer exists. Derived views filter those out.
func (s *Store) ProgressLog() []models.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Progress, len(s.progress))
	copy(out, s.progress)
	return out
}

// HabitsWithProgress projects every habit, sorted by order, joined with its
// progress for the given date.
func (s *Store) HabitsWithProgress(date string) []models.HabitWithProgress {
	s.mu.Lock()
	habits := make([]models.Habit, len(s.habits))
	copy(habits, s.habits)
	progress := make([]models.Progress, len(s.progress))
	copy(progress, s.progress)
	today := s.currentDate
	s.mu.Unlock()

	return view.HabitsWithProgress(habits, view.FilterKnown(habits, progress), date, today)
}

// HabitsByGroup is HabitsWithProgress filtered by group; nil selects
// ungrouped habits.
func (s *Store) HabitsByGroup(groupID *string, date string) []models.HabitWithProgress {
	s.mu.Lock()
	habits := make([]models.Habit, len(s.habits))
	copy(habits, s.habits)
	progress := make([]models.Progress, len(s.progress))
	copy(progress, s.progress)
	today := s.currentDate
	s.mu.Unlock()

	return view.HabitsByGroup(habits, view.FilterKnown(habits, progress), groupID, date, today)
}

// PeriodStats aggregates the inclusive [from, to] range.
func (s *Store) PeriodStats(from, to string) (view.PeriodStats, error) {
	s.mu.Lock()
	habits := make([]models.Habit, len(s.habits))
	copy(habits, s.habits)
	progress := make([]models.Progress, len(s.progress))
	copy(progress, s.progress)
	s.mu.Unlock()

	return view.ComputePeriodStats(habits, progress, from, to)
}

// Insights derives the cross-habit summary from the full progress log.
func (s *Store) Insights() stats.Insights {
	s.mu.Lock()
	habits := make([]models.Habit, len(s.habits))
	copy(habits, s.habits)
	progress := make([]models.Progress, len(s.progress))
	copy(progress, s.progress)
	today := s.currentDate
	s.mu.Unlock()

	return stats.ComputeInsights(view.FilterKnown(habits, progress), today)
}
