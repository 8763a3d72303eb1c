package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ritmoapp/ritmo/internal/models"
)

func (s *Store) habitIndexLocked(id string) int {
	for i := range s.habits {
		if s.habits[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) nextHabitOrderLocked() int {
	next := 0
	for _, h := range s.habits {
		if h.Order >= next {
			next = h.Order + 1
		}
	}
	return next
}

// AddHabit inserts a provisional habit immediately and confirms the creation
// in the background. The provisional id doubles as the correlation id: when
// the authoritative entity arrives, the pipeline reconciles by looking the
// correlation id up and swapping the entity in place.
func (s *Store) AddHabit(h models.Habit) (models.Habit, *Op) {
	s.mu.Lock()
	corrID := uuid.New().String()
	h.ID = corrID
	if h.CreatedAt.IsZero() {
		h.CreatedAt = s.now()
	}
	h.Order = s.nextHabitOrderLocked()
	s.habits = append(s.habits, h)
	s.mu.Unlock()
	s.persist()

	op := newOp()
	var created models.Habit
	s.confirm(op, "add habit",
		func(ctx context.Context) error {
			var err error
			created, err = s.svc.CreateHabit(ctx, h)
			return err
		},
		func() {
			// Reconcile the provisional entity with the authoritative one.
			if i := s.habitIndexLocked(corrID); i >= 0 {
				created.Order = s.habits[i].Order
				s.habits[i] = created
				s.reparentProgressLocked(corrID, created.ID)
			}
		},
		func() {
			if i := s.habitIndexLocked(corrID); i >= 0 {
				s.habits = append(s.habits[:i], s.habits[i+1:]...)
			}
		})
	return h, op
}

// reparentProgressLocked rewrites progress records from the provisional
// habit id to the authoritative one, covering marks made while the creation
// was still in flight.
func (s *Store) reparentProgressLocked(oldID, newID string) {
	for i := range s.progress {
		if s.progress[i].HabitID == oldID {
			s.progress[i].HabitID = newID
		}
	}
}

// UpdateHabit applies the new field values immediately and confirms in the
// background. Identity, creation time, and sort order are not updatable
// through this path.
func (s *Store) UpdateHabit(id string, h models.Habit) (*Op, error) {
	s.mu.Lock()
	i := s.habitIndexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("habit not found: %s", id)
	}
	prev := s.habits[i]
	h.ID = prev.ID
	h.CreatedAt = prev.CreatedAt
	h.Order = prev.Order
	s.habits[i] = h
	s.mu.Unlock()
	s.persist()

	op := newOp()
	s.confirm(op, "update habit",
		func(ctx context.Context) error {
			_, err := s.svc.UpdateHabit(ctx, id, h)
			return err
		},
		nil,
		func() {
			if j := s.habitIndexLocked(id); j >= 0 {
				s.habits[j] = prev
			}
		})
	return op, nil
}

// DeleteHabit removes the habit and every progress record referencing it in
// one optimistic step, the pipeline's single compound operation. A rejected
// delete restores the habit and its progress together.
func (s *Store) DeleteHabit(id string) (*Op, error) {
	s.mu.Lock()
	i := s.habitIndexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("habit not found: %s", id)
	}
	prevHabit := s.habits[i]
	habitIndex := i
	s.habits = append(s.habits[:i], s.habits[i+1:]...)

	type removed struct {
		index int
		rec   models.Progress
	}
	var removedProgress []removed
	kept := s.progress[:0]
	for j := range s.progress {
		if s.progress[j].HabitID == id {
			removedProgress = append(removedProgress, removed{index: j, rec: s.progress[j]})
		} else {
			kept = append(kept, s.progress[j])
		}
	}
	s.progress = kept
	s.mu.Unlock()
	s.persist()

	op := newOp()
	s.confirm(op, "delete habit",
		func(ctx context.Context) error {
			return s.svc.DeleteHabit(ctx, id)
		},
		nil,
		func() {
			if habitIndex > len(s.habits) {
				s.habits = append(s.habits, prevHabit)
			} else {
				s.habits = append(s.habits[:habitIndex],
					append([]models.Habit{prevHabit}, s.habits[habitIndex:]...)...)
			}
			for _, r := range removedProgress {
				if r.index > len(s.progress) {
					s.progress = append(s.progress, r.rec)
				} else {
					s.progress = append(s.progress[:r.index],
						append([]models.Progress{r.rec}, s.progress[r.index:]...)...)
				}
			}
		})
	return op, nil
}

// ReorderHabits reassigns sort order to match the given id sequence. Ids not
// present in the sequence keep their relative order after the listed ones.
// Rollback restores the prior array wholesale.
func (s *Store) ReorderHabits(orderedIDs []string) (*Op, error) {
	s.mu.Lock()
	prev := make([]models.Habit, len(s.habits))
	copy(prev, s.habits)

	position := make(map[string]int, len(orderedIDs))
	for i, id := range orderedIDs {
		position[id] = i
	}
	for i := range s.habits {
		if pos, ok := position[s.habits[i].ID]; ok {
			s.habits[i].Order = pos
		} else {
			s.habits[i].Order = len(orderedIDs) + s.habits[i].Order
		}
	}
	reordered := make([]models.Habit, len(s.habits))
	copy(reordered, s.habits)
	s.mu.Unlock()
	s.persist()

	op := newOp()
	s.confirm(op, "reorder habits",
		func(ctx context.Context) error {
			_, err := s.svc.ReorderHabits(ctx, reordered)
			return err
		},
		nil,
		func() {
			s.habits = prev
		})
	return op, nil
}

// HabitByID returns the habit with the given id.
func (s *Store) HabitByID(id string) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.habitIndexLocked(id); i >= 0 {
		return s.habits[i], nil
	}
	return models.Habit{}, fmt.Errorf("habit not found: %s", id)
}

// HabitByTitle returns the first habit whose title matches.
func (s *Store) HabitByTitle(title string) (models.Habit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, h := range s.habits {
		if h.Title == title {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit not found: %s", title)
}
