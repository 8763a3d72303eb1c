package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ritmoapp/ritmo/internal/models"
)

// The per-(habit, date) progress lifecycle: absent -> active while any
// activity remains -> absent again once an undo drains it. The Completed
// flag is recomputed from the habit's target on every transition; it is
// never an independent state.

func (s *Store) progressIndexLocked(habitID, date string) int {
	for i := range s.progress {
		if s.progress[i].HabitID == habitID && s.progress[i].Date == date {
			return i
		}
	}
	return -1
}

// recomputeCompleted applies the type-specific predicate and stamps
// CompletedAt on the transition into completed. The stamp survives later
// partial undos on purpose: a past completion is history even if the count
// later dips below target.
func (s *Store) recomputeCompleted(habit models.Habit, p *models.Progress) {
	was := p.Completed
	p.Completed = models.CompletionMet(habit, *p)
	if p.Completed && !was {
		now := s.now()
		p.CompletedAt = &now
	}
}

// prevProgressLocked captures the rollback snapshot for a (habit, date)
// record: the prior value, or nil when the record was absent.
func (s *Store) prevProgressLocked(i int) *models.Progress {
	if i < 0 {
		return nil
	}
	prev := s.progress[i]
	return &prev
}

// restoreProgress puts a (habit, date) record back to its captured
// pre-mutation state: nil removes whatever is there now, non-nil restores
// the prior value (re-inserting if the record was pruned meanwhile).
func (s *Store) restoreProgress(habitID, date string, prev *models.Progress) {
	i := s.progressIndexLocked(habitID, date)
	switch {
	case prev == nil && i >= 0:
		s.progress = append(s.progress[:i], s.progress[i+1:]...)
	case prev != nil && i >= 0:
		s.progress[i] = *prev
	case prev != nil && i < 0:
		s.progress = append(s.progress, *prev)
	}
}

// MarkComplete adds amount to the (habitID, date) record's count, creating
// the record lazily on first activity, and recomputes the completion flag.
func (s *Store) MarkComplete(habitID, date string, amount int) (models.Progress, *Op, error) {
	if amount <= 0 {
		amount = 1
	}

	s.mu.Lock()
	hi := s.habitIndexLocked(habitID)
	if hi < 0 {
		s.mu.Unlock()
		return models.Progress{}, nil, fmt.Errorf("habit not found: %s", habitID)
	}
	habit := s.habits[hi]

	i := s.progressIndexLocked(habitID, date)
	prev := s.prevProgressLocked(i)
	if i < 0 {
		s.progress = append(s.progress, models.Progress{
			ID:      uuid.New().String(),
			HabitID: habitID,
			Date:    date,
		})
		i = len(s.progress) - 1
	}
	s.progress[i].Count += amount
	s.recomputeCompleted(habit, &s.progress[i])
	result := s.progress[i]
	s.mu.Unlock()
	s.persist()

	op := newOp()
	s.confirm(op, "mark complete",
		func(ctx context.Context) error {
			_, err := s.svc.MarkComplete(ctx, habitID, date, amount)
			return err
		},
		nil,
		func() { s.restoreProgress(habitID, date, prev) })
	return result, op, nil
}

// UndoComplete decrements the record's count by one. At zero activity the
// record is pruned outright rather than kept as a zero row; an undo against
// an absent record is a no-op that never reaches the backing service.
// CompletedAt is left untouched either way.
func (s *Store) UndoComplete(habitID, date string) (*Op, error) {
	s.mu.Lock()
	hi := s.habitIndexLocked(habitID)
	if hi < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("habit not found: %s", habitID)
	}
	habit := s.habits[hi]

	i := s.progressIndexLocked(habitID, date)
	if i < 0 || s.progress[i].Count <= 0 {
		s.mu.Unlock()
		return resolvedOp(), nil
	}
	prev := s.prevProgressLocked(i)

	s.progress[i].Count--
	if s.progress[i].Empty() {
		s.progress = append(s.progress[:i], s.progress[i+1:]...)
	} else {
		s.progress[i].Completed = models.CompletionMet(habit, s.progress[i])
	}
	s.mu.Unlock()
	s.persist()

	op := newOp()
	s.confirm(op, "undo complete",
		func(ctx context.Context) error {
			_, err := s.svc.MarkComplete(ctx, habitID, date, -1)
			return err
		},
		nil,
		func() { s.restoreProgress(habitID, date, prev) })
	return op, nil
}

// UpdateTimer sets the minutes spent for (habitID, date) to an absolute
// value and recomputes completion against the habit's target minutes.
func (s *Store) UpdateTimer(habitID, date string, minutes int) (models.Progress, *Op, error) {
	return s.setActivity(habitID, date, "update timer",
		func(p *models.Progress) { p.MinutesSpent = minutes },
		func(ctx context.Context) error {
			_, err := s.svc.UpdateTimer(ctx, habitID, date, minutes)
			return err
		})
}

// UpdatePomodoro sets the session count for (habitID, date) to an absolute
// value and recomputes completion against the habit's target count.
func (s *Store) UpdatePomodoro(habitID, date string, sessions int) (models.Progress, *Op, error) {
	return s.setActivity(habitID, date, "update pomodoro",
		func(p *models.Progress) { p.PomodoroSessions = sessions },
		func(ctx context.Context) error {
			_, err := s.svc.UpdatePomodoro(ctx, habitID, date, sessions)
			return err
		})
}

// setActivity is the shared absolute-set path for timer and pomodoro fields:
// load or create the record, overwrite the field, recompute completion, and
// prune if the record ends up with no activity at all.
func (s *Store) setActivity(habitID, date, action string, apply func(*models.Progress), call func(ctx context.Context) error) (models.Progress, *Op, error) {
	s.mu.Lock()
	hi := s.habitIndexLocked(habitID)
	if hi < 0 {
		s.mu.Unlock()
		return models.Progress{}, nil, fmt.Errorf("habit not found: %s", habitID)
	}
	habit := s.habits[hi]

	i := s.progressIndexLocked(habitID, date)
	prev := s.prevProgressLocked(i)
	if i < 0 {
		s.progress = append(s.progress, models.Progress{
			ID:      uuid.New().String(),
			HabitID: habitID,
			Date:    date,
		})
		i = len(s.progress) - 1
	}
	apply(&s.progress[i])
	s.recomputeCompleted(habit, &s.progress[i])
	result := s.progress[i]
	if s.progress[i].Empty() {
		s.progress = append(s.progress[:i], s.progress[i+1:]...)
	}
	s.mu.Unlock()
	s.persist()

	op := newOp()
	s.confirm(op, action, call, nil,
		func() { s.restoreProgress(habitID, date, prev) })
	return result, op, nil
}
