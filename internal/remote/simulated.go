package remote

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ritmoapp/ritmo/internal/models"
)

// FailureFunc decides whether a simulated call should fail. It receives the
// operation name and returns the error to reject with, or nil to succeed.
type FailureFunc func(op string) error

// Simulated stands in for a real backend. Each call sleeps for a random
// duration inside [MinLatency, MaxLatency] and then consults the failure
// injector. Creations hand back the entity with a fresh service-assigned id.
type Simulated struct {
	MinLatency time.Duration
	MaxLatency time.Duration

	// Failure, when non-nil, is consulted before every call completes.
	Failure FailureFunc

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSimulated returns a simulated service with the default latency range.
func NewSimulated() *Simulated {
	return &Simulated{
		MinLatency: 150 * time.Millisecond,
		MaxLatency: 600 * time.Millisecond,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Simulated) delay(ctx context.Context) error {
	d := s.MinLatency
	if span := s.MaxLatency - s.MinLatency; span > 0 {
		s.mu.Lock()
		d += time.Duration(s.rng.Int63n(int64(span)))
		s.mu.Unlock()
	}
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Simulated) call(ctx context.Context, op string) error {
	if err := s.delay(ctx); err != nil {
		return err
	}
	if s.Failure != nil {
		return s.Failure(op)
	}
	return nil
}

func (s *Simulated) CreateHabit(ctx context.Context, h models.Habit) (models.Habit, error) {
	if err := s.call(ctx, OpCreateHabit); err != nil {
		return models.Habit{}, err
	}
	h.ID = uuid.New().String()
	return h, nil
}

func (s *Simulated) UpdateHabit(ctx context.Context, id string, h models.Habit) (models.Habit, error) {
	if err := s.call(ctx, OpUpdateHabit); err != nil {
		return models.Habit{}, err
	}
	h.ID = id
	return h, nil
}

func (s *Simulated) DeleteHabit(ctx context.Context, id string) error {
	return s.call(ctx, OpDeleteHabit)
}

func (s *Simulated) ReorderHabits(ctx context.Context, habits []models.Habit) ([]models.Habit, error) {
	if err := s.call(ctx, OpReorderHabits); err != nil {
		return nil, err
	}
	return habits, nil
}

func (s *Simulated) MarkComplete(ctx context.Context, habitID, date string, delta int) (models.Progress, error) {
	if err := s.call(ctx, OpMarkComplete); err != nil {
		return models.Progress{}, err
	}
	return models.Progress{ID: uuid.New().String(), HabitID: habitID, Date: date, Count: delta}, nil
}

func (s *Simulated) UpdateTimer(ctx context.Context, habitID, date string, minutes int) (models.Progress, error) {
	if err := s.call(ctx, OpUpdateTimer); err != nil {
		return models.Progress{}, err
	}
	return models.Progress{ID: uuid.New().String(), HabitID: habitID, Date: date, MinutesSpent: minutes}, nil
}

func (s *Simulated) UpdatePomodoro(ctx context.Context, habitID, date string, sessions int) (models.Progress, error) {
	if err := s.call(ctx, OpUpdatePomodoro); err != nil {
		return models.Progress{}, err
	}
	return models.Progress{ID: uuid.New().String(), HabitID: habitID, Date: date, PomodoroSessions: sessions}, nil
}

func (s *Simulated) CreateGroup(ctx context.Context, g models.HabitGroup) (models.HabitGroup, error) {
	if err := s.call(ctx, OpCreateGroup); err != nil {
		return models.HabitGroup{}, err
	}
	g.ID = uuid.New().String()
	return g, nil
}

func (s *Simulated) UpdateGroup(ctx context.Context, id string, g models.HabitGroup) (models.HabitGroup, error) {
	if err := s.call(ctx, OpUpdateGroup); err != nil {
		return models.HabitGroup{}, err
	}
	g.ID = id
	return g, nil
}

func (s *Simulated) DeleteGroup(ctx context.Context, id string) error {
	return s.call(ctx, OpDeleteGroup)
}
