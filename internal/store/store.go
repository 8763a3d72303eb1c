// Package store owns the canonical in-memory representation of habits,
// groups, and progress, and applies every mutation optimistically against
// the backing service: the change lands in local state immediately, a
// confirmation runs in the background, and a rejected confirmation restores
// the exact pre-mutation value.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ritmoapp/ritmo/internal/logger"
	"github.com/ritmoapp/ritmo/internal/models"
	"github.com/ritmoapp/ritmo/internal/remote"
	"github.com/ritmoapp/ritmo/internal/storage"
)

// Store is the entity store plus its optimistic mutation pipeline. It is
// constructed once and passed to consumers explicitly; there is no package
// global. All state is guarded by one mutex, the Go rendition of the
// single-threaded model the data layer assumes: every read observes a
// consistent committed-or-optimistic shape, never a half-applied one.
//
// Mutations on the same entity are deliberately not serialized against each
// other. A second mutation issued before the first confirms is applied on
// top of the optimistic state and captures its own rollback snapshot there,
// making the two rollback-independent.
type Store struct {
	mu       sync.Mutex
	svc      remote.Service
	provider storage.Provider // nil means in-memory only

	habits   []models.Habit
	groups   []models.HabitGroup
	progress []models.Progress

	currentDate  time.Time
	skipAutoLoad bool

	pending int

	now func() time.Time
}

// New builds a store around a backing service and an optional persistence
// provider.
func New(svc remote.Service, provider storage.Provider) *Store {
	return &Store{
		svc:      svc,
		provider: provider,
		now:      time.Now,
	}
}

// Load rehydrates the store from its persistence provider. A missing or
// corrupt blob is not fatal: the store starts from empty defaults. A store
// that comes up empty is seeded with demo data exactly once; the
// skip-auto-load flag persists the difference between "never populated" and
// "explicitly cleared".
func (s *Store) Load() error {
	if s.provider == nil {
		s.currentDate = s.now()
		return nil
	}

	snap, err := s.provider.Load()
	if err != nil {
		logger.Warn("failed to load persisted state, starting empty", "error", err)
		snap = storage.Snapshot{}
	}

	s.mu.Lock()
	s.habits = snap.Habits
	s.groups = snap.Groups
	s.progress = snap.Progress
	s.skipAutoLoad = snap.SkipAutoLoad
	s.currentDate = snap.CurrentDate
	if s.currentDate.IsZero() {
		s.currentDate = s.now()
	}
	seeded := false
	if snap.Empty() && !s.skipAutoLoad {
		s.habits, s.groups, s.progress = demoData(s.now())
		s.skipAutoLoad = true
		seeded = true
	}
	s.mu.Unlock()

	if seeded {
		logger.Info("seeded demo data")
		s.persist()
	}
	return nil
}

// CurrentDate returns the date cursor views default to.
func (s *Store) CurrentDate() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentDate
}

// SetCurrentDate moves the date cursor and persists it.
func (s *Store) SetCurrentDate(t time.Time) {
	s.mu.Lock()
	s.currentDate = t
	s.mu.Unlock()
	s.persist()
}

// Pending reports how many mutations are still awaiting confirmation.
func (s *Store) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Snapshot captures the persisted subset of the store.
func (s *Store) Snapshot() storage.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() storage.Snapshot {
	snap := storage.Snapshot{
		Habits:       make([]models.Habit, len(s.habits)),
		Progress:     make([]models.Progress, len(s.progress)),
		Groups:       make([]models.HabitGroup, len(s.groups)),
		CurrentDate:  s.currentDate,
		SkipAutoLoad: s.skipAutoLoad,
	}
	copy(snap.Habits, s.habits)
	copy(snap.Progress, s.progress)
	copy(snap.Groups, s.groups)
	return snap
}

// persist writes the current committed shape through the provider,
// best-effort. Persistence failures never fail a mutation.
func (s *Store) persist() {
	if s.provider == nil {
		return
	}
	snap := s.Snapshot()
	if err := s.provider.Save(snap); err != nil {
		logger.Warn("failed to persist store", "error", err)
	}
}

// Import replaces the whole store with an imported snapshot. The snapshot
// is expected to be normalized already (see storage.ParseImport). Importing
// counts as explicit population, so demo seeding stays suppressed afterward.
func (s *Store) Import(snap storage.Snapshot) {
	s.mu.Lock()
	s.habits = snap.Habits
	s.groups = snap.Groups
	s.progress = snap.Progress
	s.skipAutoLoad = true
	s.mu.Unlock()
	s.persist()
}

// Reset clears every entity and marks the store as explicitly cleared so
// demo data is never re-seeded.
func (s *Store) Reset() {
	s.mu.Lock()
	s.habits = nil
	s.groups = nil
	s.progress = nil
	s.skipAutoLoad = true
	s.mu.Unlock()
	s.persist()
}

// confirm runs the remote confirmation for an optimistic mutation. commit
// and rollback run under the store lock; rollback restores the captured
// pre-mutation values when the service rejects the call.
func (s *Store) confirm(op *Op, action string, call func(ctx context.Context) error, commit, rollback func()) {
	s.mu.Lock()
	s.pending++
	s.mu.Unlock()

	go func() {
		err := call(context.Background())

		s.mu.Lock()
		s.pending--
		if err != nil {
			if rollback != nil {
				rollback()
			}
		} else if commit != nil {
			commit()
		}
		s.mu.Unlock()

		s.persist()
		if err != nil {
			logger.Warn("mutation rolled back", "action", action, "error", err)
			err = fmt.Errorf("%s rejected by backing service: %w", action, err)
		}
		op.finish(err)
	}()
}
