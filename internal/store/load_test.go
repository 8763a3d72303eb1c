package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ritmoapp/ritmo/internal/models"
	"github.com/ritmoapp/ritmo/internal/storage"
)

func newPersistedStore(t *testing.T, path string) *Store {
	t.Helper()
	provider := storage.NewJSONStore(path)
	t.Cleanup(func() { provider.Close() })
	s := New(newFakeService(), provider)
	s.now = func() time.Time { return testClock }
	return s
}

func TestLoad_SeedsDemoDataOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ritmo.json")

	s := newPersistedStore(t, path)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	habits, groups, progress := entities(s)
	if len(habits) == 0 || len(groups) == 0 || len(progress) == 0 {
		t.Fatal("empty store should be seeded with demo data")
	}
	if !s.Snapshot().SkipAutoLoad {
		t.Fatal("seeding should set the skip-auto-load flag")
	}
	s.Reset()
	s.provider.Close()

	// A fresh session against the same file stays empty: the store remembers
	// it was explicitly cleared.
	s2 := newPersistedStore(t, path)
	if err := s2.Load(); err != nil {
		t.Fatal(err)
	}
	habits, groups, progress = entities(s2)
	if len(habits) != 0 || len(groups) != 0 || len(progress) != 0 {
		t.Fatal("cleared store must not be re-seeded")
	}
}

func TestLoad_RoundTripsMutations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ritmo.json")

	s := newPersistedStore(t, path)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	s.Reset()
	h := addHabit(t, s, models.Habit{Title: "Read", Type: models.HabitTypeCounter, TargetCount: 1})
	if _, op, err := s.MarkComplete(h.ID, "2024-06-15", 1); err != nil {
		t.Fatal(err)
	} else if err := op.Wait(); err != nil {
		t.Fatal(err)
	}
	s.provider.Close()

	s2 := newPersistedStore(t, path)
	if err := s2.Load(); err != nil {
		t.Fatal(err)
	}
	got, err := s2.HabitByTitle("Read")
	if err != nil {
		t.Fatalf("habit did not survive the round trip: %v", err)
	}
	if !got.CreatedAt.Equal(h.CreatedAt) {
		t.Fatalf("created_at drifted across sessions: %v vs %v", got.CreatedAt, h.CreatedAt)
	}
	p, ok := progressFor(s2, h.ID, "2024-06-15")
	if !ok || !p.Completed {
		t.Fatalf("progress did not survive the round trip: %+v (exists=%v)", p, ok)
	}
}

func TestLoad_CorruptFileStartsEmptyAndSeeds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ritmo.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	s := newPersistedStore(t, path)
	if err := s.Load(); err != nil {
		t.Fatalf("corrupt blob must not be fatal: %v", err)
	}
	habits, _, _ := entities(s)
	if len(habits) == 0 {
		t.Fatal("store recovered from corruption counts as never populated and is seeded")
	}
}

func TestImport_ReplacesStateAndSuppressesSeeding(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ritmo.json")
	s := newPersistedStore(t, path)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}

	s.Import(storage.Snapshot{
		Habits: []models.Habit{{ID: "h1", Title: "Imported", Type: models.HabitTypeCounter, TargetCount: 1, CreatedAt: testClock}},
	})

	habits, groups, progress := entities(s)
	if len(habits) != 1 || habits[0].Title != "Imported" {
		t.Fatalf("import should replace state wholesale: %+v", habits)
	}
	if len(groups) != 0 || len(progress) != 0 {
		t.Fatal("import should drop prior groups and progress")
	}
	if !s.Snapshot().SkipAutoLoad {
		t.Fatal("import counts as explicit population")
	}
}

func TestCurrentDate_PersistsAcrossSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ritmo.json")
	s := newPersistedStore(t, path)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}
	cursor := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	s.SetCurrentDate(cursor)
	s.provider.Close()

	s2 := newPersistedStore(t, path)
	if err := s2.Load(); err != nil {
		t.Fatal(err)
	}
	if !s2.CurrentDate().Equal(cursor) {
		t.Fatalf("current date lost: %v", s2.CurrentDate())
	}
}
