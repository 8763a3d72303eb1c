package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ritmoapp/ritmo/internal/models"
)

func testJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	s := NewJSONStore(filepath.Join(t.TempDir(), "ritmo.json"))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestJSONStore_LoadAbsentFileIsEmpty(t *testing.T) {
	s := testJSONStore(t)
	snap, err := s.Load()
	if err != nil {
		t.Fatalf("absent file should not be an error: %v", err)
	}
	if !snap.Empty() {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}

func TestJSONStore_SaveLoadRoundTrip(t *testing.T) {
	s := testJSONStore(t)
	createdAt := time.Date(2024, 4, 1, 7, 30, 0, 0, time.UTC)
	in := Snapshot{
		Habits: []models.Habit{{
			ID: "h1", Title: "Read", Type: models.HabitTypeCounter,
			TargetCount: 1, CreatedAt: createdAt,
		}},
		Progress:     []models.Progress{{ID: "p1", HabitID: "h1", Date: "2024-04-01", Count: 1, Completed: true}},
		Groups:       []models.HabitGroup{{ID: "g1", Name: "Morning"}},
		CurrentDate:  time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC),
		SkipAutoLoad: true,
	}
	if err := s.Save(in); err != nil {
		t.Fatal(err)
	}

	out, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Habits) != 1 || !out.Habits[0].CreatedAt.Equal(createdAt) {
		t.Fatalf("habit round trip lost data: %+v", out.Habits)
	}
	if len(out.Progress) != 1 || out.Progress[0].Date != "2024-04-01" {
		t.Fatalf("progress round trip lost data: %+v", out.Progress)
	}
	if !out.SkipAutoLoad || !out.CurrentDate.Equal(in.CurrentDate) {
		t.Fatalf("metadata round trip lost data: %+v", out)
	}
}

func TestJSONStore_LoadCorruptFileErrors(t *testing.T) {
	s := testJSONStore(t)
	if err := os.WriteFile(s.Path(), []byte("{broken"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(); err == nil {
		t.Fatal("expected error for corrupt file")
	}
}

func TestJSONStore_InitRefusesExisting(t *testing.T) {
	s := testJSONStore(t)
	if err := s.Init(); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := s.Init(); err == nil {
		t.Fatal("second init should refuse to overwrite")
	}
}

func TestJSONStore_LockExcludesSecondInstance(t *testing.T) {
	s := testJSONStore(t)
	if err := s.Save(Snapshot{}); err != nil {
		t.Fatal(err)
	}

	other := NewJSONStore(s.Path())
	if _, err := other.Load(); err == nil {
		other.Close()
		t.Fatal("second instance should fail to acquire the lock")
	}

	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := other.Load(); err != nil {
		t.Fatalf("lock should be free after close: %v", err)
	}
	other.Close()
}
