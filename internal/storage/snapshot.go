// Package storage serializes the entity store to durable storage and
// restores it across sessions, reviving date-typed fields along the way.
package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ritmoapp/ritmo/internal/models"
	"github.com/ritmoapp/ritmo/internal/stats"
)

// Snapshot is the persisted subset of the entity store.
type Snapshot struct {
	Habits       []models.Habit      `json:"habits"`
	Progress     []models.Progress   `json:"progress"`
	Groups       []models.HabitGroup `json:"groups"`
	CurrentDate  time.Time           `json:"current_date"`
	SkipAutoLoad bool                `json:"skip_auto_load"`
}

// Empty reports whether the snapshot holds no entities at all.
func (s Snapshot) Empty() bool {
	return len(s.Habits) == 0 && len(s.Progress) == 0 && len(s.Groups) == 0
}

// parseTimestamp revives a serialized date field. Stored blobs carry RFC3339
// stamps, but imported documents may use bare dates; both are accepted.
// Revival is idempotent: re-encoding and re-parsing yields the same instant.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, stats.DayFormat} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp: %q", s)
}

// timeWire decodes a timestamp that may be an RFC3339 stamp, a bare date, or
// null.
type timeWire struct{ time.Time }

func (w *timeWire) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	t, err := parseTimestamp(s)
	if err != nil {
		return err
	}
	w.Time = t
	return nil
}

type habitWire struct {
	models.Habit
	CreatedAt timeWire `json:"created_at"`
}

type progressWire struct {
	models.Progress
	CompletedAt *timeWire `json:"completed_at"`
}

type snapshotWire struct {
	Habits       []habitWire         `json:"habits"`
	Progress     []progressWire      `json:"progress"`
	Groups       []models.HabitGroup `json:"groups"`
	CurrentDate  timeWire            `json:"current_date"`
	SkipAutoLoad bool                `json:"skip_auto_load"`
}

func reviveHabits(wires []habitWire) []models.Habit {
	habits := make([]models.Habit, 0, len(wires))
	for _, w := range wires {
		h := w.Habit
		h.CreatedAt = w.CreatedAt.Time
		habits = append(habits, h)
	}
	return habits
}

func reviveProgress(wires []progressWire) []models.Progress {
	progress := make([]models.Progress, 0, len(wires))
	for _, w := range wires {
		p := w.Progress
		if w.CompletedAt != nil {
			t := w.CompletedAt.Time
			p.CompletedAt = &t
		}
		// Normalize full timestamps down to the canonical day string.
		if len(p.Date) > len(stats.DayFormat) {
			p.Date = p.Date[:len(stats.DayFormat)]
		}
		progress = append(progress, p)
	}
	return progress
}

// DecodeSnapshot parses a persisted blob back into the canonical in-memory
// shape.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var w snapshotWire
	if err := json.Unmarshal(data, &w); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return Snapshot{
		Habits:       reviveHabits(w.Habits),
		Progress:     reviveProgress(w.Progress),
		Groups:       w.Groups,
		CurrentDate:  w.CurrentDate.Time,
		SkipAutoLoad: w.SkipAutoLoad,
	}, nil
}

// EncodeSnapshot serializes a snapshot with all date fields as ISO-8601
// strings.
func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize snapshot: %w", err)
	}
	return data, nil
}
