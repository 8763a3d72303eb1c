package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ritmoapp/ritmo/internal/models"
)

// ExportDoc is the interchange document for bulk export and import.
type ExportDoc struct {
	Habits     []models.Habit      `json:"habits"`
	Progress   []models.Progress   `json:"progress"`
	Groups     []models.HabitGroup `json:"groups,omitempty"`
	ExportedAt time.Time           `json:"exported_at"`
}

// Export serializes the snapshot's entities into an interchange document.
func Export(snap Snapshot, now time.Time) ([]byte, error) {
	doc := ExportDoc{
		Habits:     snap.Habits,
		Progress:   snap.Progress,
		Groups:     snap.Groups,
		ExportedAt: now,
	}
	if doc.Habits == nil {
		doc.Habits = []models.Habit{}
	}
	if doc.Progress == nil {
		doc.Progress = []models.Progress{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to serialize export: %w", err)
	}
	return data, nil
}

// importWire mirrors ExportDoc but keeps the required sections raw so their
// presence and shape can be checked before revival.
type importWire struct {
	Habits   json.RawMessage     `json:"habits"`
	Progress json.RawMessage     `json:"progress"`
	Groups   []models.HabitGroup `json:"groups"`
}

// ParseImport validates an interchange document and normalizes it into a
// snapshot, reviving any string-typed date fields. Habits and progress must
// be present and array-typed; anything else rejects the document.
func ParseImport(data []byte) (Snapshot, error) {
	var w importWire
	if err := json.Unmarshal(data, &w); err != nil {
		return Snapshot{}, fmt.Errorf("invalid import document: %w", err)
	}

	if len(w.Habits) == 0 || string(w.Habits) == "null" {
		return Snapshot{}, fmt.Errorf("import document is missing the habits array")
	}
	if len(w.Progress) == 0 || string(w.Progress) == "null" {
		return Snapshot{}, fmt.Errorf("import document is missing the progress array")
	}

	var habits []habitWire
	if err := json.Unmarshal(w.Habits, &habits); err != nil {
		return Snapshot{}, fmt.Errorf("import habits must be an array: %w", err)
	}
	var progress []progressWire
	if err := json.Unmarshal(w.Progress, &progress); err != nil {
		return Snapshot{}, fmt.Errorf("import progress must be an array: %w", err)
	}

	return Snapshot{
		Habits:   reviveHabits(habits),
		Progress: reviveProgress(progress),
		Groups:   w.Groups,
	}, nil
}
