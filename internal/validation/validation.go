// Package validation scans a persisted snapshot for shape problems:
// duplicate ledger rows, zero rows that should have been pruned, dangling
// references. Findings are reported, never repaired; orphaned progress in
// particular is tolerated by design and simply excluded from derived views.
package validation

import (
	"fmt"

	"github.com/ritmoapp/ritmo/internal/models"
	"github.com/ritmoapp/ritmo/internal/stats"
	"github.com/ritmoapp/ritmo/internal/storage"
)

// ConflictType classifies a validation finding.
type ConflictType string

const (
	ConflictDuplicateProgress ConflictType = "duplicate_progress"
	ConflictZeroActivity      ConflictType = "zero_activity"
	ConflictNegativeCount     ConflictType = "negative_count"
	ConflictOrphanedProgress  ConflictType = "orphaned_progress"
	ConflictInvalidDate       ConflictType = "invalid_date"
	ConflictUnknownCategory   ConflictType = "unknown_category"
	ConflictUnknownGroup      ConflictType = "unknown_group"
	ConflictDuplicateOrder    ConflictType = "duplicate_order"
)

// Conflict is one detected problem.
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // entity ids involved
}

// Result contains all detected conflicts.
type Result struct {
	Conflicts []Conflict
}

// HasConflicts returns true if anything was found.
func (r *Result) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts.
func (r *Result) FormatReport() string {
	if !r.HasConflicts() {
		return "No conflicts detected."
	}
	report := "Conflicts detected:\n"
	for _, c := range r.Conflicts {
		report += fmt.Sprintf("- %s\n", c.Description)
	}
	return report
}

// Check scans a snapshot and reports every conflict it can find.
func Check(snap storage.Snapshot) Result {
	result := Result{}

	habitIDs := make(map[string]bool, len(snap.Habits))
	orders := make(map[int][]string)
	groupIDs := make(map[string]bool, len(snap.Groups))
	for _, g := range snap.Groups {
		groupIDs[g.ID] = true
	}

	for _, h := range snap.Habits {
		habitIDs[h.ID] = true
		orders[h.Order] = append(orders[h.Order], h.ID)
		if !models.ValidCategory(h.Category) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownCategory,
				Description: fmt.Sprintf("habit %q has unknown category %q", h.Title, h.Category),
				Items:       []string{h.ID},
			})
		}
		if h.GroupID != nil && !groupIDs[*h.GroupID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictUnknownGroup,
				Description: fmt.Sprintf("habit %q references missing group %s", h.Title, *h.GroupID),
				Items:       []string{h.ID},
			})
		}
	}

	for order, ids := range orders {
		if len(ids) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateOrder,
				Description: fmt.Sprintf("%d habits share sort order %d", len(ids), order),
				Items:       ids,
			})
		}
	}

	seen := make(map[string]bool)
	for _, p := range snap.Progress {
		key := p.HabitID + "|" + p.Date
		if seen[key] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateProgress,
				Description: fmt.Sprintf("duplicate progress for habit %s on %s", p.HabitID, p.Date),
				Items:       []string{p.ID},
			})
		}
		seen[key] = true

		if p.Count < 0 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictNegativeCount,
				Description: fmt.Sprintf("progress %s has negative count %d", p.ID, p.Count),
				Items:       []string{p.ID},
			})
		}
		if p.Empty() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictZeroActivity,
				Description: fmt.Sprintf("progress %s carries no activity and should have been pruned", p.ID),
				Items:       []string{p.ID},
			})
		}
		if !habitIDs[p.HabitID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictOrphanedProgress,
				Description: fmt.Sprintf("progress %s references missing habit %s", p.ID, p.HabitID),
				Items:       []string{p.ID},
			})
		}
		if _, err := stats.ParseDay(p.Date); err != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDate,
				Description: fmt.Sprintf("progress %s has invalid date %q", p.ID, p.Date),
				Items:       []string{p.ID},
			})
		}
	}

	return result
}
