package cli

import (
	"fmt"
	"time"

	"github.com/ritmoapp/ritmo/internal/backup"
	"github.com/ritmoapp/ritmo/internal/logger"
	"github.com/ritmoapp/ritmo/internal/stats"
	"github.com/ritmoapp/ritmo/internal/storage"
	"github.com/ritmoapp/ritmo/internal/store"
)

// Context carries the shared collaborators into every command's Run.
type Context struct {
	Store    *store.Store
	Provider storage.Provider
}

// PerformAutomaticBackup creates an automatic backup and silently handles
// errors; a failed backup never interrupts the user's command.
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Provider.Path())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("automatic backup failed", "error", err)
	}
}

// waitMutation blocks until the optimistic mutation settles and surfaces a
// rollback as a command error. The local change has already been reverted by
// the time this returns.
func waitMutation(op *store.Op, what string) error {
	if op == nil {
		return nil
	}
	if err := op.Wait(); err != nil {
		return fmt.Errorf("%s failed and was rolled back: %w", what, err)
	}
	return nil
}

// resolveDate parses an optional --date flag, defaulting to the store's
// current date cursor.
func resolveDate(c *Context, flag string) (string, error) {
	if flag == "" {
		return stats.FormatDay(c.Store.CurrentDate()), nil
	}
	if _, err := time.Parse(stats.DayFormat, flag); err != nil {
		return "", fmt.Errorf("invalid date format: %s (expected YYYY-MM-DD)", flag)
	}
	return flag, nil
}
