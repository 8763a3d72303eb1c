// Package remote defines the backing service the optimistic mutation
// pipeline confirms every write against. The concrete transport is out of
// scope; the shipped implementation simulates a remote endpoint with
// variable latency and injectable failures.
package remote

import (
	"context"

	"github.com/ritmoapp/ritmo/internal/models"
)

// Operation names, used by failure injectors to target specific calls.
const (
	OpCreateHabit    = "createHabit"
	OpUpdateHabit    = "updateHabit"
	OpDeleteHabit    = "deleteHabit"
	OpReorderHabits  = "reorderHabits"
	OpMarkComplete   = "markComplete"
	OpUpdateTimer    = "updateTimer"
	OpUpdatePomodoro = "updatePomodoro"
	OpCreateGroup    = "createGroup"
	OpUpdateGroup    = "updateGroup"
	OpDeleteGroup    = "deleteGroup"
)

// Service is the remote counterpart of the entity store. Creations return
// the authoritative entity (with a service-assigned id) that replaces the
// caller's provisional one. Every call may fail, and latency is non-zero
// and variable.
type Service interface {
	CreateHabit(ctx context.Context, h models.Habit) (models.Habit, error)
	UpdateHabit(ctx context.Context, id string, h models.Habit) (models.Habit, error)
	DeleteHabit(ctx context.Context, id string) error
	ReorderHabits(ctx context.Context, habits []models.Habit) ([]models.Habit, error)

	// MarkComplete records a count delta for (habitID, date). Undo is the
	// same call with a negative delta.
	MarkComplete(ctx context.Context, habitID, date string, delta int) (models.Progress, error)
	UpdateTimer(ctx context.Context, habitID, date string, minutes int) (models.Progress, error)
	UpdatePomodoro(ctx context.Context, habitID, date string, sessions int) (models.Progress, error)

	CreateGroup(ctx context.Context, g models.HabitGroup) (models.HabitGroup, error)
	UpdateGroup(ctx context.Context, id string, g models.HabitGroup) (models.HabitGroup, error)
	DeleteGroup(ctx context.Context, id string) error
}
