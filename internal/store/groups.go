package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ritmoapp/ritmo/internal/models"
)

func (s *Store) groupIndexLocked(id string) int {
	for i := range s.groups {
		if s.groups[i].ID == id {
			return i
		}
	}
	return -1
}

// AddGroup inserts a provisional group and reconciles it with the
// authoritative entity by correlation id, the same way AddHabit does.
func (s *Store) AddGroup(g models.HabitGroup) (models.HabitGroup, *Op) {
	s.mu.Lock()
	corrID := uuid.New().String()
	g.ID = corrID
	next := 0
	for _, existing := range s.groups {
		if existing.Order >= next {
			next = existing.Order + 1
		}
	}
	g.Order = next
	s.groups = append(s.groups, g)
	s.mu.Unlock()
	s.persist()

	op := newOp()
	var created models.HabitGroup
	s.confirm(op, "add group",
		func(ctx context.Context) error {
			var err error
			created, err = s.svc.CreateGroup(ctx, g)
			return err
		},
		func() {
			if i := s.groupIndexLocked(corrID); i >= 0 {
				created.Order = s.groups[i].Order
				s.groups[i] = created
				s.regroupHabitsLocked(corrID, &created.ID)
			}
		},
		func() {
			if i := s.groupIndexLocked(corrID); i >= 0 {
				s.groups = append(s.groups[:i], s.groups[i+1:]...)
			}
			s.regroupHabitsLocked(corrID, nil)
		})
	return g, op
}

// regroupHabitsLocked rewrites habit group references from oldID to the new
// reference (nil detaches).
func (s *Store) regroupHabitsLocked(oldID string, newID *string) {
	for i := range s.habits {
		if s.habits[i].GroupID != nil && *s.habits[i].GroupID == oldID {
			if newID == nil {
				s.habits[i].GroupID = nil
			} else {
				id := *newID
				s.habits[i].GroupID = &id
			}
		}
	}
}

// UpdateGroup applies new field values immediately; identity and order stay.
func (s *Store) UpdateGroup(id string, g models.HabitGroup) (*Op, error) {
	s.mu.Lock()
	i := s.groupIndexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("group not found: %s", id)
	}
	prev := s.groups[i]
	g.ID = prev.ID
	g.Order = prev.Order
	s.groups[i] = g
	s.mu.Unlock()
	s.persist()

	op := newOp()
	s.confirm(op, "update group",
		func(ctx context.Context) error {
			_, err := s.svc.UpdateGroup(ctx, id, g)
			return err
		},
		nil,
		func() {
			if j := s.groupIndexLocked(id); j >= 0 {
				s.groups[j] = prev
			}
		})
	return op, nil
}

// DeleteGroup removes the group and detaches its member habits rather than
// cascading. Rollback restores the group and every member's prior reference.
func (s *Store) DeleteGroup(id string) (*Op, error) {
	s.mu.Lock()
	i := s.groupIndexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("group not found: %s", id)
	}
	prevGroup := s.groups[i]
	groupIndex := i
	s.groups = append(s.groups[:i], s.groups[i+1:]...)

	var detached []string
	for j := range s.habits {
		if s.habits[j].GroupID != nil && *s.habits[j].GroupID == id {
			detached = append(detached, s.habits[j].ID)
			s.habits[j].GroupID = nil
		}
	}
	s.mu.Unlock()
	s.persist()

	op := newOp()
	s.confirm(op, "delete group",
		func(ctx context.Context) error {
			return s.svc.DeleteGroup(ctx, id)
		},
		nil,
		func() {
			if groupIndex > len(s.groups) {
				s.groups = append(s.groups, prevGroup)
			} else {
				s.groups = append(s.groups[:groupIndex],
					append([]models.HabitGroup{prevGroup}, s.groups[groupIndex:]...)...)
			}
			for _, habitID := range detached {
				if j := s.habitIndexLocked(habitID); j >= 0 && s.habits[j].GroupID == nil {
					gid := id
					s.habits[j].GroupID = &gid
				}
			}
		})
	return op, nil
}

// GroupByID returns the group with the given id.
func (s *Store) GroupByID(id string) (models.HabitGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.groupIndexLocked(id); i >= 0 {
		return s.groups[i], nil
	}
	return models.HabitGroup{}, fmt.Errorf("group not found: %s", id)
}

// GroupByName returns the first group whose name matches.
func (s *Store) GroupByName(name string) (models.HabitGroup, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.groups {
		if g.Name == name {
			return g, nil
		}
	}
	return models.HabitGroup{}, fmt.Errorf("group not found: %s", name)
}
