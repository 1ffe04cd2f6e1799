package sessions_test

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/2beens/fittrack/internal/sessions"
	"github.com/2beens/fittrack/pkg"
)

type memStore struct {
	mu        sync.Mutex
	instances map[string]sessions.Instance

	// saveConflicts makes the next n Save calls fail with a version conflict
	saveConflicts int
	// beforeCreate runs right before Create checks for an existing instance
	beforeCreate func()
}

func newMemStore() *memStore {
	return &memStore{
		instances: map[string]sessions.Instance{},
	}
}

func copyInstance(inst sessions.Instance) sessions.Instance {
	inst.CompletedExercises = slices.Clone(inst.CompletedExercises)
	if inst.CompletedAt != nil {
		completedAt := *inst.CompletedAt
		inst.CompletedAt = &completedAt
	}
	return inst
}

func (s *memStore) FindInProgress(_ context.Context, userID, workoutID, day string) (*sessions.Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inst := range s.instances {
		if inst.UserID == userID && inst.WorkoutID == workoutID && inst.Day == day && inst.Status == sessions.StatusInProgress {
			found := copyInstance(inst)
			return &found, nil
		}
	}
	return nil, sessions.ErrInstanceNotFound
}

func (s *memStore) Create(_ context.Context, inst *sessions.Instance) error {
	if s.beforeCreate != nil {
		hook := s.beforeCreate
		s.beforeCreate = nil
		hook()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.instances {
		if existing.UserID == inst.UserID && existing.WorkoutID == inst.WorkoutID &&
			existing.Day == inst.Day && existing.Status == sessions.StatusInProgress {
			return sessions.ErrInstanceExists
		}
	}
	inst.Version = 1
	s.instances[inst.ID] = copyInstance(*inst)
	return nil
}

func (s *memStore) Touch(_ context.Context, id string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, ok := s.instances[id]
	if !ok {
		return sessions.ErrInstanceNotFound
	}
	inst.UpdatedAt = now
	s.instances[id] = inst
	return nil
}

func (s *memStore) Save(_ context.Context, inst *sessions.Instance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.instances[inst.ID]
	if !ok {
		return sessions.ErrInstanceNotFound
	}
	if s.saveConflicts > 0 {
		s.saveConflicts--
		// somebody else wrote in between
		stored.Version++
		s.instances[inst.ID] = stored
		return pkg.ErrVersionConflict
	}
	if stored.Version != inst.Version {
		return pkg.ErrVersionConflict
	}
	inst.Version++
	s.instances[inst.ID] = copyInstance(*inst)
	return nil
}

func (s *memStore) ListForDay(_ context.Context, userID, day string) ([]sessions.Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := []sessions.Instance{}
	for _, inst := range s.instances {
		if inst.UserID == userID && inst.Day == day {
			list = append(list, copyInstance(inst))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].StartedAt.Before(list[j].StartedAt)
	})
	return list, nil
}

func (s *memStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.instances)
}
