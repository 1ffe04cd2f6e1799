package sessions

import (
	"errors"
	"slices"
	"time"
)

var (
	ErrInvalidTransition   = errors.New("invalid workout state transition")
	ErrNoActiveInstance    = errors.New("no active workout instance")
	ErrIncompleteExercises = errors.New("finish all exercises before completing the workout")
)

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// State is one of NotStarted, InProgress or Completed.
type State interface {
	Status() Status
}

type NotStarted struct{}

type InProgress struct {
	Completed ExerciseSet
	StartedAt time.Time
}

type Completed struct {
	Exercises   ExerciseSet
	StartedAt   time.Time
	CompletedAt time.Time
}

func (NotStarted) Status() Status { return StatusNotStarted }
func (InProgress) Status() Status { return StatusInProgress }
func (Completed) Status() Status  { return StatusCompleted }

// ExerciseSet is a set of exercise IDs.
type ExerciseSet map[string]struct{}

func NewExerciseSet(ids ...string) ExerciseSet {
	s := make(ExerciseSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s ExerciseSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the IDs in lexical order.
func (s ExerciseSet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s ExerciseSet) clone() ExerciseSet {
	c := make(ExerciseSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

// Start begins a workout. Starting one already in progress resumes it unchanged.
func Start(s State, now time.Time) (State, error) {
	switch st := s.(type) {
	case NotStarted:
		return InProgress{Completed: NewExerciseSet(), StartedAt: now}, nil
	case InProgress:
		return st, nil
	default:
		return s, ErrInvalidTransition
	}
}

// Toggle marks exerciseID as completed or not. changed is false when the set
// already had the requested membership.
func Toggle(s State, exerciseID string, completed bool) (_ State, changed bool, err error) {
	st, ok := s.(InProgress)
	if !ok {
		return s, false, ErrNoActiveInstance
	}
	if st.Completed.Has(exerciseID) == completed {
		return st, false, nil
	}

	next := st.Completed.clone()
	if completed {
		next[exerciseID] = struct{}{}
	} else {
		delete(next, exerciseID)
	}
	return InProgress{Completed: next, StartedAt: st.StartedAt}, true, nil
}

// Complete finishes the workout once exactly total exercises are completed.
func Complete(s State, total int, now time.Time) (State, error) {
	st, ok := s.(InProgress)
	if !ok {
		return s, ErrNoActiveInstance
	}
	if len(st.Completed) != total {
		return s, ErrIncompleteExercises
	}
	return Completed{
		Exercises:   st.Completed.clone(),
		StartedAt:   st.StartedAt,
		CompletedAt: now,
	}, nil
}
