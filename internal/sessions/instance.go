package sessions

import "time"

// Instance is a user's run of one workout on one calendar day.
type Instance struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"userId"`
	WorkoutID          string     `json:"workoutId"`
	Day                string     `json:"day"`
	Status             Status     `json:"status"`
	CompletedExercises []string   `json:"completedExercises"`
	StartedAt          time.Time  `json:"startedAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
	CompletedAt        *time.Time `json:"completedAt,omitempty"`

	Version int64 `json:"-"`
}

// State lifts the stored fields into the state machine.
func (i *Instance) State() State {
	switch i.Status {
	case StatusInProgress:
		return InProgress{Completed: NewExerciseSet(i.CompletedExercises...), StartedAt: i.StartedAt}
	case StatusCompleted:
		c := Completed{Exercises: NewExerciseSet(i.CompletedExercises...), StartedAt: i.StartedAt}
		if i.CompletedAt != nil {
			c.CompletedAt = *i.CompletedAt
		}
		return c
	default:
		return NotStarted{}
	}
}

func (i *Instance) apply(s State, now time.Time) {
	i.Status = s.Status()
	i.UpdatedAt = now
	switch st := s.(type) {
	case InProgress:
		i.CompletedExercises = st.Completed.Sorted()
		i.StartedAt = st.StartedAt
		i.CompletedAt = nil
	case Completed:
		i.CompletedExercises = st.Exercises.Sorted()
		i.StartedAt = st.StartedAt
		completedAt := st.CompletedAt
		i.CompletedAt = &completedAt
	}
}
