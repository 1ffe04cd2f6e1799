package profile

import (
	"time"

	"github.com/2beens/fittrack/internal/suggestions"
)

const GoalTypeWorkouts = "workouts"

const (
	WeightUnitKg = "kg"
	WeightUnitLb = "lb"
)

type Goal struct {
	ID      string  `json:"id"`
	Type    string  `json:"type"`
	Title   string  `json:"title"`
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
	Unit    string  `json:"unit"`
}

type Weight struct {
	Current float64 `json:"current"`
	Target  float64 `json:"target"`
	Unit    string  `json:"unit"`
}

type CustomMetrics struct {
	EnergyLevel     int        `json:"energyLevel"`
	SleepQuality    int        `json:"sleepQuality"`
	LastWorkoutDate *time.Time `json:"lastWorkoutDate,omitempty"`
}

type Achievement struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Icon         string    `json:"icon"`
	UnlockedDate time.Time `json:"unlockedDate"`
}

type Profile struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Avatar        string        `json:"avatar"`
	Goals         []Goal        `json:"goals"`
	WorkoutStreak int           `json:"workoutStreak"`
	TotalWorkouts int           `json:"totalWorkouts"`
	Points        int           `json:"points"`
	Weight        *Weight       `json:"weight,omitempty"`
	CustomMetrics CustomMetrics `json:"customMetrics"`

	// Version is bumped by every write and guards compare-and-swap updates.
	Version int64 `json:"-"`
}

// Stats are the counters owned by workout accounting.
type Stats struct {
	WorkoutStreak   int
	TotalWorkouts   int
	Points          int
	LastWorkoutDate time.Time
}

// WorkoutsGoal returns the first goal of the workouts type.
func (p *Profile) WorkoutsGoal() *Goal {
	for i := range p.Goals {
		if p.Goals[i].Type == GoalTypeWorkouts {
			return &p.Goals[i]
		}
	}
	return nil
}

func (p *Profile) SuggestionState() suggestions.State {
	state := suggestions.State{
		LastWorkoutDate: p.CustomMetrics.LastWorkoutDate,
		Streak:          p.WorkoutStreak,
		EnergyLevel:     p.CustomMetrics.EnergyLevel,
		SleepQuality:    p.CustomMetrics.SleepQuality,
	}
	if g := p.WorkoutsGoal(); g != nil {
		state.WorkoutsGoal = &suggestions.GoalProgress{Current: g.Current, Target: g.Target}
	}
	return state
}

type Overview struct {
	Profile      *Profile               `json:"profile"`
	Achievements []Achievement          `json:"achievements"`
	Suggestion   suggestions.Suggestion `json:"suggestion"`
}

// Update carries the user editable fields; nil means unchanged.
type Update struct {
	Name         *string `json:"name,omitempty"`
	Avatar       *string `json:"avatar,omitempty"`
	Goals        []Goal  `json:"goals,omitempty"`
	Weight       *Weight `json:"weight,omitempty"`
	EnergyLevel  *int    `json:"energyLevel,omitempty"`
	SleepQuality *int    `json:"sleepQuality,omitempty"`
}
