package gamification

import (
	"time"

	"github.com/2beens/fittrack/pkg"
)

const (
	minEnergy = 0
	maxEnergy = 10
)

// WorkoutLog is an immutable record of a finished workout.
type WorkoutLog struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	WorkoutID      string    `json:"workoutId"`
	Date           time.Time `json:"date"`
	Duration       int       `json:"duration"`
	CaloriesBurned int       `json:"caloriesBurned"`
	EnergyBefore   int       `json:"energyBefore"`
	EnergyAfter    int       `json:"energyAfter"`
	Notes          string    `json:"notes"`
}

func (l *WorkoutLog) Validate() error {
	if l.WorkoutID == "" {
		return pkg.NewValidationError("workoutId", "required")
	}
	if l.Duration <= 0 {
		return pkg.NewValidationError("duration", "must be greater than zero")
	}
	if l.CaloriesBurned < 0 {
		return pkg.NewValidationError("caloriesBurned", "must not be negative")
	}
	if l.EnergyBefore < minEnergy || l.EnergyBefore > maxEnergy {
		return pkg.NewValidationError("energyBefore", "must be between 0 and 10")
	}
	if l.EnergyAfter < minEnergy || l.EnergyAfter > maxEnergy {
		return pkg.NewValidationError("energyAfter", "must be between 0 and 10")
	}
	return nil
}
