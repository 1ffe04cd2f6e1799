// Package suggestions maps a user's current state to one motivational message.
package suggestions

import (
	"time"

	"github.com/2beens/fittrack/internal/rules"
	"github.com/2beens/fittrack/pkg"
)

const (
	IDStartJourney      = "start_journey"
	IDMissedDays        = "missed_days"
	IDStreakCelebration = "streak_celebration"
	IDGoalPush          = "goal_push"
	IDLowEnergy         = "low_energy"
	IDPoorSleep         = "poor_sleep"
	IDKeepGoing         = "keep_going"
)

type Suggestion struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

// GoalProgress is the user's workouts goal, if one is set.
type GoalProgress struct {
	Current float64
	Target  float64
}

type State struct {
	LastWorkoutDate *time.Time
	Streak          int
	WorkoutsGoal    *GoalProgress
	EnergyLevel     int
	SleepQuality    int
}

type facts struct {
	State
	daysSinceLastWorkout int
}

func (f facts) goalRatio() (float64, bool) {
	g := f.WorkoutsGoal
	if g == nil || g.Target <= 0 {
		return 0, false
	}
	return g.Current / g.Target, true
}

func suggest(id, message string) func(facts) Suggestion {
	return rules.Const[facts](Suggestion{ID: id, Message: message})
}

var ordered = []rules.Rule[facts, Suggestion]{
	{
		Name: IDStartJourney,
		When: func(f facts) bool { return f.LastWorkoutDate == nil },
		Then: suggest(IDStartJourney, "Start your fitness journey today! Pick a workout and log your first session."),
	},
	{
		Name: IDMissedDays,
		When: func(f facts) bool { return f.daysSinceLastWorkout >= 3 },
		Then: suggest(IDMissedDays, "You've missed 3+ days. A short workout today gets you back on track."),
	},
	{
		Name: IDStreakCelebration,
		When: func(f facts) bool { return f.daysSinceLastWorkout == 0 && f.Streak >= 7 },
		Then: suggest(IDStreakCelebration, "Amazing streak! You've trained every day for a week or more. Keep the fire going."),
	},
	{
		Name: IDGoalPush,
		When: func(f facts) bool {
			ratio, ok := f.goalRatio()
			return ok && ratio >= 0.75
		},
		Then: suggest(IDGoalPush, "You're 75% of the way to your workout goal. Push through to the finish!"),
	},
	{
		Name: IDLowEnergy,
		When: func(f facts) bool { return f.EnergyLevel <= 4 },
		Then: suggest(IDLowEnergy, "Energy is low today. Try a light mobility or stretching session."),
	},
	{
		Name: IDPoorSleep,
		When: func(f facts) bool { return f.SleepQuality <= 5 },
		Then: suggest(IDPoorSleep, "Poor sleep can hurt recovery. Go easy today and aim for an early night."),
	},
}

var keepGoing = suggest(IDKeepGoing, "Keep going! Consistency is what builds results.")

// Suggest picks the first matching suggestion for the state at now,
// counting calendar days in loc.
func Suggest(state State, now time.Time, loc *time.Location) Suggestion {
	f := facts{State: state}
	if state.LastWorkoutDate != nil {
		f.daysSinceLastWorkout = pkg.DaysBetween(*state.LastWorkoutDate, now, loc)
	}
	return rules.FirstMatch(ordered, f, keepGoing)
}

// RuleNames lists the rules in evaluation order, default last.
func RuleNames() []string {
	names := make([]string, 0, len(ordered)+1)
	for _, r := range ordered {
		names = append(names, r.Name)
	}
	return append(names, IDKeepGoing)
}
