package gamification

import (
	"github.com/2beens/fittrack/internal/profile"
	"github.com/2beens/fittrack/internal/rules"
)

const (
	AchievementFirstWorkout = "first_workout"
	AchievementWeekWarrior  = "week_warrior"
	AchievementMonthMaster  = "month_master"
	AchievementCenturyClub  = "century_club"
)

// Progress is what achievement rules are evaluated against.
type Progress struct {
	Streak        int
	TotalWorkouts int
}

var achievementRules = []rules.Rule[Progress, profile.Achievement]{
	{
		Name: AchievementFirstWorkout,
		When: func(p Progress) bool { return p.TotalWorkouts == 1 },
		Then: rules.Const[Progress](profile.Achievement{
			ID:          AchievementFirstWorkout,
			Title:       "First Workout",
			Description: "Completed your very first workout",
			Icon:        "trophy",
		}),
	},
	{
		Name: AchievementWeekWarrior,
		When: func(p Progress) bool { return p.Streak >= 7 },
		Then: rules.Const[Progress](profile.Achievement{
			ID:          AchievementWeekWarrior,
			Title:       "Week Warrior",
			Description: "Worked out 7 days in a row",
			Icon:        "flame",
		}),
	},
	{
		Name: AchievementMonthMaster,
		When: func(p Progress) bool { return p.Streak >= 30 },
		Then: rules.Const[Progress](profile.Achievement{
			ID:          AchievementMonthMaster,
			Title:       "Month Master",
			Description: "Worked out 30 days in a row",
			Icon:        "calendar",
		}),
	},
	{
		Name: AchievementCenturyClub,
		When: func(p Progress) bool { return p.TotalWorkouts >= 100 },
		Then: rules.Const[Progress](profile.Achievement{
			ID:          AchievementCenturyClub,
			Title:       "Century Club",
			Description: "Logged 100 workouts",
			Icon:        "medal",
		}),
	},
}

// EarnedAchievements lists every achievement p satisfies, in rule order.
// Whether one was already unlocked is decided by the store.
func EarnedAchievements(p Progress) []profile.Achievement {
	return rules.AllMatches(achievementRules, p)
}
