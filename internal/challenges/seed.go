package challenges

import (
	"context"
	"fmt"
	"time"
)

type challengeWriter interface {
	Upsert(ctx context.Context, c Challenge) error
}

// DefaultChallenges returns the starter challenges, running for 30 days from now.
func DefaultChallenges(now time.Time) []Challenge {
	start := now.UTC().Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, 30)
	return []Challenge{
		{
			ID:           "thirty-workouts",
			Title:        "30 Workouts",
			Description:  "Log 30 workouts in 30 days",
			Goal:         30,
			Unit:         "workouts",
			RewardPoints: 500,
			StartsAt:     start,
			EndsAt:       end,
		},
		{
			ID:           "burn-10k",
			Title:        "Burn 10k",
			Description:  "Burn 10,000 calories",
			Goal:         10000,
			Unit:         "kcal",
			RewardPoints: 300,
			StartsAt:     start,
			EndsAt:       end,
		},
		{
			ID:           "mobility-minutes",
			Title:        "Mobility Minutes",
			Description:  "Spend 300 minutes on mobility",
			Goal:         300,
			Unit:         "minutes",
			RewardPoints: 200,
			StartsAt:     start,
			EndsAt:       end,
		},
	}
}

func Seed(ctx context.Context, w challengeWriter, list []Challenge) error {
	for _, c := range list {
		if err := w.Upsert(ctx, c); err != nil {
			return fmt.Errorf("upsert challenge %s: %w", c.ID, err)
		}
	}
	return nil
}
