package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"
)

//go:embed seed.json
var seedJSON []byte

type SeedData struct {
	Workouts      []Workout      `json:"workouts"`
	NutritionTips []NutritionTip `json:"nutritionTips"`
}

type catalogWriter interface {
	UpsertWorkout(ctx context.Context, w Workout) error
	UpsertNutritionTip(ctx context.Context, tip NutritionTip) error
}

// DefaultSeed returns the catalog bundled with the binary.
func DefaultSeed() (*SeedData, error) {
	var data SeedData
	if err := json.Unmarshal(seedJSON, &data); err != nil {
		return nil, fmt.Errorf("unmarshal seed: %w", err)
	}
	return &data, nil
}

// Seed upserts every workout and tip of data.
func Seed(ctx context.Context, w catalogWriter, data *SeedData) error {
	for _, workout := range data.Workouts {
		if len(workout.Exercises) == 0 {
			return fmt.Errorf("workout %s has no exercises", workout.ID)
		}
		if err := w.UpsertWorkout(ctx, workout); err != nil {
			return fmt.Errorf("seed workout %s: %w", workout.ID, err)
		}
	}
	for _, tip := range data.NutritionTips {
		if err := w.UpsertNutritionTip(ctx, tip); err != nil {
			return fmt.Errorf("seed nutrition tip %s: %w", tip.ID, err)
		}
	}
	log.Infof("catalog seeded: %d workouts, %d nutrition tips", len(data.Workouts), len(data.NutritionTips))
	return nil
}
