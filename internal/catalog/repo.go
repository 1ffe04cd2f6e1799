package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fittrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var ErrWorkoutNotFound = errors.New("workout not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Workouts(ctx context.Context) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.workouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT
				w.id, w.title, w.description, w.category, w.difficulty,
				w.duration_minutes, w.calories, w.image_url, count(e.id)
			FROM workout w
			LEFT JOIN exercise e ON e.workout_id = w.id
			GROUP BY w.id
			ORDER BY w.title;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	workouts := []Workout{}
	for rows.Next() {
		var w Workout
		if err := rows.Scan(
			&w.ID, &w.Title, &w.Description, &w.Category, &w.Difficulty,
			&w.DurationMinutes, &w.Calories, &w.ImageURL, &w.ExerciseCount,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("workouts", len(workouts)))
	return workouts, nil
}

// Workout returns the workout with its exercises in position order.
func (r *Repo) Workout(ctx context.Context, id string) (_ *Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.workout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", id))

	var w Workout
	if err := r.db.QueryRow(
		ctx,
		`SELECT id, title, description, category, difficulty, duration_minutes, calories, image_url
			FROM workout WHERE id = $1;`,
		id,
	).Scan(
		&w.ID, &w.Title, &w.Description, &w.Category, &w.Difficulty,
		&w.DurationMinutes, &w.Calories, &w.ImageURL,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, position, name, description, sets, reps, duration_seconds, rest_seconds
			FROM exercise
			WHERE workout_id = $1
			ORDER BY position;`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	w.Exercises = []Exercise{}
	for rows.Next() {
		var e Exercise
		if err := rows.Scan(
			&e.ID, &e.Position, &e.Name, &e.Description, &e.Sets, &e.Reps, &e.DurationSeconds, &e.RestSeconds,
		); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		w.Exercises = append(w.Exercises, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	w.ExerciseCount = len(w.Exercises)
	return &w, nil
}

func (r *Repo) ExerciseCount(ctx context.Context, workoutID string) (_ int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.exerciseCount")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", workoutID))

	var count int
	if err := r.db.QueryRow(
		ctx,
		`SELECT count(e.id)
			FROM workout w
			LEFT JOIN exercise e ON e.workout_id = w.id
			WHERE w.id = $1
			GROUP BY w.id;`,
		workoutID,
	).Scan(&count); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrWorkoutNotFound
		}
		return 0, err
	}

	return count, nil
}

// NutritionTips lists tips of a category, or all of them for an empty category.
func (r *Repo) NutritionTips(ctx context.Context, category string) (_ []NutritionTip, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.nutritionTips")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("category", category))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, category, title, content, image_url
			FROM nutrition_tip
			WHERE ($1::text = '' OR category = $1)
			ORDER BY category, title;`,
		category,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tips := []NutritionTip{}
	for rows.Next() {
		var tip NutritionTip
		if err := rows.Scan(&tip.ID, &tip.Category, &tip.Title, &tip.Content, &tip.ImageURL); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		tips = append(tips, tip)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tips, nil
}

// UpsertWorkout writes the workout and replaces its exercises in one transaction.
func (r *Repo) UpsertWorkout(ctx context.Context, w Workout) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.upsertWorkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", w.ID))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	if _, err = tx.Exec(
		ctx,
		`INSERT INTO workout (id, title, description, category, difficulty, duration_minutes, calories, image_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title, description = EXCLUDED.description, category = EXCLUDED.category,
				difficulty = EXCLUDED.difficulty, duration_minutes = EXCLUDED.duration_minutes,
				calories = EXCLUDED.calories, image_url = EXCLUDED.image_url;`,
		w.ID, w.Title, w.Description, w.Category, w.Difficulty, w.DurationMinutes, w.Calories, w.ImageURL,
	); err != nil {
		return fmt.Errorf("upsert workout: %w", err)
	}

	if _, err = tx.Exec(ctx, `DELETE FROM exercise WHERE workout_id = $1;`, w.ID); err != nil {
		return fmt.Errorf("clear exercises: %w", err)
	}

	for i, e := range w.Exercises {
		if _, err = tx.Exec(
			ctx,
			`INSERT INTO exercise
					(workout_id, id, position, name, description, sets, reps, duration_seconds, rest_seconds)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
			w.ID, e.ID, i, e.Name, e.Description, e.Sets, e.Reps, e.DurationSeconds, e.RestSeconds,
		); err != nil {
			return fmt.Errorf("insert exercise %s: %w", e.ID, err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (r *Repo) UpsertNutritionTip(ctx context.Context, tip NutritionTip) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.catalog.upsertNutritionTip")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO nutrition_tip (id, category, title, content, image_url)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET
				category = EXCLUDED.category, title = EXCLUDED.title,
				content = EXCLUDED.content, image_url = EXCLUDED.image_url;`,
		tip.ID, tip.Category, tip.Title, tip.Content, tip.ImageURL,
	)
	return err
}
