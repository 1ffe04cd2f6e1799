package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrInstanceNotFound = errors.New("workout instance not found")
	ErrInstanceExists   = errors.New("workout instance already in progress")
)

const instanceColumns = `id, user_id, workout_id, day, status, completed_exercises, started_at, updated_at, completed_at, version`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) FindInProgress(ctx context.Context, userID, workoutID, day string) (_ *Instance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.findInProgress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", workoutID))
	span.SetAttributes(attribute.String("day", day))

	date, err := dayDate(day)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRow(
		ctx,
		`SELECT `+instanceColumns+`
			FROM user_workout
			WHERE user_id = $1 AND workout_id = $2 AND day = $3 AND status = 'in_progress';`,
		userID, workoutID, date,
	)
	inst, err := scanInstance(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrInstanceNotFound
	}
	return inst, err
}

// Create inserts a new instance. It fails with ErrInstanceExists when another
// in_progress instance for the same user, workout and day is already there.
func (r *Repo) Create(ctx context.Context, inst *Instance) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("instance.id", inst.ID))

	date, err := dayDate(inst.Day)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO user_workout
				(id, user_id, workout_id, day, status, completed_exercises, started_at, updated_at, completed_at, version)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 1);`,
		inst.ID, inst.UserID, inst.WorkoutID, date, string(inst.Status),
		nonNil(inst.CompletedExercises), inst.StartedAt, inst.UpdatedAt, inst.CompletedAt,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrInstanceExists
		}
		return err
	}

	inst.Version = 1
	return nil
}

// Touch refreshes updated_at without a version bump.
func (r *Repo) Touch(ctx context.Context, id string, now time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.touch")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(ctx, `UPDATE user_workout SET updated_at = $1 WHERE id = $2;`, now, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInstanceNotFound
	}
	return nil
}

// Save writes status and progress if the stored version still matches inst.Version.
func (r *Repo) Save(ctx context.Context, inst *Instance) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.save")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("instance.id", inst.ID))
	span.SetAttributes(attribute.Int64("version", inst.Version))
	span.SetAttributes(attribute.String("status", string(inst.Status)))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE user_workout
			SET status = $1, completed_exercises = $2, updated_at = $3, completed_at = $4, version = version + 1
			WHERE id = $5 AND version = $6;`,
		string(inst.Status), nonNil(inst.CompletedExercises), inst.UpdatedAt, inst.CompletedAt,
		inst.ID, inst.Version,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.db.QueryRow(
			ctx,
			`SELECT EXISTS (SELECT 1 FROM user_workout WHERE id = $1);`,
			inst.ID,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return ErrInstanceNotFound
		}
		return pkg.ErrVersionConflict
	}

	inst.Version++
	return nil
}

func (r *Repo) ListForDay(ctx context.Context, userID, day string) (_ []Instance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.listForDay")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("day", day))

	date, err := dayDate(day)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT `+instanceColumns+`
			FROM user_workout
			WHERE user_id = $1 AND day = $2
			ORDER BY started_at;`,
		userID, date,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	instances := []Instance{}
	for rows.Next() {
		inst, err := scanInstance(rows)
		if err != nil {
			return nil, err
		}
		instances = append(instances, *inst)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return instances, nil
}

func scanInstance(row pgx.Row) (*Instance, error) {
	var (
		inst   Instance
		day    time.Time
		status string
	)
	if err := row.Scan(
		&inst.ID, &inst.UserID, &inst.WorkoutID, &day, &status, &inst.CompletedExercises,
		&inst.StartedAt, &inst.UpdatedAt, &inst.CompletedAt, &inst.Version,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("row scan: %w", err)
	}
	inst.Day = day.Format(pkg.DayLayout)
	inst.Status = Status(status)
	return &inst, nil
}

func dayDate(day string) (time.Time, error) {
	date, err := time.Parse(pkg.DayLayout, day)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q: %w", day, err)
	}
	return date, nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
