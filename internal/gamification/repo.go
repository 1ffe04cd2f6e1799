package gamification

import (
	"context"
	"fmt"

	"github.com/2beens/fittrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// LogRepo stores workout logs. Logs are append only.
type LogRepo struct {
	db *pgxpool.Pool
}

func NewLogRepo(db *pgxpool.Pool) *LogRepo {
	return &LogRepo{
		db: db,
	}
}

func (r *LogRepo) Insert(ctx context.Context, l *WorkoutLog) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gamification.logs.insert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", l.WorkoutID))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO workout_log
				(id, user_id, workout_id, logged_at, duration_minutes, calories_burned, energy_before, energy_after, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		l.ID, l.UserID, l.WorkoutID, l.Date, l.Duration, l.CaloriesBurned, l.EnergyBefore, l.EnergyAfter, l.Notes,
	)
	return err
}

// List returns the newest logs of the user first.
func (r *LogRepo) List(ctx context.Context, userID string, limit int) (_ []WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.gamification.logs.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("limit", limit))

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, workout_id, logged_at, duration_minutes, calories_burned, energy_before, energy_after, notes
			FROM workout_log
			WHERE user_id = $1
			ORDER BY logged_at DESC
			LIMIT $2;`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []WorkoutLog{}
	for rows.Next() {
		var l WorkoutLog
		if err := rows.Scan(
			&l.ID, &l.UserID, &l.WorkoutID, &l.Date, &l.Duration,
			&l.CaloriesBurned, &l.EnergyBefore, &l.EnergyAfter, &l.Notes,
		); err != nil {
			return nil, fmt.Errorf("row scan: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}
