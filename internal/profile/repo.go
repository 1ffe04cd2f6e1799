package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrEmailTaken      = errors.New("email already registered")
)

const profileColumns = `
	id, email, name, avatar, goals, weight, energy_level, sleep_quality,
	last_workout_date, workout_streak, total_workouts, points, version`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Create(ctx context.Context, p *Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", p.ID))

	goalsJSON, weightJSON, err := marshalJSONColumns(p)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO user_profile
				(id, email, name, avatar, goals, weight, energy_level, sleep_quality, version)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 1);`,
		p.ID, p.Email, p.Name, p.Avatar, goalsJSON, weightJSON,
		p.CustomMetrics.EnergyLevel, p.CustomMetrics.SleepQuality,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return ErrEmailTaken
		}
		return err
	}

	p.Version = 1
	return nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id))

	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM user_profile WHERE id = $1;`, id)
	return scanProfile(row)
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.getByEmail")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	row := r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM user_profile WHERE email = $1;`, email)
	return scanProfile(row)
}

// Update writes the user editable fields if the stored version still matches p.Version.
func (r *Repo) Update(ctx context.Context, p *Profile) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", p.ID))
	span.SetAttributes(attribute.Int64("version", p.Version))

	goalsJSON, weightJSON, err := marshalJSONColumns(p)
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(
		ctx,
		`UPDATE user_profile
			SET name = $1, avatar = $2, goals = $3, weight = $4, energy_level = $5, sleep_quality = $6,
				version = version + 1, updated_at = now()
			WHERE id = $7 AND version = $8;`,
		p.Name, p.Avatar, goalsJSON, weightJSON,
		p.CustomMetrics.EnergyLevel, p.CustomMetrics.SleepQuality,
		p.ID, p.Version,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrConflict(ctx, p.ID)
	}

	p.Version++
	return nil
}

// UpdateStats swaps in new workout counters if the stored version is still expectedVersion.
func (r *Repo) UpdateStats(ctx context.Context, id string, expectedVersion int64, stats Stats) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.updateStats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", id))
	span.SetAttributes(attribute.Int64("version", expectedVersion))
	span.SetAttributes(attribute.Int("streak", stats.WorkoutStreak))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE user_profile
			SET workout_streak = $1, total_workouts = $2, points = $3, last_workout_date = $4,
				version = version + 1, updated_at = now()
			WHERE id = $5 AND version = $6;`,
		stats.WorkoutStreak, stats.TotalWorkouts, stats.Points, stats.LastWorkoutDate,
		id, expectedVersion,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return r.missingOrConflict(ctx, id)
	}
	return nil
}

func (r *Repo) Achievements(ctx context.Context, userID string) (_ []Achievement, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.achievements")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT id, title, description, icon, unlocked_at
			FROM achievement
			WHERE user_id = $1
			ORDER BY unlocked_at, id;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	achievements := []Achievement{}
	for rows.Next() {
		var a Achievement
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.Icon, &a.UnlockedDate); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		achievements = append(achievements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return achievements, nil
}

// AddAchievement records a for the user unless it is already there.
// It reports whether a new row was written.
func (r *Repo) AddAchievement(ctx context.Context, userID string, a Achievement) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profile.addAchievement")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("achievement.id", a.ID))

	tag, err := r.db.Exec(
		ctx,
		`INSERT INTO achievement (user_id, id, title, description, icon, unlocked_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (user_id, id) DO NOTHING;`,
		userID, a.ID, a.Title, a.Description, a.Icon, a.UnlockedDate,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func (r *Repo) missingOrConflict(ctx context.Context, id string) error {
	var exists bool
	if err := r.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM user_profile WHERE id = $1);`,
		id,
	).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrProfileNotFound
	}
	return pkg.ErrVersionConflict
}

func scanProfile(row pgx.Row) (*Profile, error) {
	var (
		p          Profile
		goalsJSON  []byte
		weightJSON []byte
	)
	if err := row.Scan(
		&p.ID, &p.Email, &p.Name, &p.Avatar, &goalsJSON, &weightJSON,
		&p.CustomMetrics.EnergyLevel, &p.CustomMetrics.SleepQuality, &p.CustomMetrics.LastWorkoutDate,
		&p.WorkoutStreak, &p.TotalWorkouts, &p.Points, &p.Version,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("row scan: %w", err)
	}

	if err := json.Unmarshal(goalsJSON, &p.Goals); err != nil {
		return nil, fmt.Errorf("unmarshal goals: %w", err)
	}
	if len(weightJSON) > 0 {
		p.Weight = &Weight{}
		if err := json.Unmarshal(weightJSON, p.Weight); err != nil {
			return nil, fmt.Errorf("unmarshal weight: %w", err)
		}
	}

	return &p, nil
}

func marshalJSONColumns(p *Profile) (goals []byte, weight []byte, err error) {
	g := p.Goals
	if g == nil {
		g = []Goal{}
	}
	goals, err = json.Marshal(g)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal goals: %w", err)
	}
	if p.Weight != nil {
		weight, err = json.Marshal(p.Weight)
		if err != nil {
			return nil, nil, fmt.Errorf("marshal weight: %w", err)
		}
	}
	return goals, weight, nil
}
