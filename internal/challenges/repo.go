package challenges

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

const challengeColumns = `c.id, c.title, c.description, c.goal, c.unit, c.reward_points, c.starts_at, c.ends_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// Active lists challenges running at now, ending soonest first.
func (r *Repo) Active(ctx context.Context, now time.Time) (_ []Challenge, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.active")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+challengeColumns+`
			FROM challenge c
			WHERE c.starts_at <= $1 AND c.ends_at > $1
			ORDER BY c.ends_at, c.id;`,
		now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Challenge{}
	for rows.Next() {
		var c Challenge
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.Goal, &c.Unit, &c.RewardPoints, &c.StartsAt, &c.EndsAt); err != nil {
			return nil, fmt.Errorf("row scan: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (r *Repo) Get(ctx context.Context, id string) (_ *Challenge, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("challenge.id", id))

	var c Challenge
	err = r.db.QueryRow(
		ctx,
		`SELECT `+challengeColumns+` FROM challenge c WHERE c.id = $1;`,
		id,
	).Scan(&c.ID, &c.Title, &c.Description, &c.Goal, &c.Unit, &c.RewardPoints, &c.StartsAt, &c.EndsAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repo) Upsert(ctx context.Context, c Challenge) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.upsert")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("challenge.id", c.ID))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO challenge (id, title, description, goal, unit, reward_points, starts_at, ends_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				description = EXCLUDED.description,
				goal = EXCLUDED.goal,
				unit = EXCLUDED.unit,
				reward_points = EXCLUDED.reward_points,
				starts_at = EXCLUDED.starts_at,
				ends_at = EXCLUDED.ends_at;`,
		c.ID, c.Title, c.Description, c.Goal, c.Unit, c.RewardPoints, c.StartsAt, c.EndsAt,
	)
	return err
}

// Join adds the user to the challenge. Joining twice keeps the first progress row.
func (r *Repo) Join(ctx context.Context, userID, challengeID string, now time.Time) (_ *Progress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.join")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("challenge.id", challengeID))

	_, err = r.db.Exec(
		ctx,
		`INSERT INTO user_challenge_progress (user_id, challenge_id, progress, completed, joined_at, updated_at)
			VALUES ($1, $2, 0, FALSE, $3, $3)
			ON CONFLICT (user_id, challenge_id) DO NOTHING;`,
		userID, challengeID, now,
	)
	if err != nil {
		if pkg.IsForeignKeyViolationError(err) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}

	return r.progress(ctx, userID, challengeID)
}

// UpdateProgress sets the progress and derives completion from the goal in the same statement.
func (r *Repo) UpdateProgress(ctx context.Context, userID, challengeID string, progress int, now time.Time) (_ *Progress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.updateProgress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("challenge.id", challengeID))
	span.SetAttributes(attribute.Int("progress", progress))

	var p Progress
	err = r.db.QueryRow(
		ctx,
		`UPDATE user_challenge_progress ucp
			SET progress = $3,
				completed = $3 >= c.goal,
				updated_at = $4
			FROM challenge c
			WHERE c.id = ucp.challenge_id AND ucp.user_id = $1 AND ucp.challenge_id = $2
			RETURNING ucp.user_id, ucp.challenge_id, ucp.progress, ucp.completed, ucp.joined_at, ucp.updated_at;`,
		userID, challengeID, progress, now,
	).Scan(&p.UserID, &p.ChallengeID, &p.Progress, &p.Completed, &p.JoinedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotJoined
		}
		return nil, err
	}
	return &p, nil
}

// Mine lists every challenge the user joined together with the user's progress.
func (r *Repo) Mine(ctx context.Context, userID string) (_ []Joined, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.challenges.mine")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+challengeColumns+`,
				ucp.user_id, ucp.challenge_id, ucp.progress, ucp.completed, ucp.joined_at, ucp.updated_at
			FROM user_challenge_progress ucp
			JOIN challenge c ON c.id = ucp.challenge_id
			WHERE ucp.user_id = $1
			ORDER BY ucp.joined_at, c.id;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Joined{}
	for rows.Next() {
		var j Joined
		c, p := &j.Challenge, &j.Progress
		if err := rows.Scan(
			&c.ID, &c.Title, &c.Description, &c.Goal, &c.Unit, &c.RewardPoints, &c.StartsAt, &c.EndsAt,
			&p.UserID, &p.ChallengeID, &p.Progress, &p.Completed, &p.JoinedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("row scan: %w", err)
		}
		list = append(list, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (r *Repo) progress(ctx context.Context, userID, challengeID string) (*Progress, error) {
	var p Progress
	err := r.db.QueryRow(
		ctx,
		`SELECT user_id, challenge_id, progress, completed, joined_at, updated_at
			FROM user_challenge_progress
			WHERE user_id = $1 AND challenge_id = $2;`,
		userID, challengeID,
	).Scan(&p.UserID, &p.ChallengeID, &p.Progress, &p.Completed, &p.JoinedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotJoined
		}
		return nil, err
	}
	return &p, nil
}
