package gamification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/profile"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	PointsPerWorkout = 50
	DefaultLogLimit  = 20
	MaxLogLimit      = 100

	maxCASAttempts = 5
)

type statsStore interface {
	Get(ctx context.Context, id string) (*profile.Profile, error)
	UpdateStats(ctx context.Context, id string, expectedVersion int64, stats profile.Stats) error
	AddAchievement(ctx context.Context, userID string, a profile.Achievement) (bool, error)
}

type logStore interface {
	Insert(ctx context.Context, l *WorkoutLog) error
	List(ctx context.Context, userID string, limit int) ([]WorkoutLog, error)
}

// Outcome is the profile state after a workout was accounted for.
type Outcome struct {
	WorkoutStreak        int                   `json:"workoutStreak"`
	TotalWorkouts        int                   `json:"totalWorkouts"`
	Points               int                   `json:"points"`
	PointsEarned         int                   `json:"pointsEarned"`
	UnlockedAchievements []profile.Achievement `json:"unlockedAchievements"`
}

type LogResult struct {
	Log     WorkoutLog `json:"log"`
	Outcome Outcome    `json:"outcome"`
}

// Accountant turns logged workouts into streaks, points and achievements.
type Accountant struct {
	profiles       statsStore
	logs           logStore
	loc            *time.Location
	metricsManager *metrics.Manager

	Now   func() time.Time
	NewID func() string
}

func NewAccountant(profiles statsStore, logs logStore, loc *time.Location, metricsManager *metrics.Manager) *Accountant {
	return &Accountant{
		profiles:       profiles,
		logs:           logs,
		loc:            loc,
		metricsManager: metricsManager,
		Now:            time.Now,
		NewID:          uuid.NewString,
	}
}

// LogWorkout validates and stores the log, then accounts for it on the profile.
func (a *Accountant) LogWorkout(ctx context.Context, userID string, l WorkoutLog) (_ *LogResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "accountant.gamification.logWorkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", l.WorkoutID))

	if err := l.Validate(); err != nil {
		return nil, err
	}

	l.ID = a.NewID()
	l.UserID = userID
	l.Date = a.Now()
	if err := a.logs.Insert(ctx, &l); err != nil {
		return nil, fmt.Errorf("insert workout log: %w", err)
	}
	a.metricsManager.CounterWorkoutsLogged.Inc()

	outcome, err := a.RecordWorkout(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("record workout: %w", err)
	}

	return &LogResult{
		Log:     l,
		Outcome: *outcome,
	}, nil
}

// RecordWorkout advances the streak and counters of the user by one workout
// done now, and unlocks achievements the new counters qualify for.
func (a *Accountant) RecordWorkout(ctx context.Context, userID string) (_ *Outcome, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "accountant.gamification.recordWorkout")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := a.Now()
	var stats profile.Stats
	err = pkg.RetryOnConflict(ctx, maxCASAttempts, func(ctx context.Context) error {
		p, err := a.profiles.Get(ctx, userID)
		if err != nil {
			return err
		}

		stats = profile.Stats{
			WorkoutStreak:   NextStreak(p.WorkoutStreak, p.CustomMetrics.LastWorkoutDate, now, a.loc),
			TotalWorkouts:   p.TotalWorkouts + 1,
			Points:          p.Points + PointsPerWorkout,
			LastWorkoutDate: now,
		}

		err = a.profiles.UpdateStats(ctx, userID, p.Version, stats)
		if errors.Is(err, pkg.ErrVersionConflict) {
			a.metricsManager.CounterCASConflicts.WithLabelValues("profile").Inc()
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("streak", stats.WorkoutStreak))
	span.SetAttributes(attribute.Int("total", stats.TotalWorkouts))

	outcome := &Outcome{
		WorkoutStreak:        stats.WorkoutStreak,
		TotalWorkouts:        stats.TotalWorkouts,
		Points:               stats.Points,
		PointsEarned:         PointsPerWorkout,
		UnlockedAchievements: []profile.Achievement{},
	}

	earned := EarnedAchievements(Progress{Streak: stats.WorkoutStreak, TotalWorkouts: stats.TotalWorkouts})
	for _, achievement := range earned {
		achievement.UnlockedDate = now
		added, err := a.profiles.AddAchievement(ctx, userID, achievement)
		if err != nil {
			return nil, fmt.Errorf("add achievement %s: %w", achievement.ID, err)
		}
		if !added {
			continue
		}
		log.Debugf("user [%s] unlocked achievement: %s", userID, achievement.ID)
		a.metricsManager.CounterAchievementsUnlocked.WithLabelValues(achievement.ID).Inc()
		outcome.UnlockedAchievements = append(outcome.UnlockedAchievements, achievement)
	}

	return outcome, nil
}

func (a *Accountant) ListLogs(ctx context.Context, userID string, limit int) (_ []WorkoutLog, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "accountant.gamification.listLogs")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if limit <= 0 {
		limit = DefaultLogLimit
	}
	if limit > MaxLogLimit {
		limit = MaxLogLimit
	}
	return a.logs.List(ctx, userID, limit)
}
