package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const maxCASAttempts = 5

type instanceStore interface {
	FindInProgress(ctx context.Context, userID, workoutID, day string) (*Instance, error)
	Create(ctx context.Context, inst *Instance) error
	Touch(ctx context.Context, id string, now time.Time) error
	Save(ctx context.Context, inst *Instance) error
	ListForDay(ctx context.Context, userID, day string) ([]Instance, error)
}

// Tracker drives daily workout instances through the state machine.
// Every mutation re-reads the instance and is written with a version check.
type Tracker struct {
	store          instanceStore
	loc            *time.Location
	metricsManager *metrics.Manager

	// injectable for tests
	Now   func() time.Time
	NewID func() string
}

func NewTracker(store instanceStore, loc *time.Location, metricsManager *metrics.Manager) *Tracker {
	return &Tracker{
		store:          store,
		loc:            loc,
		metricsManager: metricsManager,
		Now:            time.Now,
		NewID:          uuid.NewString,
	}
}

// StartWorkout resumes today's in-progress instance or starts a new one.
func (t *Tracker) StartWorkout(ctx context.Context, userID, workoutID string) (_ *Instance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.sessions.start")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", workoutID))

	now := t.Now()
	day := pkg.DayKey(now, t.loc)

	inst, err := t.store.FindInProgress(ctx, userID, workoutID, day)
	if err == nil {
		if err := t.store.Touch(ctx, inst.ID, now); err != nil {
			return nil, fmt.Errorf("touch instance: %w", err)
		}
		inst.UpdatedAt = now
		span.SetAttributes(attribute.Bool("resumed", true))
		return inst, nil
	}
	if !errors.Is(err, ErrInstanceNotFound) {
		return nil, fmt.Errorf("find in progress instance: %w", err)
	}

	state, err := Start(NotStarted{}, now)
	if err != nil {
		return nil, err
	}
	inst = &Instance{
		ID:        t.NewID(),
		UserID:    userID,
		WorkoutID: workoutID,
		Day:       day,
	}
	inst.apply(state, now)

	if err := t.store.Create(ctx, inst); err != nil {
		if errors.Is(err, ErrInstanceExists) {
			log.Debugf("start workout [%s/%s]: parallel start won, resuming it", userID, workoutID)
			return t.store.FindInProgress(ctx, userID, workoutID, day)
		}
		return nil, fmt.Errorf("create instance: %w", err)
	}

	t.metricsManager.CounterWorkoutsStarted.Inc()
	return inst, nil
}

func (t *Tracker) ToggleExercise(ctx context.Context, userID, workoutID, exerciseID string, completed bool) (_ *Instance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.sessions.toggle")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", workoutID))
	span.SetAttributes(attribute.String("exercise.id", exerciseID))
	span.SetAttributes(attribute.Bool("completed", completed))

	return t.mutateActive(ctx, userID, workoutID, func(s State) (State, bool, error) {
		return Toggle(s, exerciseID, completed)
	})
}

func (t *Tracker) CompleteWorkout(ctx context.Context, userID, workoutID string, totalExercises int) (_ *Instance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.sessions.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("workout.id", workoutID))
	span.SetAttributes(attribute.Int("exercises.total", totalExercises))

	inst, err := t.mutateActive(ctx, userID, workoutID, func(s State) (State, bool, error) {
		next, err := Complete(s, totalExercises, t.Now())
		return next, err == nil, err
	})
	if err != nil {
		return nil, err
	}

	t.metricsManager.CounterWorkoutsCompleted.Inc()
	return inst, nil
}

// Today lists every instance the user has for the current calendar day.
func (t *Tracker) Today(ctx context.Context, userID string) (_ []Instance, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "tracker.sessions.today")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return t.store.ListForDay(ctx, userID, pkg.DayKey(t.Now(), t.loc))
}

type transition func(State) (next State, changed bool, err error)

func (t *Tracker) mutateActive(ctx context.Context, userID, workoutID string, next transition) (*Instance, error) {
	var result *Instance
	err := pkg.RetryOnConflict(ctx, maxCASAttempts, func(ctx context.Context) error {
		now := t.Now()
		inst, err := t.store.FindInProgress(ctx, userID, workoutID, pkg.DayKey(now, t.loc))
		if err != nil {
			if errors.Is(err, ErrInstanceNotFound) {
				return ErrNoActiveInstance
			}
			return err
		}

		state, changed, err := next(inst.State())
		if err != nil {
			return err
		}
		if !changed {
			result = inst
			return nil
		}

		inst.apply(state, now)
		if err := t.store.Save(ctx, inst); err != nil {
			if errors.Is(err, pkg.ErrVersionConflict) {
				t.metricsManager.CounterCASConflicts.WithLabelValues("workout_instance").Inc()
			}
			return err
		}
		result = inst
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
