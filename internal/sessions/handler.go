package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/catalog"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=sessions_test

type sessionTracker interface {
	StartWorkout(ctx context.Context, userID, workoutID string) (*Instance, error)
	ToggleExercise(ctx context.Context, userID, workoutID, exerciseID string, completed bool) (*Instance, error)
	CompleteWorkout(ctx context.Context, userID, workoutID string, totalExercises int) (*Instance, error)
	Today(ctx context.Context, userID string) ([]Instance, error)
}

type workoutCatalog interface {
	Workout(ctx context.Context, id string) (*catalog.Workout, error)
}

type ToggleExerciseRequest struct {
	Completed bool `json:"completed"`
}

type Handler struct {
	tracker sessionTracker
	catalog workoutCatalog
}

func NewHandler(tracker sessionTracker, catalog workoutCatalog) *Handler {
	return &Handler{
		tracker: tracker,
		catalog: catalog,
	}
}

func (handler *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.start")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "user not logged in", http.StatusUnauthorized)
		return
	}

	workout, ok := handler.workout(ctx, w, mux.Vars(r)["workoutId"])
	if !ok {
		return
	}

	inst, err := handler.tracker.StartWorkout(ctx, userID, workout.ID)
	if err != nil {
		handler.writeError(w, "start workout", err)
		return
	}

	log.Tracef("workout [%s] started by [%s]: %s", workout.ID, userID, inst.ID)
	pkg.WriteJSON(w, inst, http.StatusOK)
}

func (handler *Handler) HandleToggleExercise(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.toggle")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "user not logged in", http.StatusUnauthorized)
		return
	}

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req ToggleExerciseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debugf("toggle exercise, unmarshal json params: %s", err)
		http.Error(w, "invalid toggle request", http.StatusBadRequest)
		return
	}

	workout, ok := handler.workout(ctx, w, mux.Vars(r)["workoutId"])
	if !ok {
		return
	}

	exerciseID := mux.Vars(r)["exerciseId"]
	if !hasExercise(workout, exerciseID) {
		http.Error(w, "exercise not part of the workout", http.StatusNotFound)
		return
	}

	inst, err := handler.tracker.ToggleExercise(ctx, userID, workout.ID, exerciseID, req.Completed)
	if err != nil {
		handler.writeError(w, "toggle exercise", err)
		return
	}

	pkg.WriteJSON(w, inst, http.StatusOK)
}

func (handler *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.complete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "user not logged in", http.StatusUnauthorized)
		return
	}

	workout, ok := handler.workout(ctx, w, mux.Vars(r)["workoutId"])
	if !ok {
		return
	}

	inst, err := handler.tracker.CompleteWorkout(ctx, userID, workout.ID, len(workout.Exercises))
	if err != nil {
		handler.writeError(w, "complete workout", err)
		return
	}

	log.Debugf("workout [%s] completed by [%s]", workout.ID, userID)
	pkg.WriteJSON(w, inst, http.StatusOK)
}

func (handler *Handler) HandleToday(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.today")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "user not logged in", http.StatusUnauthorized)
		return
	}

	instances, err := handler.tracker.Today(ctx, userID)
	if err != nil {
		handler.writeError(w, "list today's workouts", err)
		return
	}

	pkg.WriteJSON(w, instances, http.StatusOK)
}

func (handler *Handler) workout(ctx context.Context, w http.ResponseWriter, workoutID string) (*catalog.Workout, bool) {
	if workoutID == "" {
		http.Error(w, "error, workout id empty", http.StatusBadRequest)
		return nil, false
	}
	workout, err := handler.catalog.Workout(ctx, workoutID)
	if err != nil {
		if errors.Is(err, catalog.ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return nil, false
		}
		log.Errorf("get workout %s: %s", workoutID, err)
		http.Error(w, "failed to get workout", http.StatusInternalServerError)
		return nil, false
	}
	return workout, true
}

func (handler *Handler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, ErrNoActiveInstance):
		http.Error(w, ErrNoActiveInstance.Error(), http.StatusConflict)
	case errors.Is(err, ErrIncompleteExercises):
		http.Error(w, ErrIncompleteExercises.Error(), http.StatusConflict)
	case errors.Is(err, ErrInvalidTransition):
		http.Error(w, ErrInvalidTransition.Error(), http.StatusConflict)
	case errors.Is(err, pkg.ErrVersionConflict):
		http.Error(w, "workout changed concurrently, try again", http.StatusConflict)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, "failed to "+op, http.StatusInternalServerError)
	}
}

func hasExercise(w *catalog.Workout, exerciseID string) bool {
	for _, e := range w.Exercises {
		if e.ID == exerciseID {
			return true
		}
	}
	return false
}
