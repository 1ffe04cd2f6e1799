package gamification

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/catalog"
	"github.com/2beens/fittrack/internal/profile"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=gamification_test

type workoutAccountant interface {
	LogWorkout(ctx context.Context, userID string, l WorkoutLog) (*LogResult, error)
	ListLogs(ctx context.Context, userID string, limit int) ([]WorkoutLog, error)
}

type workoutLookup interface {
	Workout(ctx context.Context, id string) (*catalog.Workout, error)
}

type LogWorkoutRequest struct {
	Duration       int    `json:"duration"`
	CaloriesBurned int    `json:"caloriesBurned"`
	EnergyBefore   int    `json:"energyBefore"`
	EnergyAfter    int    `json:"energyAfter"`
	Notes          string `json:"notes"`
}

type Handler struct {
	accountant workoutAccountant
	workouts   workoutLookup
}

func NewHandler(accountant workoutAccountant, workouts workoutLookup) *Handler {
	return &Handler{
		accountant: accountant,
		workouts:   workouts,
	}
}

func (handler *Handler) HandleLogWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gamification.logWorkout")
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

	var req LogWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debugf("log workout, unmarshal json params: %s", err)
		http.Error(w, "invalid workout log", http.StatusBadRequest)
		return
	}

	workoutID := mux.Vars(r)["workoutId"]
	if workoutID == "" {
		http.Error(w, "error, workout id empty", http.StatusBadRequest)
		return
	}
	if _, err := handler.workouts.Workout(ctx, workoutID); err != nil {
		if errors.Is(err, catalog.ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("log workout, get workout %s: %s", workoutID, err)
		http.Error(w, "failed to log workout", http.StatusInternalServerError)
		return
	}

	result, err := handler.accountant.LogWorkout(ctx, userID, WorkoutLog{
		WorkoutID:      workoutID,
		Duration:       req.Duration,
		CaloriesBurned: req.CaloriesBurned,
		EnergyBefore:   req.EnergyBefore,
		EnergyAfter:    req.EnergyAfter,
		Notes:          req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, pkg.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, profile.ErrProfileNotFound):
			http.Error(w, "profile not found", http.StatusNotFound)
		case errors.Is(err, pkg.ErrVersionConflict):
			http.Error(w, "profile changed concurrently, try again", http.StatusConflict)
		default:
			log.Errorf("log workout for %s: %s", userID, err)
			http.Error(w, "failed to log workout", http.StatusInternalServerError)
		}
		return
	}

	log.Tracef("workout [%s] logged by [%s], streak %d", workoutID, userID, result.Outcome.WorkoutStreak)
	pkg.WriteJSON(w, result, http.StatusCreated)
}

func (handler *Handler) HandleListLogs(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gamification.listLogs")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "user not logged in", http.StatusUnauthorized)
		return
	}

	limit := DefaultLogLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
	}

	logs, err := handler.accountant.ListLogs(ctx, userID, limit)
	if err != nil {
		log.Errorf("list workout logs for %s: %s", userID, err)
		http.Error(w, "failed to list workout logs", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, logs, http.StatusOK)
}
