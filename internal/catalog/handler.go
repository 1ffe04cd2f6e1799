package catalog

import (
	"context"
	"errors"
	"net/http"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=catalog_test

type catalogReader interface {
	Workouts(ctx context.Context) ([]Workout, error)
	Workout(ctx context.Context, id string) (*Workout, error)
	NutritionTips(ctx context.Context, category string) ([]NutritionTip, error)
}

type Handler struct {
	repo catalogReader
}

func NewHandler(repo catalogReader) *Handler {
	return &Handler{
		repo: repo,
	}
}

func (handler *Handler) HandleWorkouts(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.workouts")
	defer span.End()

	workouts, err := handler.repo.Workouts(ctx)
	if err != nil {
		log.Errorf("list workouts: %s", err)
		http.Error(w, "failed to get workouts", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, workouts, http.StatusOK)
}

func (handler *Handler) HandleWorkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.workout")
	defer span.End()

	id := mux.Vars(r)["id"]
	if id == "" {
		http.Error(w, "error, id empty", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("workout.id", id))

	workout, err := handler.repo.Workout(ctx, id)
	if err != nil {
		if errors.Is(err, ErrWorkoutNotFound) {
			http.Error(w, "workout not found", http.StatusNotFound)
			return
		}
		log.Errorf("get workout %s: %s", id, err)
		http.Error(w, "failed to get workout", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, workout, http.StatusOK)
}

func (handler *Handler) HandleNutritionTips(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.catalog.nutrition")
	defer span.End()

	category := r.URL.Query().Get("category")
	tips, err := handler.repo.NutritionTips(ctx, category)
	if err != nil {
		log.Errorf("list nutrition tips [%s]: %s", category, err)
		http.Error(w, "failed to get nutrition tips", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, tips, http.StatusOK)
}
