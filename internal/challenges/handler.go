package challenges

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=challenges_test

type challengesService interface {
	List(ctx context.Context, now time.Time) ([]Challenge, error)
	Join(ctx context.Context, userID, challengeID string) (*Progress, error)
	UpdateProgress(ctx context.Context, userID, challengeID string, progress int) (*Progress, error)
	Mine(ctx context.Context, userID string) ([]Joined, error)
}

type UpdateProgressRequest struct {
	Progress int `json:"progress"`
}

type Handler struct {
	service challengesService
	now     func() time.Time
}

func NewHandler(service challengesService) *Handler {
	return &Handler{
		service: service,
		now:     time.Now,
	}
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.challenges.list")
	defer span.End()

	list, err := handler.service.List(ctx, handler.now())
	if err != nil {
		handler.writeError(w, "list challenges", err)
		return
	}

	pkg.WriteJSON(w, list, http.StatusOK)
}

func (handler *Handler) HandleJoin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.challenges.join")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "user not logged in", http.StatusUnauthorized)
		return
	}

	p, err := handler.service.Join(ctx, userID, mux.Vars(r)["id"])
	if err != nil {
		handler.writeError(w, "join challenge", err)
		return
	}

	pkg.WriteJSON(w, p, http.StatusOK)
}

func (handler *Handler) HandleUpdateProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.challenges.updateProgress")
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

	var req UpdateProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debugf("update challenge progress, unmarshal json params: %s", err)
		http.Error(w, "invalid progress", http.StatusBadRequest)
		return
	}

	p, err := handler.service.UpdateProgress(ctx, userID, mux.Vars(r)["id"], req.Progress)
	if err != nil {
		handler.writeError(w, "update challenge progress", err)
		return
	}

	pkg.WriteJSON(w, p, http.StatusOK)
}

func (handler *Handler) HandleMine(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.challenges.mine")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "user not logged in", http.StatusUnauthorized)
		return
	}

	list, err := handler.service.Mine(ctx, userID)
	if err != nil {
		handler.writeError(w, "list joined challenges", err)
		return
	}

	pkg.WriteJSON(w, list, http.StatusOK)
}

func (handler *Handler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, pkg.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrChallengeNotFound):
		http.Error(w, ErrChallengeNotFound.Error(), http.StatusNotFound)
	case errors.Is(err, ErrNotJoined):
		http.Error(w, ErrNotJoined.Error(), http.StatusConflict)
	case errors.Is(err, ErrChallengeInactive):
		http.Error(w, ErrChallengeInactive.Error(), http.StatusConflict)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, "failed to "+op, http.StatusInternalServerError)
	}
}
