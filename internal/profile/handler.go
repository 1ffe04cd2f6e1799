package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=profile_test

type profileService interface {
	Overview(ctx context.Context, userID string) (*Overview, error)
	Update(ctx context.Context, userID string, upd Update) (*Profile, error)
}

type Handler struct {
	service profileService
}

func NewHandler(service profileService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "user not logged in", http.StatusUnauthorized)
		return
	}

	overview, err := handler.service.Overview(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			http.Error(w, "profile not found", http.StatusNotFound)
			return
		}
		log.Errorf("get profile overview [%s]: %s", userID, err)
		http.Error(w, "failed to get profile", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSON(w, overview, http.StatusOK)
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.update")
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

	var upd Update
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		log.Debugf("update profile, unmarshal json params: %s", err)
		http.Error(w, "invalid profile update", http.StatusBadRequest)
		return
	}

	updated, err := handler.service.Update(ctx, userID, upd)
	if err != nil {
		switch {
		case errors.Is(err, pkg.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrProfileNotFound):
			http.Error(w, "profile not found", http.StatusNotFound)
		case errors.Is(err, pkg.ErrVersionConflict):
			http.Error(w, "profile changed concurrently, try again", http.StatusConflict)
		default:
			log.Errorf("update profile [%s]: %s", userID, err)
			http.Error(w, "failed to update profile", http.StatusInternalServerError)
		}
		return
	}

	log.Debugf("profile [%s] updated", userID)
	pkg.WriteJSON(w, updated, http.StatusOK)
}
