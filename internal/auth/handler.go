package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=auth

type loginService interface {
	SendCode(ctx context.Context, email string) error
	VerifyCode(ctx context.Context, email, code string) (*Session, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type SendCodeRequest struct {
	Email string `json:"email"`
}

type VerifyCodeRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type Handler struct {
	service loginService
}

func NewHandler(service loginService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleSendCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.sendCode")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req SendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debugf("send code, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	if err := handler.service.SendCode(ctx, req.Email); err != nil {
		if errors.Is(err, pkg.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Errorf("send login code: %s", err)
		http.Error(w, "failed to send code", http.StatusInternalServerError)
		return
	}

	pkg.WriteTextResponseOK(w, "code sent")
}

func (handler *Handler) HandleVerifyCode(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.verifyCode")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req VerifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debugf("verify code, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Code == "" {
		http.Error(w, "error, code empty", http.StatusBadRequest)
		return
	}

	session, err := handler.service.VerifyCode(ctx, req.Email, req.Code)
	if err != nil {
		switch {
		case errors.Is(err, pkg.ErrValidation):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrInvalidCode):
			log.Tracef("failed login attempt for: %s", req.Email)
			http.Error(w, ErrInvalidCode.Error(), http.StatusUnauthorized)
		default:
			log.Errorf("verify login code: %s", err)
			http.Error(w, "login failed", http.StatusInternalServerError)
		}
		return
	}

	log.Trace("new login success")
	pkg.WriteJSON(w, session, http.StatusOK)
}

func (handler *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.auth.logout")
	defer span.End()

	token := TokenFromRequest(r)
	if token == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.service.Logout(ctx, token)
	if err != nil {
		log.Errorf("logout: %s", err)
		http.Error(w, "logout failed", http.StatusInternalServerError)
		return
	}
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}
