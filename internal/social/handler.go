package social

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/2beens/fittrack/internal/auth"
	"github.com/2beens/fittrack/internal/profile"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=social_test

const DefaultFeedLimit = 20

type socialService interface {
	Feed(ctx context.Context, limit, offset int) (*Page, error)
	CreatePost(ctx context.Context, userID, content, imageURL string) (*Post, error)
	ToggleLike(ctx context.Context, postID, userID string) (*LikeState, error)
	CreateComment(ctx context.Context, postID, userID, content string) (*Comment, error)
	DeleteComment(ctx context.Context, commentID, userID string) error
	Comments(ctx context.Context, postID string) ([]Comment, error)
}

type CreatePostRequest struct {
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl"`
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

type Handler struct {
	service socialService
}

func NewHandler(service socialService) *Handler {
	return &Handler{
		service: service,
	}
}

func (handler *Handler) HandleFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.feed")
	defer span.End()

	limit, ok := queryInt(w, r, "limit", DefaultFeedLimit)
	if !ok {
		return
	}
	offset, ok := queryInt(w, r, "offset", 0)
	if !ok {
		return
	}

	page, err := handler.service.Feed(ctx, limit, offset)
	if err != nil {
		handler.writeError(w, "get feed", err)
		return
	}

	pkg.WriteJSON(w, page, http.StatusOK)
}

func (handler *Handler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.createPost")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "user not logged in", http.StatusUnauthorized)
		return
	}

	var req CreatePostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := handler.service.CreatePost(ctx, userID, req.Content, req.ImageURL)
	if err != nil {
		handler.writeError(w, "create post", err)
		return
	}

	pkg.WriteJSON(w, post, http.StatusCreated)
}

func (handler *Handler) HandleToggleLike(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.toggleLike")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "user not logged in", http.StatusUnauthorized)
		return
	}

	state, err := handler.service.ToggleLike(ctx, mux.Vars(r)["id"], userID)
	if err != nil {
		handler.writeError(w, "toggle like", err)
		return
	}

	pkg.WriteJSON(w, state, http.StatusOK)
}

func (handler *Handler) HandleComments(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.comments")
	defer span.End()

	comments, err := handler.service.Comments(ctx, mux.Vars(r)["id"])
	if err != nil {
		handler.writeError(w, "get comments", err)
		return
	}

	pkg.WriteJSON(w, comments, http.StatusOK)
}

func (handler *Handler) HandleCreateComment(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.createComment")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "user not logged in", http.StatusUnauthorized)
		return
	}

	var req CreateCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	comment, err := handler.service.CreateComment(ctx, mux.Vars(r)["id"], userID, req.Content)
	if err != nil {
		handler.writeError(w, "create comment", err)
		return
	}

	pkg.WriteJSON(w, comment, http.StatusCreated)
}

func (handler *Handler) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.social.deleteComment")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "user not logged in", http.StatusUnauthorized)
		return
	}

	commentID := mux.Vars(r)["id"]
	if err := handler.service.DeleteComment(ctx, commentID, userID); err != nil {
		handler.writeError(w, "delete comment", err)
		return
	}

	log.Tracef("comment %s deleted by %s", commentID, userID)
	pkg.WriteTextResponseOK(w, "deleted")
}

func (handler *Handler) writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, pkg.ErrValidation):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrPostNotFound):
		http.Error(w, ErrPostNotFound.Error(), http.StatusNotFound)
	case errors.Is(err, ErrCommentNotFound):
		http.Error(w, ErrCommentNotFound.Error(), http.StatusNotFound)
	case errors.Is(err, profile.ErrProfileNotFound):
		http.Error(w, "profile not found", http.StatusNotFound)
	case errors.Is(err, ErrNotCommentOwner):
		http.Error(w, ErrNotCommentOwner.Error(), http.StatusForbidden)
	default:
		log.Errorf("%s: %s", op, err)
		http.Error(w, "failed to "+op, http.StatusInternalServerError)
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		log.Debugf("social, unmarshal json params: %s", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

func queryInt(w http.ResponseWriter, r *http.Request, name string, fallback int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		http.Error(w, "invalid "+name, http.StatusBadRequest)
		return 0, false
	}
	return v, true
}
