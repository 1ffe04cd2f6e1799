package social

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/2beens/fittrack/internal/profile"
	"github.com/2beens/fittrack/internal/telemetry/metrics"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	MaxPostLength    = 2000
	MaxCommentLength = 500
)

type feedStore interface {
	Feed(ctx context.Context, limit, offset int) (*Page, error)
	CreatePost(ctx context.Context, p *Post) error
	ToggleLike(ctx context.Context, postID, userID string) (*LikeState, error)
	CreateComment(ctx context.Context, c *Comment) error
	DeleteComment(ctx context.Context, commentID, userID string) error
	Comments(ctx context.Context, postID string) ([]Comment, error)
}

type authorLookup interface {
	Get(ctx context.Context, id string) (*profile.Profile, error)
}

type Service struct {
	store          feedStore
	authors        authorLookup
	maxPageSize    int
	metricsManager *metrics.Manager

	Now   func() time.Time
	NewID func() string
}

func NewService(store feedStore, authors authorLookup, maxPageSize int, metricsManager *metrics.Manager) *Service {
	return &Service{
		store:          store,
		authors:        authors,
		maxPageSize:    maxPageSize,
		metricsManager: metricsManager,
		Now:            time.Now,
		NewID:          uuid.NewString,
	}
}

// Feed returns a page of posts, newest first. limit is clamped to 1..maxPageSize.
func (s *Service) Feed(ctx context.Context, limit, offset int) (_ *Page, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.social.feed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	limit = min(max(limit, 1), s.maxPageSize)
	offset = max(offset, 0)
	return s.store.Feed(ctx, limit, offset)
}

func (s *Service) CreatePost(ctx context.Context, userID, content, imageURL string) (_ *Post, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.social.createPost")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, pkg.NewValidationError("content", "required")
	}
	if utf8.RuneCountInString(content) > MaxPostLength {
		return nil, pkg.NewValidationError("content", fmt.Sprintf("longer than %d characters", MaxPostLength))
	}

	author, err := s.authors.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get author: %w", err)
	}

	p := &Post{
		ID:         s.NewID(),
		UserID:     userID,
		UserName:   author.Name,
		UserAvatar: author.Avatar,
		Content:    content,
		ImageURL:   strings.TrimSpace(imageURL),
		LikedBy:    []string{},
		CreatedAt:  s.Now(),
	}
	if err := s.store.CreatePost(ctx, p); err != nil {
		return nil, err
	}

	log.Tracef("user [%s] created post: %s", userID, p.ID)
	return p, nil
}

// ToggleLike likes the post for userID, or removes the like if one exists.
func (s *Service) ToggleLike(ctx context.Context, postID, userID string) (_ *LikeState, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.social.toggleLike")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	state, err := s.store.ToggleLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}

	s.metricsManager.CounterLikesToggled.WithLabelValues(strconv.FormatBool(state.Liked)).Inc()
	return state, nil
}

func (s *Service) CreateComment(ctx context.Context, postID, userID, content string) (_ *Comment, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.social.createComment")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("post.id", postID))

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, pkg.NewValidationError("content", "required")
	}
	if utf8.RuneCountInString(content) > MaxCommentLength {
		return nil, pkg.NewValidationError("content", fmt.Sprintf("longer than %d characters", MaxCommentLength))
	}

	author, err := s.authors.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get author: %w", err)
	}

	c := &Comment{
		ID:        s.NewID(),
		PostID:    postID,
		UserID:    userID,
		UserName:  author.Name,
		Content:   content,
		CreatedAt: s.Now(),
	}
	if err := s.store.CreateComment(ctx, c); err != nil {
		return nil, err
	}

	s.metricsManager.CounterComments.WithLabelValues("create").Inc()
	return c, nil
}

// DeleteComment removes the comment; only its author may do so.
func (s *Service) DeleteComment(ctx context.Context, commentID, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.social.deleteComment")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.store.DeleteComment(ctx, commentID, userID); err != nil {
		return err
	}

	s.metricsManager.CounterComments.WithLabelValues("delete").Inc()
	return nil
}

func (s *Service) Comments(ctx context.Context, postID string) ([]Comment, error) {
	return s.store.Comments(ctx, postID)
}
