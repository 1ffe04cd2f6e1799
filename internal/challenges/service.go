package challenges

import (
	"context"
	"time"

	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

type challengeStore interface {
	Active(ctx context.Context, now time.Time) ([]Challenge, error)
	Get(ctx context.Context, id string) (*Challenge, error)
	Join(ctx context.Context, userID, challengeID string, now time.Time) (*Progress, error)
	UpdateProgress(ctx context.Context, userID, challengeID string, progress int, now time.Time) (*Progress, error)
	Mine(ctx context.Context, userID string) ([]Joined, error)
}

type Service struct {
	store challengeStore

	Now func() time.Time
}

func NewService(store challengeStore) *Service {
	return &Service{
		store: store,
		Now:   time.Now,
	}
}

func (s *Service) List(ctx context.Context, now time.Time) ([]Challenge, error) {
	return s.store.Active(ctx, now)
}

// Join is idempotent: joining again returns the existing progress.
func (s *Service) Join(ctx context.Context, userID, challengeID string) (_ *Progress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.challenges.join")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("challenge.id", challengeID))

	c, err := s.store.Get(ctx, challengeID)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	if !c.Active(now) {
		return nil, ErrChallengeInactive
	}

	p, err := s.store.Join(ctx, userID, challengeID, now)
	if err != nil {
		return nil, err
	}

	log.Tracef("user [%s] joined challenge: %s", userID, challengeID)
	return p, nil
}

func (s *Service) UpdateProgress(ctx context.Context, userID, challengeID string, progress int) (_ *Progress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.challenges.updateProgress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("challenge.id", challengeID))

	if progress < 0 {
		return nil, pkg.NewValidationError("progress", "must not be negative")
	}
	return s.store.UpdateProgress(ctx, userID, challengeID, progress, s.Now())
}

func (s *Service) Mine(ctx context.Context, userID string) ([]Joined, error) {
	return s.store.Mine(ctx, userID)
}
