package profile

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fittrack/internal/suggestions"
	"github.com/2beens/fittrack/internal/telemetry/tracing"
	"github.com/2beens/fittrack/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

const (
	maxNameLength  = 80
	maxCASAttempts = 5

	defaultEnergyLevel  = 5
	defaultSleepQuality = 7
)

type profileRepo interface {
	Create(ctx context.Context, p *Profile) error
	Get(ctx context.Context, id string) (*Profile, error)
	GetByEmail(ctx context.Context, email string) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
	Achievements(ctx context.Context, userID string) ([]Achievement, error)
}

type Service struct {
	repo profileRepo
	loc  *time.Location

	// injectable for tests
	Now   func() time.Time
	NewID func() string
}

func NewService(repo profileRepo, loc *time.Location) *Service {
	return &Service{
		repo:  repo,
		loc:   loc,
		Now:   time.Now,
		NewID: uuid.NewString,
	}
}

// GetOrCreateByEmail returns the profile registered with email, creating a
// fresh one on the first login.
func (s *Service) GetOrCreateByEmail(ctx context.Context, email string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.getOrCreate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	email = strings.ToLower(strings.TrimSpace(email))

	p, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return nil, fmt.Errorf("get profile by email: %w", err)
	}

	p = &Profile{
		ID:    s.NewID(),
		Email: email,
		Name:  nameFromEmail(email),
		Goals: []Goal{},
		CustomMetrics: CustomMetrics{
			EnergyLevel:  defaultEnergyLevel,
			SleepQuality: defaultSleepQuality,
		},
	}
	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			// lost a race with a parallel first login
			return s.repo.GetByEmail(ctx, email)
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}

	span.SetAttributes(attribute.String("user.id", p.ID))
	log.Debugf("new profile [%s] created for %s", p.ID, email)

	return p, nil
}

// UserIDForEmail is GetOrCreateByEmail narrowed to the ID, for the login flow.
func (s *Service) UserIDForEmail(ctx context.Context, email string) (string, error) {
	p, err := s.GetOrCreateByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return p.ID, nil
}

func (s *Service) Overview(ctx context.Context, userID string) (_ *Overview, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.overview")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	var (
		p            *Profile
		achievements []Achievement
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		p, err = s.repo.Get(gCtx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		achievements, err = s.repo.Achievements(gCtx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	suggestion := suggestions.Suggest(p.SuggestionState(), s.Now(), s.loc)
	span.SetAttributes(attribute.String("suggestion", suggestion.ID))

	return &Overview{
		Profile:      p,
		Achievements: achievements,
		Suggestion:   suggestion,
	}, nil
}

func (s *Service) Update(ctx context.Context, userID string, upd Update) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID))

	if err := validateUpdate(&upd); err != nil {
		return nil, err
	}
	for i := range upd.Goals {
		if upd.Goals[i].ID == "" {
			upd.Goals[i].ID = s.NewID()
		}
	}

	var updated *Profile
	err = pkg.RetryOnConflict(ctx, maxCASAttempts, func(ctx context.Context) error {
		p, err := s.repo.Get(ctx, userID)
		if err != nil {
			return err
		}
		applyUpdate(p, upd)
		if err := s.repo.Update(ctx, p); err != nil {
			return err
		}
		updated = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func applyUpdate(p *Profile, upd Update) {
	if upd.Name != nil {
		p.Name = strings.TrimSpace(*upd.Name)
	}
	if upd.Avatar != nil {
		p.Avatar = *upd.Avatar
	}
	if upd.Goals != nil {
		p.Goals = upd.Goals
	}
	if upd.Weight != nil {
		w := *upd.Weight
		p.Weight = &w
	}
	if upd.EnergyLevel != nil {
		p.CustomMetrics.EnergyLevel = *upd.EnergyLevel
	}
	if upd.SleepQuality != nil {
		p.CustomMetrics.SleepQuality = *upd.SleepQuality
	}
}

func validateUpdate(upd *Update) error {
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return pkg.NewValidationError("name", "must not be empty")
		}
		if len(name) > maxNameLength {
			return pkg.NewValidationError("name", fmt.Sprintf("must be at most %d characters", maxNameLength))
		}
	}
	if w := upd.Weight; w != nil {
		if w.Current <= 0 || w.Target < 0 {
			return pkg.NewValidationError("weight", "must be positive")
		}
		if w.Unit != WeightUnitKg && w.Unit != WeightUnitLb {
			return pkg.NewValidationError("weight.unit", "must be kg or lb")
		}
	}
	if e := upd.EnergyLevel; e != nil && (*e < 0 || *e > 10) {
		return pkg.NewValidationError("energyLevel", "must be between 0 and 10")
	}
	if sq := upd.SleepQuality; sq != nil && (*sq < 0 || *sq > 10) {
		return pkg.NewValidationError("sleepQuality", "must be between 0 and 10")
	}
	for _, g := range upd.Goals {
		if strings.TrimSpace(g.Title) == "" {
			return pkg.NewValidationError("goal.title", "must not be empty")
		}
		if g.Target <= 0 {
			return pkg.NewValidationError("goal.target", "must be positive")
		}
		if g.Current < 0 {
			return pkg.NewValidationError("goal.current", "must not be negative")
		}
	}
	return nil
}

func nameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return "Athlete"
	}
	return local
}
