package profile_test

import (
	"context"
	"sync"

	"github.com/2beens/fittrack/internal/profile"
	"github.com/2beens/fittrack/pkg"
)

type memStore struct {
	mu           sync.Mutex
	profiles     map[string]profile.Profile
	achievements map[string][]profile.Achievement

	// conflicts makes the next n Update calls fail with a version conflict
	conflicts int
}

func newMemStore() *memStore {
	return &memStore{
		profiles:     map[string]profile.Profile{},
		achievements: map[string][]profile.Achievement{},
	}
}

func (s *memStore) Create(_ context.Context, p *profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.profiles {
		if existing.Email == p.Email {
			return profile.ErrEmailTaken
		}
	}
	p.Version = 1
	s.profiles[p.ID] = *p
	return nil
}

func (s *memStore) Get(_ context.Context, id string) (*profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return &p, nil
}

func (s *memStore) GetByEmail(_ context.Context, email string) (*profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.Email == email {
			return &p, nil
		}
	}
	return nil, profile.ErrProfileNotFound
}

func (s *memStore) Update(_ context.Context, p *profile.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.profiles[p.ID]
	if !ok {
		return profile.ErrProfileNotFound
	}
	if s.conflicts > 0 {
		s.conflicts--
		stored.Version++
		s.profiles[p.ID] = stored
		return pkg.ErrVersionConflict
	}
	if stored.Version != p.Version {
		return pkg.ErrVersionConflict
	}
	p.Version++
	s.profiles[p.ID] = *p
	return nil
}

func (s *memStore) Achievements(_ context.Context, userID string) ([]profile.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]profile.Achievement{}, s.achievements[userID]...), nil
}
