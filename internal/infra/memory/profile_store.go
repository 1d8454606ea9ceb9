package memory

import (
	"context"
	"sort"
	"sync"

	"millionaire-quiz-service/internal/domain"
)

// ProfileStore is an in-memory implementation of app.ProfileRepository.
// Profiles are copied on load and save, like documents round-tripping
// through a real store: callers mutate their working copy and persist it
// explicitly.
type ProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]domain.Profile
}

func NewProfileStore(profiles map[string]domain.Profile) *ProfileStore {
	if profiles == nil {
		profiles = make(map[string]domain.Profile)
	}
	return &ProfileStore{profiles: profiles}
}

func (s *ProfileStore) GetProfile(_ context.Context, userID string) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[userID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	copied := copyProfile(profile)
	return &copied, nil
}

func (s *ProfileStore) SaveProfile(_ context.Context, profile *domain.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.UserID] = copyProfile(*profile)
	return nil
}

func (s *ProfileStore) ListPlayers(_ context.Context) ([]*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	players := make([]*domain.Profile, 0, len(s.profiles))
	for _, profile := range s.profiles {
		if profile.Role != domain.RoleStudent {
			continue
		}
		copied := copyProfile(profile)
		players = append(players, &copied)
	}
	sort.Slice(players, func(i, j int) bool { return players[i].UserID < players[j].UserID })
	return players, nil
}

func copyProfile(p domain.Profile) domain.Profile {
	copied := p
	copied.Jokers = make(map[domain.JokerType]int, len(p.Jokers))
	for t, count := range p.Jokers {
		copied.Jokers[t] = count
	}
	copied.Badges = append([]string(nil), p.Badges...)
	copied.CompletedTopics = append([]string(nil), p.CompletedTopics...)
	return copied
}
