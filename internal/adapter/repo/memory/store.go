package memory

import (
	"sync"

	"mergeverse/internal/domain/merge"
)

// Store is the in-memory counterpart of the relational store, used in tests
// and local runs without postgres.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]merge.Profile
	games    map[string]merge.GameState
	progress map[string]merge.Progress
	socials  map[string]merge.Social
	leagues  map[string]merge.League
}

func NewStore() *Store {
	return &Store{
		profiles: make(map[string]merge.Profile),
		games:    make(map[string]merge.GameState),
		progress: make(map[string]merge.Progress),
		socials:  make(map[string]merge.Social),
		leagues:  make(map[string]merge.League),
	}
}

func (s *Store) SeedSocial(playerID string, social merge.Social) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.socials[playerID] = social
}

func (s *Store) SeedProfile(profile merge.Profile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.PlayerID] = profile
}
