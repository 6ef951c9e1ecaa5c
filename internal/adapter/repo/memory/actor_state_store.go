package memory

import (
	"context"
	"sync"

	"mergeverse/internal/app/ports"
)

// ActorStateStore is the in-memory double of the per-actor durable store.
type ActorStateStore struct {
	mu       sync.RWMutex
	states   map[string][]byte
	sessions map[string]string
}

func NewActorStateStore() *ActorStateStore {
	return &ActorStateStore{
		states:   make(map[string][]byte),
		sessions: make(map[string]string),
	}
}

var _ ports.ActorStateStore = (*ActorStateStore)(nil)

func (s *ActorStateStore) GetState(_ context.Context, playerID string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.states[playerID]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, true, nil
}

func (s *ActorStateStore) PutState(_ context.Context, playerID string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	s.states[playerID] = stored
	return nil
}

func (s *ActorStateStore) GetSessionIdentity(_ context.Context, playerID string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	identity, ok := s.sessions[playerID]
	return identity, ok, nil
}

func (s *ActorStateStore) PutSessionIdentity(_ context.Context, playerID, identity string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[playerID] = identity
	return nil
}

func (s *ActorStateStore) ClearSessionIdentity(_ context.Context, playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, playerID)
	return nil
}
