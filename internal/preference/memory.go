package preference

import (
	"context"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

type prefKey struct {
	userID, key string
}

// MemoryStore keeps preferences in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	prefs map[prefKey]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{prefs: make(map[prefKey]string)}
}

func (s *MemoryStore) Get(_ context.Context, userID, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.prefs[prefKey{userID, key}]
	if !ok {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *MemoryStore) Set(_ context.Context, userID, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs[prefKey{userID, key}] = value
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, userID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.prefs, prefKey{userID, key})
	return nil
}
