package darklang

import (
	"context"
	"sync"
	"time"
)

var _ ConfigStore = (*MemoryConfigStore)(nil)

// MemoryConfigStore keeps configuration rows in process memory.
type MemoryConfigStore struct {
	mu   sync.RWMutex
	rows []Config
}

func NewMemoryConfigStore(rows ...Config) *MemoryConfigStore {
	return &MemoryConfigStore{rows: rows}
}

func (m *MemoryConfigStore) Current(_ context.Context) (Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.rows) == 0 {
		return Config{}, nil
	}
	return m.rows[len(m.rows)-1], nil
}

func (m *MemoryConfigStore) Save(_ context.Context, cfg Config) (Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg.ID = int64(len(m.rows) + 1)
	if cfg.ChangeDate.IsZero() {
		cfg.ChangeDate = time.Now()
	}
	m.rows = append(m.rows, cfg)
	return cfg, nil
}
