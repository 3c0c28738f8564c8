package darklang

import (
	"context"
	"sync"
	"time"
)

var _ ConfigStore = (*CachedConfigStore)(nil)

// CachedConfigStore serves the current configuration from memory for ttl.
// Save and Invalidate drop the cached row.
type CachedConfigStore struct {
	next ConfigStore
	ttl  time.Duration
	now  func() time.Time

	mu       sync.Mutex
	cached   Config
	loaded   bool
	loadedAt time.Time
}

func NewCachedConfigStore(next ConfigStore, ttl time.Duration) *CachedConfigStore {
	return &CachedConfigStore{next: next, ttl: ttl, now: time.Now}
}

func (c *CachedConfigStore) Current(ctx context.Context) (Config, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && c.now().Sub(c.loadedAt) < c.ttl {
		return c.cached, nil
	}

	cfg, err := c.next.Current(ctx)
	if err != nil {
		return Config{}, err
	}

	c.cached, c.loaded, c.loadedAt = cfg, true, c.now()
	return cfg, nil
}

func (c *CachedConfigStore) Save(ctx context.Context, cfg Config) (Config, error) {
	saved, err := c.next.Save(ctx, cfg)
	c.Invalidate()
	return saved, err
}

func (c *CachedConfigStore) Invalidate() {
	c.mu.Lock()
	c.loaded = false
	c.mu.Unlock()
}
