package darklang

import "time"

// SetClock replaces the clock of a cached store.
func (c *CachedConfigStore) SetClock(now func() time.Time) {
	c.now = now
}
