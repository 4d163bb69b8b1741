package app

import (
	"context"
	"sync"
	"time"

	"github.com/ariqM1/fullstack-jam/internal/metrics"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

// CountCache caches collection membership totals with a short TTL. The grid
// UI polls its collection while a copy runs, and every poll needs a COUNT(*)
// over the association table; the cache bounds that load and singleflight
// collapses concurrent misses into one query.
type CountCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]countEntry
	ttl     time.Duration
	clock   clockwork.Clock
	group   singleflight.Group
}

type countEntry struct {
	total     int64
	expiresAt time.Time
}

// NewCountCache creates a count cache. A zero or negative TTL disables
// caching entirely; every lookup falls through to the loader.
func NewCountCache(ttl time.Duration, clock clockwork.Clock) *CountCache {
	return &CountCache{
		entries: make(map[uuid.UUID]countEntry),
		ttl:     ttl,
		clock:   clock,
	}
}

// Get returns the cached total for key, or loads and caches it.
func (c *CountCache) Get(ctx context.Context, key uuid.UUID, load func(ctx context.Context) (int64, error)) (int64, error) {
	if c.ttl <= 0 {
		return load(ctx)
	}

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if ok && c.clock.Now().Before(entry.expiresAt) {
		metrics.CountCacheHits.Inc()
		return entry.total, nil
	}
	metrics.CountCacheMisses.Inc()

	total, err, _ := c.group.Do(key.String(), func() (any, error) {
		total, err := load(ctx)
		if err != nil {
			return int64(0), err
		}

		c.mu.Lock()
		c.entries[key] = countEntry{total: total, expiresAt: c.clock.Now().Add(c.ttl)}
		c.mu.Unlock()

		return total, nil
	})
	if err != nil {
		return 0, err
	}
	return total.(int64), nil
}

// Invalidate drops a cached total, forcing the next lookup to reload.
func (c *CountCache) Invalidate(key uuid.UUID) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
