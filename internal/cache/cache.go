// Package cache provides a small in-memory TTL cache for upstream reads
// that are expensive and change slowly, such as the overview statistics.
// Concurrent fills for the same key are collapsed into one upstream call.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

// Stats holds cache hit/miss counters.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

type entry[V any] struct {
	value    V
	cachedAt time.Time
}

// TTLCache is a thread-safe in-memory cache with a single TTL and a bounded
// size. Eviction is oldest-insertion-first, which is enough for the handful
// of statistics keys this service caches.
type TTLCache[V any] struct {
	mu      sync.RWMutex
	entries map[string]*entry[V]
	order   []string
	maxSize int
	ttl     time.Duration

	group  singleflight.Group
	hits   int64
	misses int64
}

// New creates a cache holding at most maxSize entries for ttl each.
func New[V any](maxSize int, ttl time.Duration) *TTLCache[V] {
	return &TTLCache[V]{
		entries: make(map[string]*entry[V]),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

// Get retrieves a fresh value by key.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	e, found := c.entries[key]
	c.mu.RUnlock()

	var zero V
	if !found {
		atomic.AddInt64(&c.misses, 1)
		return zero, false
	}
	if time.Since(e.cachedAt) > c.ttl {
		c.Delete(key)
		atomic.AddInt64(&c.misses, 1)
		return zero, false
	}

	atomic.AddInt64(&c.hits, 1)
	return e.value, true
}

// Set stores a value, evicting the oldest entries when at capacity.
func (c *TTLCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = &entry[V]{value: value, cachedAt: time.Now()}
		return
	}

	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = &entry[V]{value: value, cachedAt: time.Now()}
	c.order = append(c.order, key)
}

// Delete removes an entry by key.
func (c *TTLCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear removes all entries.
func (c *TTLCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*entry[V])
	c.order = nil
}

// GetOrFill returns the cached value for key, or calls fill to produce it.
// Concurrent callers for the same key share one fill; fill errors are not
// cached.
func (c *TTLCache[V]) GetOrFill(ctx context.Context, key string, fill func(context.Context) (V, error)) (V, error) {
	if value, ok := c.Get(key); ok {
		return value, nil
	}

	result, err, _ := c.group.Do(key, func() (any, error) {
		// Another caller may have filled the key while we waited.
		if value, ok := c.Get(key); ok {
			return value, nil
		}
		value, err := fill(ctx)
		if err != nil {
			return nil, err
		}
		c.Set(key, value)
		return value, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return result.(V), nil
}

// Size returns the current number of entries.
func (c *TTLCache[V]) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns hit/miss counters.
func (c *TTLCache[V]) Stats() Stats {
	return Stats{
		Hits:   atomic.LoadInt64(&c.hits),
		Misses: atomic.LoadInt64(&c.misses),
		Size:   c.Size(),
	}
}
