// Package cache provides a bounded least-recently-used render cache.
//
// Widgets memoize render output keyed by a comparable struct holding every
// input that affects appearance. Invalidation happens by key change: a
// mutation bumps a counter carried in the key, so stale entries are never
// looked up again and age out through eviction.
package cache

import (
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// LRU is a bounded cache evicting the least recently used entry on overflow.
// Get and Set refresh recency; Contains does not.
type LRU[K comparable, V any] struct {
	name    string
	maxSize int
	entries *lru.Cache[K, V]
	purging atomic.Bool

	// Stats (atomic for access without a lock)
	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New creates a cache holding at most maxSize entries.
// Values less than 1 are clamped to 1.
func New[K comparable, V any](name string, maxSize int) *LRU[K, V] {
	if maxSize < 1 {
		maxSize = 1
	}
	c := &LRU[K, V]{name: name, maxSize: maxSize}
	// lru.NewWithEvict only fails for a non-positive size.
	c.entries, _ = lru.NewWithEvict[K, V](maxSize, func(K, V) {
		if !c.purging.Load() {
			c.evictions.Add(1)
		}
	})
	return c
}

// Get returns the value for key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	v, ok := c.entries.Get(key)
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Set stores value under key and marks it most recently used.
func (c *LRU[K, V]) Set(key K, value V) {
	c.entries.Add(key, value)
}

// GetOrCompute returns the cached value for key, computing and storing it
// on a miss.
func (c *LRU[K, V]) GetOrCompute(key K, compute func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := compute()
	c.Set(key, v)
	return v
}

// Contains reports whether key is cached without touching recency.
func (c *LRU[K, V]) Contains(key K) bool {
	return c.entries.Contains(key)
}

// Clear removes all entries. Cleared entries do not count as evictions.
func (c *LRU[K, V]) Clear() {
	c.purging.Store(true)
	c.entries.Purge()
	c.purging.Store(false)
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	return c.entries.Len()
}

// Stats returns cache statistics.
func (c *LRU[K, V]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return Stats{
		Name:      c.name,
		Size:      c.entries.Len(),
		MaxSize:   c.maxSize,
		Hits:      hits,
		Misses:    misses,
		Evictions: c.evictions.Load(),
		HitRate:   hitRate,
	}
}

// Stats holds cache statistics.
type Stats struct {
	Name      string
	Size      int
	MaxSize   int
	Hits      uint64
	Misses    uint64
	Evictions uint64
	HitRate   float64
}
