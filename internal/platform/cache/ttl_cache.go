// Package cache provides an in-process TTL cache with stale reads.
package cache

import (
	"context"
	"sync"
	"time"
)

// entry holds one cached value together with the wall-clock time it was
// stored. Entries are immutable once created and replaced wholesale on Put.
type entry[V any] struct {
	value    V
	storedAt time.Time
}

// TTLCache is a mutex-guarded map cache. Get only returns entries younger
// than the TTL; GetStale ignores freshness and is meant as a last-resort
// fallback when a refresh is impossible (rate limited or upstream down).
//
// There is no size bound. Expired entries can be removed with Sweep from a
// background ticker.
type TTLCache[V any] struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry[V]

	// now is replaceable in tests.
	now func() time.Time
}

// New creates a TTLCache with the given freshness TTL.
func New[V any](ttl time.Duration) *TTLCache[V] {
	return &TTLCache[V]{
		ttl:     ttl,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// Get returns the cached value and its age if a fresh entry exists.
func (c *TTLCache[V]) Get(key string) (V, time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero V
	e, ok := c.entries[key]
	if !ok {
		return zero, 0, false
	}
	age := c.now().Sub(e.storedAt)
	if age >= c.ttl {
		return zero, 0, false
	}
	return e.value, age, true
}

// GetStale returns the cached value regardless of its age.
func (c *TTLCache[V]) GetStale(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	return e.value, true
}

// Put stores a value, replacing any previous entry for the key.
// Concurrent writers race last-writer-wins; that is acceptable because
// entries for the same key carry near-identical upstream data.
func (c *TTLCache[V]) Put(key string, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: v, storedAt: c.now()}
}

// Len returns the number of entries, fresh or stale.
func (c *TTLCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Sweep removes entries older than maxAge and returns how many were removed.
// Stale entries are still useful as fallbacks, so maxAge should be well
// beyond the TTL (e.g. hours, not minutes).
func (c *TTLCache[V]) Sweep(maxAge time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for k, e := range c.entries {
		if now.Sub(e.storedAt) > maxAge {
			delete(c.entries, k)
			removed++
		}
	}
	return removed
}

// StartSweeper runs Sweep on a fixed interval until ctx is cancelled.
// Entries older than maxAge lose their value even as stale fallbacks,
// so the interval and maxAge should both be generous.
func StartSweeper[V any](ctx context.Context, c *TTLCache[V], interval, maxAge time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.Sweep(maxAge)
			}
		}
	}()
}
