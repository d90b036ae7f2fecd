// Package cache provides the fixed-expiry read cache fronting profile loads
// and resolved image URLs. Entries expire passively after the window or are
// invalidated eagerly on a successful write in the same process; no cross-
// process invalidation is attempted.
package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTL is a time-boxed in-process cache with a single fixed expiry window.
type TTL[V any] struct {
	mu      sync.RWMutex
	window  time.Duration
	entries map[string]entry[V]
	now     func() time.Time
}

// NewTTL creates a cache whose entries live for the given window.
func NewTTL[V any](window time.Duration) *TTL[V] {
	return &TTL[V]{
		window:  window,
		entries: make(map[string]entry[V]),
		now:     time.Now,
	}
}

// Get returns the cached value and whether it is still fresh.
func (c *TTL[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	cached, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(cached.expiresAt) {
		var zero V

		return zero, false
	}

	return cached.value, true
}

// Set stores the value for the full expiry window.
func (c *TTL[V]) Set(key string, value V) {
	c.mu.Lock()
	c.entries[key] = entry[V]{value: value, expiresAt: c.now().Add(c.window)}
	c.mu.Unlock()
}

// Invalidate drops one key immediately.
func (c *TTL[V]) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear drops every entry.
func (c *TTL[V]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry[V])
	c.mu.Unlock()
}
