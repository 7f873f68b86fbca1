package cache

import (
	"sync"
	"time"
)

// Cache is the lookup store behind hot read paths, such as the RouterOS
// profile list that the router proxy refreshes on a short TTL.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Delete(key K)
}

type cacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache keeps values in process memory with a per-entry TTL. Expired
// entries are evicted lazily on read; there is no background sweeper.
type TTLCache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]cacheEntry[V]
}

func NewTTLCache[K comparable, V any]() *TTLCache[K, V] {
	return &TTLCache[K, V]{items: make(map[K]cacheEntry[V])}
}

// Get returns the cached value when present and still fresh. A nil receiver
// behaves as an always-miss cache.
func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var zero V
	if c == nil {
		return zero, false
	}
	c.mu.RLock()
	entry, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return zero, false
	}
	return entry.value, true
}

// Set stores a value. A non-positive ttl keeps the entry until it is
// overwritten or deleted.
func (c *TTLCache[K, V]) Set(key K, value V, ttl time.Duration) {
	if c == nil {
		return
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.items[key] = cacheEntry[V]{
		value:     value,
		expiresAt: expiresAt,
	}
	c.mu.Unlock()
}

// Delete removes a cached entry.
func (c *TTLCache[K, V]) Delete(key K) {
	if c == nil {
		return
	}
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

// NoopCache always misses and ignores writes. Used where profile caching is
// disabled.
type NoopCache[K comparable, V any] struct{}

func (NoopCache[K, V]) Get(key K) (V, bool) {
	var zero V
	return zero, false
}

func (NoopCache[K, V]) Set(key K, value V, ttl time.Duration) {}

func (NoopCache[K, V]) Delete(key K) {}
