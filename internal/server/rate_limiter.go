package server

import (
	"sync"
	"time"
)

// rateLimiter is a fixed-window counter keyed by caller identity. The login
// handler keys it by client IP, so stale windows are pruned as new ones open
// to keep the map from growing with every address that ever tried to log in.
type rateLimiter struct {
	limit  int
	window time.Duration
	mu     sync.Mutex
	items  map[string]*rateLimitEntry
}

type rateLimitEntry struct {
	windowStart time.Time
	count       int
}

const rateLimiterPruneThreshold = 1024

func newRateLimiter(limit int, window time.Duration) *rateLimiter {
	return &rateLimiter{
		limit:  limit,
		window: window,
		items:  make(map[string]*rateLimitEntry),
	}
}

func (r *rateLimiter) Allow(key string) bool {
	if key == "" {
		return false
	}

	now := time.Now().UTC()
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := r.items[key]
	if entry == nil || now.Sub(entry.windowStart) > r.window {
		if len(r.items) >= rateLimiterPruneThreshold {
			r.prune(now)
		}
		entry = &rateLimitEntry{windowStart: now}
		r.items[key] = entry
	}

	if entry.count >= r.limit {
		return false
	}

	entry.count++
	return true
}

// prune drops entries whose window has already closed. Caller holds the lock.
func (r *rateLimiter) prune(now time.Time) {
	for key, entry := range r.items {
		if now.Sub(entry.windowStart) > r.window {
			delete(r.items, key)
		}
	}
}
