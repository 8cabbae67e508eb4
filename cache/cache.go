// Package cache provides the shared TTL key-value store backing the flight
// result cache and the rate limit counters, with in-memory and Redis
// implementations.
package cache

import (
	"context"
	"time"
)

// Store is a key-value store with per-key TTL expiry. The store guarantees
// per-key read/write atomicity; last-write-wins on concurrent Sets is
// acceptable for cached results.
type Store interface {
	// Get returns the value stored under key, or false when the key is
	// absent or its TTL has lapsed.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Incr atomically increments the counter stored under key and returns
	// the new count. The ttl is applied only when the increment creates the
	// key, so a counter window never slides.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
}
