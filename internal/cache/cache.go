// Package cache provides the key-value cache capability injected into
// callers that memoize upstream lookups. Keys follow an entity-name scheme
// ("recipe:<id>", "avatar-url:<uid>"); values expire after a per-entry TTL.
package cache

import (
	"context"
	"time"
)

// DefaultTTL applies when a caller passes a non-positive TTL.
const DefaultTTL = 15 * time.Minute

// Cache is the capability interface handed to components that memoize
// values. Implementations are safe for concurrent use.
type Cache interface {
	// Get returns the cached value and whether it was present and fresh.
	Get(ctx context.Context, key string) (string, bool, error)
	// Set stores a value with the given TTL. Non-positive TTLs fall back
	// to DefaultTTL; there is no unbounded entry.
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	// Has reports presence without fetching the value.
	Has(ctx context.Context, key string) (bool, error)
	// Delete drops the entry immediately. Deleting an absent key is not an
	// error.
	Delete(ctx context.Context, key string) error
}
