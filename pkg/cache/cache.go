// Package cache provides content-addressed caching for generated markup
// and assist responses.
//
// The [Cache] interface abstracts the storage backend; [FileCache] stores
// entries on disk for CLI use and [NullCache] disables caching entirely.
// [Keyer] builds namespaced cache keys from document hashes and
// generation options so that semantically different runs never collide.
package cache

import (
	"context"
	"time"
)

// TTLs per entry kind. Markup is cheap to regenerate but hashing makes
// hits exact, so entries can live long; assist responses come from a
// non-deterministic remote service and expire sooner.
const (
	TTLDocument = 7 * 24 * time.Hour
	TTLMarkup   = 7 * 24 * time.Hour
	TTLAssist   = 24 * time.Hour
)

// Cache is the interface for cache storage backends.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found
	// and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
