// Package cache stores built artifacts keyed by a hash of the job that
// produced them.
//
// Backends:
//   - [FileCache]: one lz4-compressed file per entry under a directory (CLI)
//   - [RedisCache]: a shared redis instance (server deployments)
//   - [MongoCache]: a mongodb collection acting as an artifact store
//   - [NullCache]: stores nothing
//
// Keys come from a [Keyer]; values are opaque bytes. A zero TTL means the
// entry does not expire.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero keeps the entry until
	// it is deleted.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}

// Clearer is implemented by caches that can drop every entry at once.
type Clearer interface {
	// Clear removes all entries and returns how many were removed.
	Clear(ctx context.Context) (int, error)
}
