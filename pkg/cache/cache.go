// Package cache provides byte caching for rendered diagnostics.
//
// The layout pipeline itself never caches anything; every pass
// recomputes its analysis from scratch. Caching exists one layer out:
// the HTTP server caches rendered pressure-graph artifacts keyed by
// scene content hash, so repeated requests for an unchanged scene
// skip the Graphviz render.
//
// Three backends implement the [Cache] interface:
//   - [FileCache]: directory-backed, for single-instance CLI/server use
//   - [RedisCache]: Redis-backed, for multi-instance deployments
//   - [NullCache]: no-op, for tests and disabling caching
package cache

import (
	"context"
	"time"
)

// TTLs per cached value class.
const (
	// TTLArtifact bounds how long a rendered artifact stays cached.
	// Artifacts are keyed by content hash, so staleness is not a
	// correctness concern, only a disk/memory one.
	TTLArtifact = 24 * time.Hour

	// TTLScene bounds cached scene documents fetched from the store.
	TTLScene = 5 * time.Minute
)

// Cache is the interface for cache storage backends.
type Cache interface {
	// Get retrieves a value. The second return reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a TTL. A zero TTL means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
