// Package cache provides byte-level caching for footlights.
//
// Two things are cached: the intrinsic dimensions of remote images (so a
// document referencing an https URL is only fetched once) and rendered
// artifacts (so re-rendering an unchanged document is free).
//
// # Backends
//
//   - [NullCache]: stores nothing, used with --no-cache and in tests
//   - [FileCache]: JSON entries under the XDG cache directory, used by the CLI
//   - [RedisCache]: shared cache for the HTTP server or several CLI hosts
//
// # Keys
//
// Keys are produced by a [Keyer]. The [DefaultKeyer] hashes its inputs with
// SHA-256 so arbitrary sources (including long data URLs) map to short keys.
// A [ScopedKeyer] prefixes every key, which lets the server and the CLI share
// one Redis instance without colliding.
package cache

import (
	"context"
	"time"
)

// Cache TTLs.
const (
	// TTLImageSize is how long a probed remote image size stays valid.
	TTLImageSize = 7 * 24 * time.Hour

	// TTLArtifact is how long a rendered artifact stays valid.
	TTLArtifact = 24 * time.Hour
)

// Cache stores opaque byte values by key.
type Cache interface {
	// Get returns the value and whether it was found. Expired or corrupt
	// entries are reported as misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every entry and reports how many were removed.
	Clear(ctx context.Context) (int, error)

	// Close releases the backend.
	Close() error
}
