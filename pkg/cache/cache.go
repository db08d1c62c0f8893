// Package cache stores rendered artifacts keyed by deck content.
//
// Rendering is deterministic, so an artifact can be reused whenever the
// deck bytes, theme, and render options are unchanged. Keys are content
// hashes; there is no invalidation beyond TTL expiry.
package cache

import (
	"context"
	"time"
)

// Cache is the artifact cache boundary. Implementations must be safe
// for concurrent use.
type Cache interface {
	// Get retrieves a cached artifact. The second return value reports
	// whether the key was present; a miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores an artifact. A zero ttl stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any underlying resources.
	Close() error
}
