package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers request keys that have already been handled
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL.
	// Returns true if the key was newly marked, false if it was already seen.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	IsProcessed(ctx context.Context, key string) (bool, error)

	// Release forgets a key so the request can be retried
	Release(ctx context.Context, key string) error

	Close() error
}
