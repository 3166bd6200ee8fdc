// Package seqstore keeps a monotonically increasing sequence number per
// session. statestore stamps every published record with the number Next
// returned and treats a record whose stamp differs from Current as stale.
package seqstore

import (
	"context"
	"time"
)

// SeqStore abstracts where sequence counters live.
// Use Local for a single process, or Redis to share counters between a master
// and followers and keep them across restarts.
type SeqStore interface {
	// Current returns the latest sequence; missing => 0.
	Current(ctx context.Context, key string) (uint64, error)
	// Next atomically increments and returns the new sequence.
	Next(ctx context.Context, key string) (uint64, error)
	// Cleanup prunes counters idle longer than retention (no-op for Redis).
	Cleanup(retention time.Duration)
	// Close releases resources (no-op ok).
	Close(context.Context) error
}
