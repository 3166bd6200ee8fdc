// Package provider defines the byte store behind statestore.
//
// Implementations MUST be byte-for-byte transparent: Get must return exactly the
// same []byte that was previously passed to Set for a key. The statestore frames
// every record with a magic, version and session sequence, and deletes anything
// under its keyspace that fails that check.
//
// The keyspace "state:<ns>:" is owned by statestore. External code MUST NOT
// write values under that prefix.
package provider

import (
	"context"
	"time"
)

// Provider is a minimal byte store with TTLs. Must be safe for concurrent use.
type Provider interface {
	// Get returns (value, true, nil) on hit; (nil, false, nil) on miss.
	// If an IO/remote error happens, return (nil, false, err).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value with the given TTL (<= 0 means no expiry where
	// supported). cost may be ignored. Returns ok=false when the store
	// rejected the write under pressure.
	Set(ctx context.Context, key string, value []byte, cost int64, ttl time.Duration) (ok bool, err error)

	// Del removes a key (best-effort).
	Del(ctx context.Context, key string) error

	// Close releases resources.
	Close(ctx context.Context) error
}
