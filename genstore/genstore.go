package genstore

import (
	"context"
	"time"
)

// GenStore abstracts where generations live. Generations fence cache writes:
// a fetch snapshots the generation before it starts and its result is only
// stored if the generation has not moved since.
// Use LocalGenStore (default) for in-process gens, or RedisGenStore to share
// fencing across replicas.
type GenStore interface {
	// Snapshot returns the current generation; missing => 0.
	Snapshot(ctx context.Context, storageKey string) (uint64, error)
	// Bump atomically increments and returns the new generation.
	Bump(ctx context.Context, storageKey string) (uint64, error)
	// Cleanup prunes old metadata if applicable (no-op for Redis).
	Cleanup(retention time.Duration)
	// Close releases resources (no-op ok).
	Close(context.Context) error
}
