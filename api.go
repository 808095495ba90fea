package fetchcache

import (
	"context"
	"time"

	c "github.com/unkn0wn-root/fetchcache/codec"
	gen "github.com/unkn0wn-root/fetchcache/genstore"
	pr "github.com/unkn0wn-root/fetchcache/provider"
)

// FetchFunc produces a value on a cache miss. It is invoked at most once per
// key per flight regardless of how many callers are waiting. The context it
// receives is detached from any single caller's cancellation.
type FetchFunc[V any] func(ctx context.Context) (V, error)

// SetCostFunc lets the application weigh stored entries for cost-aware
// providers (e.g. Ristretto). Default cost is 1 per entry.
type SetCostFunc func(key string, raw []byte) int64

// Cache is the high-level request/result cache API: get-or-fetch with
// per-key fetch deduplication, TTL freshness, and explicit invalidation.
// V is the caller's value type. Serialization is handled by a pluggable Codec[V].
type Cache[V any] interface {
	Enabled() bool
	Close(context.Context) error

	// Get is a hit-only read: (zero, false, nil) on miss, never a fetch.
	Get(ctx context.Context, key string) (v V, ok bool, err error)

	// GetOrFetch returns the cached value for key if fresh; otherwise it
	// invokes fn exactly once per key (concurrent callers join the in-flight
	// fetch) and caches the result with the cache's default TTL.
	GetOrFetch(ctx context.Context, key string, fn FetchFunc[V]) (V, error)

	// GetOrFetchTTL is GetOrFetch with an explicit per-call TTL.
	// ttl must be > 0; key must be non-empty.
	GetOrFetchTTL(ctx context.Context, key string, ttl time.Duration, fn FetchFunc[V]) (V, error)

	// Invalidate removes any entry for key immediately. An in-flight fetch
	// for key is not cancelled, but its result will not be stored.
	Invalidate(ctx context.Context, key string) error

	// Clear removes every entry in the namespace. In-flight fetches complete
	// for their waiters without repopulating the cache.
	Clear(ctx context.Context) error
}

// Options tune the behavior of the cache.
// Only Namespace, Provider and Codec are required; others have sensible defaults.
type Options[V any] struct {
	// Required
	Namespace string // logical namespace to avoid collisions. e.g. "simulation", "sprint", "team"
	Provider  pr.Provider
	Codec     c.Codec[V]

	Logger         Logger           // if nil, NopLogger is used
	Hooks          Hooks            // if nil, NopHooks is used
	DefaultTTL     time.Duration    // used by GetOrFetch; 0 => 10m
	Now            func() time.Time // clock source; nil => time.Now
	Disabled       bool             // default false (enabled); disabled => fn called directly
	ComputeSetCost SetCostFunc      // default 1
	GenStore       gen.GenStore     // nil => LocalGenStore (in-process)
}

func New[V any](opts Options[V]) (Cache[V], error) {
	return newCache[V](opts)
}
