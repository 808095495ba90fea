// Package fetchcache implements a provider-agnostic request/result cache with
// TTL freshness and per-key fetch deduplication. Concurrent callers asking for
// the same key share a single in-flight fetch; fresh entries are returned
// without invoking the fetch function; expired entries are never returned,
// even before physical eviction runs.
//
// Components:
//   - Provider: byte store with TTL (e.g. in-process memory, Ristretto, BigCache, Redis).
//   - Codec[V]: (de)serializes V <-> []byte.
//   - GenStore: per-key generation counters used as write fences. Local
//     (in-process) by default, optional Redis implementation so invalidation
//     propagates across replicas.
//   - reqkey: canonical, field-order-independent request keys.
//
// Keys:
//
//	res:<ns>:<key>  - cached results
//	epoch:<ns>      - namespace epoch (bumped by Clear)
//
// Freshness and fencing:
//
//	v, err := cache.GetOrFetch(ctx, k, fetchSimulation) // fetch at most once per key
//	_      = cache.Invalidate(ctx, k)                   // immediate; a racing fetch will not repopulate
//
// Failed fetches are never cached: the error is surfaced unchanged to every
// waiter and the next call retries.
package fetchcache
