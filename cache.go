package fetchcache

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	c "github.com/unkn0wn-root/fetchcache/codec"
	gen "github.com/unkn0wn-root/fetchcache/genstore"
	"github.com/unkn0wn-root/fetchcache/internal/wire"
	pr "github.com/unkn0wn-root/fetchcache/provider"
)

const defaultTTL = 10 * time.Minute

type cache[V any] struct {
	ns             string
	provider       pr.Provider
	codec          c.Codec[V]
	log            Logger
	hooks          Hooks
	enabled        bool
	ttl            time.Duration
	now            func() time.Time
	computeSetCost SetCostFunc
	gen            gen.GenStore

	flight singleflight.Group
}

func newCache[V any](opts Options[V]) (*cache[V], error) {
	if opts.Provider == nil {
		return nil, fmt.Errorf("fetchcache: provider is required")
	}
	if opts.Codec == nil {
		return nil, fmt.Errorf("fetchcache: codec is required")
	}
	if opts.Namespace == "" {
		return nil, fmt.Errorf("fetchcache: namespace is required")
	}

	cc := &cache[V]{
		ns:       opts.Namespace,
		provider: opts.Provider,
		codec:    opts.Codec,
		enabled:  !opts.Disabled,
	}

	// defaults
	cc.log = coalesce[Logger](opts.Logger, NopLogger{})
	cc.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	cc.ttl = coalesce[time.Duration](opts.DefaultTTL, defaultTTL)

	if opts.Now != nil {
		cc.now = opts.Now
	} else {
		cc.now = time.Now
	}

	if opts.ComputeSetCost != nil {
		cc.computeSetCost = opts.ComputeSetCost
	} else {
		cc.computeSetCost = func(_ string, _ []byte) int64 { return 1 }
	}

	if opts.GenStore != nil {
		cc.gen = opts.GenStore
	} else {
		cc.gen = gen.NewLocalGenStore(0, 0)
	}

	return cc, nil
}

func (c *cache[V]) Enabled() bool { return c.enabled }

func (c *cache[V]) Close(ctx context.Context) error {
	// Close gen store first (best effort)
	if c.gen != nil {
		_ = c.gen.Close(ctx)
	}
	if c.provider != nil {
		return c.provider.Close(ctx)
	}
	return nil
}

func (c *cache[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	if !c.enabled || key == "" {
		return zero, false, nil
	}
	return c.lookup(ctx, key)
}

func (c *cache[V]) GetOrFetch(ctx context.Context, key string, fn FetchFunc[V]) (V, error) {
	return c.GetOrFetchTTL(ctx, key, c.ttl, fn)
}

func (c *cache[V]) GetOrFetchTTL(ctx context.Context, key string, ttl time.Duration, fn FetchFunc[V]) (V, error) {
	var zero V
	if key == "" {
		return zero, ErrEmptyKey
	}
	if ttl <= 0 {
		return zero, ErrNonPositiveTTL
	}
	if !c.enabled {
		return fn(ctx)
	}

	if v, ok, err := c.lookup(ctx, key); ok {
		return v, nil
	} else if err != nil {
		// degraded provider: fall through and fetch
		c.log.Warn("lookup error; fetching", Fields{"key": key, "err": err})
	}

	k := c.entryKey(key)
	ch := c.flight.DoChan(k, func() (any, error) {
		// the flight outlives any single waiter
		fctx := context.WithoutCancel(ctx)

		// a previous flight may have stored between our miss and this call
		if v, ok, err := c.lookup(fctx, key); err == nil && ok {
			return v, nil
		}

		obsGen := c.snapshotGen(k)
		obsEpoch := c.snapshotEpoch()

		v, err := fn(fctx)
		if err != nil {
			// no negative caching; waiters all observe the original error
			return nil, err
		}
		c.store(fctx, key, v, obsGen, obsEpoch, ttl)
		return v, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		if res.Shared {
			c.hooks.FetchShared(k)
		}
		return res.Val.(V), nil
	case <-ctx.Done():
		// abandon the wait only; the flight keeps running for other waiters
		return zero, ctx.Err()
	}
}

func (c *cache[V]) Invalidate(ctx context.Context, key string) error {
	if !c.enabled || key == "" {
		return nil
	}
	k := c.entryKey(key)

	newGen, bumpErr := c.gen.Bump(ctx, k)
	if bumpErr != nil {
		c.hooks.GenBumpError(k, bumpErr)
	}
	delErr := c.provider.Del(ctx, k)

	if bumpErr != nil && delErr != nil {
		// both fences failed: stale data may still be served
		c.hooks.InvalidateOutage(key, bumpErr, delErr)
		return &InvalidateError{Key: key, BumpErr: bumpErr, DelErr: delErr}
	}
	c.log.Debug("invalidated key (bumped gen + cleared entry)", Fields{"key": key, "newGen": newGen})
	return nil
}

func (c *cache[V]) Clear(ctx context.Context) error {
	if !c.enabled {
		return nil
	}
	newEpoch, bumpErr := c.gen.Bump(ctx, c.epochKey())
	if bumpErr != nil {
		c.hooks.GenBumpError(c.epochKey(), bumpErr)
	}

	// physical pass is best-effort when the bump landed; without a Purger
	// it counts as failed so a broken bump cannot turn Clear into a no-op
	purgeErr := ErrPurgeUnsupported
	if p, ok := c.provider.(pr.Purger); ok {
		purgeErr = p.Purge(ctx, c.entryPrefix())
	}

	if bumpErr != nil && purgeErr != nil {
		// neither fence landed: existing entries stay visible
		return &ClearError{Namespace: c.ns, BumpErr: bumpErr, PurgeErr: purgeErr}
	}
	if bumpErr != nil {
		// purge succeeded, entries are physically gone
		c.log.Warn("clear: epoch bump failed; entries removed by purge", Fields{"ns": c.ns, "err": bumpErr})
		return nil
	}
	c.log.Debug("cleared namespace", Fields{"ns": c.ns, "newEpoch": newEpoch})
	return nil
}

// lookup reads, validates and decodes the entry for key.
// Corrupt, stale (gen/epoch moved) and expired entries are deleted and missed.
func (c *cache[V]) lookup(ctx context.Context, key string) (V, bool, error) {
	var zero V
	k := c.entryKey(key)
	raw, ok, err := c.provider.Get(ctx, k)
	if err != nil || !ok {
		return zero, false, err
	}
	ent, err := wire.Decode(raw)
	if err != nil {
		c.selfHeal(ctx, k, "corrupt")
		return zero, false, nil
	}
	if ent.Gen != c.snapshotGen(k) {
		c.selfHeal(ctx, k, "gen_mismatch")
		return zero, false, nil
	}
	if ent.Epoch != c.snapshotEpoch() {
		c.selfHeal(ctx, k, "epoch_mismatch")
		return zero, false, nil
	}
	// lazy expiry: never serve past the deadline, even if the provider
	// has not evicted yet
	if !c.now().Before(time.Unix(0, ent.ExpiresAt)) {
		c.selfHeal(ctx, k, "expired")
		return zero, false, nil
	}
	v, err := c.codec.Decode(ent.Payload)
	if err != nil {
		c.selfHeal(ctx, k, "value_decode")
		return zero, false, nil
	}
	return v, true, nil
}

// store writes value iff neither the key generation nor the namespace epoch
// moved since the fetch began. A skipped write is not an error: it means an
// Invalidate or Clear raced the fetch and must win.
func (c *cache[V]) store(ctx context.Context, key string, value V, obsGen, obsEpoch uint64, ttl time.Duration) {
	k := c.entryKey(key)
	if c.snapshotGen(k) != obsGen || c.snapshotEpoch() != obsEpoch {
		c.hooks.StoreSkipped(k)
		c.log.Debug("store skipped (invalidated during fetch)", Fields{"key": key})
		return
	}
	payload, err := c.codec.Encode(value)
	if err != nil {
		c.log.Error("encode failed; result not cached", Fields{"key": key, "err": err})
		return
	}
	exp := c.now().Add(ttl)
	raw := wire.Encode(wire.Entry{
		Gen:       obsGen,
		Epoch:     obsEpoch,
		ExpiresAt: exp.UnixNano(),
		Payload:   payload,
	})
	ok, err := c.provider.Set(ctx, k, raw, c.computeSetCost(k, raw), ttl)
	if err != nil {
		c.log.Warn("provider Set failed; result not cached", Fields{"key": key, "err": err})
		return
	}
	if !ok {
		c.hooks.ProviderSetRejected(k)
		c.log.Debug("Set rejected by provider (pressure)", Fields{"key": key})
	}
}

func (c *cache[V]) selfHeal(ctx context.Context, storageKey, reason string) {
	_ = c.provider.Del(ctx, storageKey)
	c.hooks.SelfHeal(storageKey, reason)
}

func (c *cache[V]) snapshotGen(storageKey string) uint64 {
	g, err := c.gen.Snapshot(context.Background(), storageKey)
	if err != nil {
		// Conservative: treat as 0 so fenced writes will skip; reads self-heal
		c.hooks.GenSnapshotError(storageKey, err)
		c.log.Warn("gen snapshot error", Fields{"key": storageKey, "err": err})
		return 0
	}
	return g
}

func (c *cache[V]) snapshotEpoch() uint64 {
	return c.snapshotGen(c.epochKey())
}

func (c *cache[V]) entryPrefix() string {
	return "res:" + c.ns + ":"
}

func (c *cache[V]) entryKey(userKey string) string {
	// isolate by namespace
	return c.entryPrefix() + userKey
}

func (c *cache[V]) epochKey() string {
	return "epoch:" + c.ns
}
