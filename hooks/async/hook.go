// usage:
//
// import (
//
//	"log/slog"
//
//	"github.com/unkn0wn-root/fetchcache"
//	"github.com/unkn0wn-root/fetchcache/codec"
//	"github.com/unkn0wn-root/fetchcache/genstore"
//	"github.com/unkn0wn-root/fetchcache/hooks/async"
//	"github.com/unkn0wn-root/fetchcache/sloghooks"
//
// )
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{
//	    SelfHealEvery:    10, // sample logs: ~every 10th self-heal
//	    FetchSharedEvery: 0,  // log every dedup join
//	})
//
// hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
// defer hooks.Close()
//
//	cache, _ := fetchcache.New[SimResult](fetchcache.Options[SimResult]{
//	    Namespace: "app:prod:simulation",
//	    Provider:  provider,
//	    Codec:     codec.JSON[SimResult]{},
//	    GenStore:  genstore.NewRedisGenStoreWithTTL(rdb, "app:prod:simulation", 24*time.Hour),
//	    Hooks:     hooks, // or `raw` if you don’t want async
//	})
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/fetchcache"
)

type Hooks struct {
	inner fetchcache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ fetchcache.Hooks = (*Hooks)(nil)

func New(inner fetchcache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) SelfHeal(k, r string)               { h.try(func() { h.inner.SelfHeal(k, r) }) }
func (h *Hooks) FetchShared(k string)               { h.try(func() { h.inner.FetchShared(k) }) }
func (h *Hooks) StoreSkipped(k string)              { h.try(func() { h.inner.StoreSkipped(k) }) }
func (h *Hooks) ProviderSetRejected(k string)       { h.try(func() { h.inner.ProviderSetRejected(k) }) }
func (h *Hooks) GenSnapshotError(k string, e error) { h.try(func() { h.inner.GenSnapshotError(k, e) }) }
func (h *Hooks) GenBumpError(k string, e error)     { h.try(func() { h.inner.GenBumpError(k, e) }) }
func (h *Hooks) InvalidateOutage(k string, be, de error) {
	h.try(func() { h.inner.InvalidateOutage(k, be, de) })
}
