package ristretto

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := New(Config{NumCounters: 1000, MaxCost: 1 << 20, BufferItems: 64})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}

// Ristretto applies writes through a buffer, so visibility is eventual.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not reached within 2s")
}

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	if _, err := p.Set(ctx, "res:t:a", []byte("v1"), 1, time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	waitFor(t, func() bool {
		b, ok, err := p.Get(ctx, "res:t:a")
		return err == nil && ok && bytes.Equal(b, []byte("v1"))
	})

	if err := p.Del(ctx, "res:t:a"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	waitFor(t, func() bool {
		_, ok, err := p.Get(ctx, "res:t:a")
		return err == nil && !ok
	})
}

func TestGetMiss(t *testing.T) {
	p := newTestProvider(t)
	b, ok, err := p.Get(context.Background(), "res:t:absent")
	if err != nil || ok || b != nil {
		t.Fatalf("miss: got (%v, %v, %v)", b, ok, err)
	}
}

func TestPurgeClearsStore(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	for _, k := range []string{"res:t:a", "res:t:b", "other:x"} {
		if _, err := p.Set(ctx, k, []byte("v"), 1, time.Minute); err != nil {
			t.Fatalf("Set %q: %v", k, err)
		}
	}
	waitFor(t, func() bool {
		_, ok, _ := p.Get(ctx, "other:x")
		return ok
	})

	// prefix is ignored: Ristretto cannot enumerate, so Purge drops everything
	if err := p.Purge(ctx, "res:t:"); err != nil {
		t.Fatalf("Purge: %v", err)
	}
	waitFor(t, func() bool {
		for _, k := range []string{"res:t:a", "res:t:b", "other:x"} {
			if _, ok, _ := p.Get(ctx, k); ok {
				return false
			}
		}
		return true
	})
}

func TestInvalidConfig(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatalf("expected error for zero config")
	}
}
