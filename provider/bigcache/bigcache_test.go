package bigcache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	p, err := New(Config{LifeWindow: time.Minute})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	// per-entry TTL is ignored; freshness lives in the entry frame
	if _, err := p.Set(ctx, "res:t:a", []byte("v1"), 0, time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	b, ok, err := p.Get(ctx, "res:t:a")
	if err != nil || !ok || !bytes.Equal(b, []byte("v1")) {
		t.Fatalf("Get: got (%q, %v, %v)", b, ok, err)
	}

	if err := p.Del(ctx, "res:t:a"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, ok, err := p.Get(ctx, "res:t:a"); err != nil || ok {
		t.Fatalf("entry survived Del: ok=%v err=%v", ok, err)
	}
}

func TestGetMissAndDelMissing(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	if b, ok, err := p.Get(ctx, "res:t:absent"); err != nil || ok || b != nil {
		t.Fatalf("miss: got (%v, %v, %v)", b, ok, err)
	}
	if err := p.Del(ctx, "res:t:absent"); err != nil {
		t.Fatalf("Del of a missing key must be a no-op: %v", err)
	}
}

func TestPurgeResetsStore(t *testing.T) {
	ctx := context.Background()
	p := newTestProvider(t)

	for _, k := range []string{"res:t:a", "res:t:b", "other:x"} {
		if _, err := p.Set(ctx, k, []byte("v"), 0, time.Hour); err != nil {
			t.Fatalf("Set %q: %v", k, err)
		}
	}

	// prefix is ignored: BigCache has no prefix enumeration, Purge resets all
	if err := p.Purge(ctx, "res:t:"); err != nil {
		t.Fatalf("Purge: %v", err)
	}
	for _, k := range []string{"res:t:a", "res:t:b", "other:x"} {
		if _, ok, err := p.Get(ctx, k); err != nil || ok {
			t.Fatalf("entry %q survived Purge: ok=%v err=%v", k, ok, err)
		}
	}
}
