package redis

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) *Redis {
	t.Helper()
	s := miniredis.RunT(t)
	p, err := New(Config{
		Client:      goredis.NewClient(&goredis.Options{Addr: s.Addr()}),
		CloseClient: true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}

func TestNewRejectsNilClient(t *testing.T) {
	if _, err := New(Config{}); err != ErrNilClient {
		t.Fatalf("expected ErrNilClient, got %v", err)
	}
}

func TestSetGetDelRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := newTestRedis(t)

	if _, ok, err := p.Get(ctx, "k"); err != nil || ok {
		t.Fatalf("expected miss, ok=%v err=%v", ok, err)
	}
	if ok, err := p.Set(ctx, "k", []byte("v"), 1, time.Minute); err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	got, ok, err := p.Get(ctx, "k")
	if err != nil || !ok || !bytes.Equal(got, []byte("v")) {
		t.Fatalf("Get: ok=%v err=%v got=%q", ok, err, got)
	}
	if err := p.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, ok, _ := p.Get(ctx, "k"); ok {
		t.Fatalf("expected miss after Del")
	}
}

func TestPurgeDeletesOnlyPrefix(t *testing.T) {
	ctx := context.Background()
	p := newTestRedis(t)

	_, _ = p.Set(ctx, "res:sim:a", []byte("1"), 1, 0)
	_, _ = p.Set(ctx, "res:sim:b", []byte("2"), 1, 0)
	_, _ = p.Set(ctx, "res:other:c", []byte("3"), 1, 0)

	if err := p.Purge(ctx, "res:sim:"); err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if _, ok, _ := p.Get(ctx, "res:sim:a"); ok {
		t.Fatalf("purged key still present")
	}
	if _, ok, _ := p.Get(ctx, "res:sim:b"); ok {
		t.Fatalf("purged key still present")
	}
	if _, ok, _ := p.Get(ctx, "res:other:c"); !ok {
		t.Fatalf("key outside prefix should survive")
	}
}
