package genstore

import (
	"context"
	"testing"
	"time"
)

func TestLocalSnapshotMissingIsZero(t *testing.T) {
	ctx := context.Background()
	s := NewLocalGenStore(0, 0)
	t.Cleanup(func() { _ = s.Close(ctx) })

	g, err := s.Snapshot(ctx, "never-bumped")
	if err != nil {
		t.Fatal(err)
	}
	if g != 0 {
		t.Fatalf("missing key should snapshot as 0, got %d", g)
	}
}

func TestLocalBumpIsMonotonic(t *testing.T) {
	ctx := context.Background()
	s := NewLocalGenStore(0, 0)
	t.Cleanup(func() { _ = s.Close(ctx) })

	for want := uint64(1); want <= 3; want++ {
		got, err := s.Bump(ctx, "k")
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("Bump: got %d want %d", got, want)
		}
	}
	g, _ := s.Snapshot(ctx, "k")
	if g != 3 {
		t.Fatalf("Snapshot after bumps: got %d want 3", g)
	}

	// independent keys do not interfere
	g, _ = s.Snapshot(ctx, "other")
	if g != 0 {
		t.Fatalf("unrelated key moved: %d", g)
	}
}

func TestLocalCleanupPrunesOld(t *testing.T) {
	ctx := context.Background()
	s := NewLocalGenStore(0, time.Second) // retention=1s
	t.Cleanup(func() { _ = s.Close(ctx) })

	if _, err := s.Bump(ctx, "old"); err != nil {
		t.Fatal(err)
	}
	time.Sleep(1200 * time.Millisecond)
	s.Cleanup(time.Second)

	g, err := s.Snapshot(ctx, "old")
	if err != nil {
		t.Fatal(err)
	}
	if g != 0 {
		t.Fatalf("expected pruned -> 0, got %d", g)
	}
}
