// Package memory implements the in-process reference Provider.
//
// Expired entries are removed by a single timer-management goroutine draining
// a min-heap of (deadline, key, stamp) items. A deadline only evicts the entry
// that scheduled it: every write stamps the entry with a monotonic counter and
// the eviction loop skips deadlines whose stamp no longer matches, so a key
// that was deleted and repopulated between scheduling and firing survives.
// Reads additionally check the deadline lazily.
package memory

import (
	"container/heap"
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	pr "github.com/unkn0wn-root/fetchcache/provider"
)

var ErrClosed = errors.New("memory provider: closed")

type entry struct {
	val       []byte
	expiresAt time.Time // zero => no expiry
	stamp     uint64
}

type deadline struct {
	at    time.Time
	key   string
	stamp uint64
}

type deadlineHeap []deadline

func (h deadlineHeap) Len() int           { return len(h) }
func (h deadlineHeap) Less(i, j int) bool { return h[i].at.Before(h[j].at) }
func (h deadlineHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *deadlineHeap) Push(x any)        { *h = append(*h, x.(deadline)) }

func (h *deadlineHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

type Config struct {
	// Now is the clock source; nil => time.Now. Lazy expiry checks and
	// deadline math use it; the eviction loop still sleeps on wall time.
	Now func() time.Time
}

type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	h       deadlineHeap
	stamp   uint64
	closed  bool

	now  func() time.Time
	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

var (
	_ pr.Provider = (*Store)(nil)
	_ pr.Purger   = (*Store)(nil)
)

func New(cfg Config) *Store {
	s := &Store{
		entries: make(map[string]entry),
		now:     cfg.Now,
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	if s.now == nil {
		s.now = time.Now
	}
	go s.run()
	return s
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false, ErrClosed
	}
	e, ok := s.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		// lazy expiry ahead of the eviction loop
		delete(s.entries, key)
		return nil, false, nil
	}
	return e.val, true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte, _ int64, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false, ErrClosed
	}
	s.stamp++
	e := entry{val: value, stamp: s.stamp}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.entries[key] = e

	var earliest bool
	if !e.expiresAt.IsZero() {
		earliest = s.h.Len() == 0 || e.expiresAt.Before(s.h[0].at)
		heap.Push(&s.h, deadline{at: e.expiresAt, key: key, stamp: e.stamp})
	}
	s.mu.Unlock()

	if earliest {
		select {
		case s.wake <- struct{}{}:
		default:
		}
	}
	return true, nil
}

func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	// stale heap deadlines for key are skipped by the stamp guard
	s.mu.Unlock()
	return nil
}

func (s *Store) Purge(_ context.Context, prefix string) error {
	s.mu.Lock()
	for k := range s.entries {
		if strings.HasPrefix(k, prefix) {
			delete(s.entries, k)
		}
	}
	s.mu.Unlock()
	return nil
}

func (s *Store) Close(_ context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.entries = nil
	s.h = nil
	s.mu.Unlock()

	close(s.stop)
	<-s.done
	return nil
}

// Len reports live (unexpired) entries. Test/introspection helper.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	now := s.now()
	for _, e := range s.entries {
		if e.expiresAt.IsZero() || now.Before(e.expiresAt) {
			n++
		}
	}
	return n
}

func (s *Store) run() {
	defer close(s.done)
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		<-timer.C
	}
	armed := false
	for {
		if armed && !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		wait, pending := s.evictDue()
		armed = pending
		if pending {
			timer.Reset(wait)
		}
		select {
		case <-s.stop:
			if armed {
				timer.Stop()
			}
			return
		case <-s.wake:
		case <-timerC(timer, armed):
			armed = false
		}
	}
}

// timerC hides the timer channel when no deadline is armed so the select
// blocks on stop/wake only.
func timerC(t *time.Timer, armed bool) <-chan time.Time {
	if !armed {
		return nil
	}
	return t.C
}

// evictDue removes every entry whose deadline passed and whose stamp still
// matches the live entry, then reports the wait until the next deadline.
func (s *Store) evictDue() (time.Duration, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, false
	}
	now := s.now()
	for s.h.Len() > 0 {
		next := s.h[0]
		if next.at.After(now) {
			return next.at.Sub(now), true
		}
		heap.Pop(&s.h)
		if e, ok := s.entries[next.key]; ok && e.stamp == next.stamp {
			delete(s.entries, next.key)
		}
	}
	return 0, false
}
