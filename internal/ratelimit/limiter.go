// Package ratelimit implements a fixed-window, in-memory request limiter.
// State is process-local and lost on restart; the limit is soft.
package ratelimit

import (
	"context"
	"hash/fnv"
	"sync"
	"time"
)

const shardCount = 32

// Result is the outcome of one limiter check.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

type window struct {
	count int
	start time.Time
}

// Shards keep unrelated client keys from serializing on one lock; a key's
// window is only ever mutated under its shard mutex.
type shard struct {
	mu      sync.Mutex
	windows map[string]*window
}

// Limiter counts requests per client key within a fixed window.
type Limiter struct {
	max    int
	window time.Duration
	shards [shardCount]*shard
	now    func() time.Time
}

// New builds a limiter allowing max requests per key per window.
func New(max int, windowDur time.Duration) *Limiter {
	l := &Limiter{
		max:    max,
		window: windowDur,
		now:    time.Now,
	}
	for i := range l.shards {
		l.shards[i] = &shard{windows: make(map[string]*window)}
	}
	return l
}

// Limit returns the configured per-window maximum.
func (l *Limiter) Limit() int {
	return l.max
}

func (l *Limiter) shardFor(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return l.shards[h.Sum32()%shardCount]
}

// Allow records one request for key and decides whether it is within quota.
// The first request of a window (or of an expired one) resets the count to 1
// and is always allowed.
func (l *Limiter) Allow(key string) Result {
	now := l.now()
	s := l.shardFor(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.windows[key]
	if !ok || !now.Before(w.start.Add(l.window)) {
		w = &window{count: 1, start: now}
		s.windows[key] = w
		return Result{Allowed: true, Limit: l.max, Remaining: l.max - 1, ResetAt: w.start.Add(l.window)}
	}

	w.count++
	remaining := l.max - w.count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   w.count <= l.max,
		Limit:     l.max,
		Remaining: remaining,
		ResetAt:   w.start.Add(l.window),
	}
}

// Sweep drops windows whose reset time has passed and returns how many were
// removed. Bounds memory when key cardinality is unbounded.
func (l *Limiter) Sweep() int {
	now := l.now()
	removed := 0
	for _, s := range l.shards {
		s.mu.Lock()
		for key, w := range s.windows {
			if !now.Before(w.start.Add(l.window)) {
				delete(s.windows, key)
				removed++
			}
		}
		s.mu.Unlock()
	}
	return removed
}

// StartSweeper runs Sweep on the given interval until ctx is cancelled.
func (l *Limiter) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				l.Sweep()
			}
		}
	}()
}
