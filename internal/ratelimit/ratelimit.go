// Package ratelimit implements a process-local fixed-window request limiter.
//
// The window is approximate: a burst straddling a window boundary can admit
// up to twice the configured maximum in a short span. That behavior is
// intentional and kept as-is; a sliding window would change the admission
// policy.
package ratelimit

import (
	"hash/fnv"
	"sync"
	"time"
)

// shardCount spreads keys across independently locked maps so unrelated
// clients never contend on a single mutex.
const shardCount = 32

// entry is the per-client counter: requests seen since windowStart.
type entry struct {
	windowStart time.Time
	count       int
}

type shard struct {
	mu      sync.Mutex
	entries map[string]entry
}

// Limiter counts requests per client key over a fixed time window. State is
// process-local: multiple processes enforce independent limits.
type Limiter struct {
	max    int
	window time.Duration
	shards [shardCount]*shard

	// now is overridable in tests.
	now func() time.Time
}

// New creates a Limiter allowing max requests per window for each key.
func New(max int, window time.Duration) *Limiter {
	l := &Limiter{
		max:    max,
		window: window,
		now:    time.Now,
	}
	for i := range l.shards {
		l.shards[i] = &shard{entries: make(map[string]entry)}
	}
	return l
}

// Allow records a request from key and reports whether it is within the
// limit. When the request is rejected, retryAfter is the time remaining
// until the key's window resets.
func (l *Limiter) Allow(key string) (ok bool, retryAfter time.Duration) {
	now := l.now()
	sh := l.shards[shardFor(key)]

	sh.mu.Lock()
	defer sh.mu.Unlock()

	e, exists := sh.entries[key]
	if !exists || now.Sub(e.windowStart) >= l.window {
		sh.entries[key] = entry{windowStart: now, count: 1}
		l.sweepLocked(sh, now)
		return true, 0
	}

	e.count++
	sh.entries[key] = e
	if e.count > l.max {
		return false, e.windowStart.Add(l.window).Sub(now)
	}
	return true, 0
}

// sweepLocked drops expired entries from the shard. Called opportunistically
// on window rollover so idle keys don't accumulate; the caller holds the
// shard lock.
func (l *Limiter) sweepLocked(sh *shard, now time.Time) {
	if len(sh.entries) < 1024 {
		return
	}
	for k, e := range sh.entries {
		if now.Sub(e.windowStart) >= l.window {
			delete(sh.entries, k)
		}
	}
}

func shardFor(key string) int {
	h := fnv.New32a()
	h.Write([]byte(key))
	return int(h.Sum32() % shardCount)
}
