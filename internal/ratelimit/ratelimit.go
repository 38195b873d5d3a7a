// Package ratelimit provides a process-local fixed-window message rate
// limiter. State lives in memory behind the Limiter interface so a
// multi-node deployment can swap in a shared store; counters reset on
// restart, which is acceptable for this scope.
package ratelimit

import (
	"sync"
	"time"
)

// Limiter decides whether a user may send another message right now.
type Limiter interface {
	Allow(userID uint) bool
}

// Window is a fixed-window Limiter: up to Max events per Interval,
// counted per user id.
type Window struct {
	mu       sync.Mutex
	max      int
	interval time.Duration
	now      func() time.Time
	buckets  map[uint]*bucket
}

type bucket struct {
	start time.Time
	count int
}

// Chat is the process-wide limiter for direct and team messages,
// reconfigured from config at startup.
var Chat Limiter = NewWindow(10, 10*time.Second)

// NewWindow creates a fixed-window limiter allowing max events per
// interval.
func NewWindow(max int, interval time.Duration) *Window {
	return &Window{
		max:      max,
		interval: interval,
		now:      time.Now,
		buckets:  make(map[uint]*bucket),
	}
}

// Allow records an event for the user and reports whether it fits in the
// current window.
func (w *Window) Allow(userID uint) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	b, ok := w.buckets[userID]
	if !ok || now.Sub(b.start) >= w.interval {
		w.buckets[userID] = &bucket{start: now, count: 1}
		return true
	}
	if b.count >= w.max {
		return false
	}
	b.count++
	return true
}

// SetClock overrides the limiter's time source. Intended for tests.
func (w *Window) SetClock(now func() time.Time) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.now = now
}
