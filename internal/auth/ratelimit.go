package auth

import (
	"sync"
	"time"
)

// RateLimiter is a fixed-window counter used at the login boundary to slow
// down credential guessing. State is held on the instance, never at package
// level, so tests construct and discard limiters freely.
type RateLimiter struct {
	mu      sync.Mutex
	max     int
	window  time.Duration
	now     func() time.Time
	records map[string]*rateRecord
}

type rateRecord struct {
	count   int
	resetAt time.Time
}

func NewRateLimiter(maxAttempts int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		max:     maxAttempts,
		window:  window,
		now:     time.Now,
		records: make(map[string]*rateRecord),
	}
}

// WithClock overrides the limiter's time source for tests.
func (rl *RateLimiter) WithClock(now func() time.Time) *RateLimiter {
	rl.now = now
	return rl
}

// Allow consumes one attempt for the key and reports whether it was within
// the window's budget.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rec, ok := rl.records[key]
	if !ok || now.After(rec.resetAt) {
		rl.records[key] = &rateRecord{count: 1, resetAt: now.Add(rl.window)}
		return true
	}

	if rec.count >= rl.max {
		return false
	}
	rec.count++
	return true
}

// Reset clears the counter for a key, e.g. after a successful login.
func (rl *RateLimiter) Reset(key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.records, key)
}
