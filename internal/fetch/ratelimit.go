package fetch

import (
	"sync"
	"time"
)

// RateLimiter enforces a minimum delay between requests to the same host.
type RateLimiter struct {
	mu       sync.Mutex
	lastCall map[string]time.Time
	delay    time.Duration
}

// NewRateLimiter creates a RateLimiter with the given per-host delay.
func NewRateLimiter(delay time.Duration) *RateLimiter {
	return &RateLimiter{
		lastCall: make(map[string]time.Time),
		delay:    delay,
	}
}

// Wait blocks until enough time has passed since the last request to host.
func (r *RateLimiter) Wait(host string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(r.lastCall[host])
	if elapsed < r.delay {
		time.Sleep(r.delay - elapsed)
	}
	r.lastCall[host] = time.Now()
}
