package requests

import (
	"context"
	"sync"
	"time"

	"gametrack/pkg/config"
)

// Single riot rate limiting.
type RiotLimit struct {
	limit         int
	resetInterval time.Duration
	count         int
	lastReset     time.Time
}

// Full riot rate limit, containing all the constraints.
// One instance is shared by every request going to the same routing host.
type RateLimiter struct {
	windows []*RiotLimit
	mu      sync.Mutex
}

// NewRateLimiter creates the limiter with the configured windows.
// Windows with a non positive count are ignored.
func NewRateLimiter(limits config.LimitsConfiguration) *RateLimiter {
	now := time.Now()
	limiter := &RateLimiter{}

	for _, l := range []config.Limit{limits.Lower, limits.Higher} {
		if l.Count <= 0 || l.ResetInterval <= 0 {
			continue
		}

		limiter.windows = append(limiter.windows, &RiotLimit{
			limit:         l.Count,
			resetInterval: l.ResetInterval,
			lastReset:     now,
		})
	}

	return limiter
}

// Reset the count.
func (r *RateLimiter) resetCounts(now time.Time) {
	// Loop through each window and verify if can reset.
	for _, window := range r.windows {
		if now.Sub(window.lastReset) >= window.resetInterval {
			window.count = 0
			window.lastReset = now
		}
	}
}

// Check if the window is on it's limits.
func (r *RateLimiter) checkLimits() bool {
	for _, window := range r.windows {
		if window.count >= window.limit {
			return false
		}
	}
	return true
}

// Loop through each window and increment the counter.
func (r *RateLimiter) incrementCounts() {
	for _, window := range r.windows {
		window.count++
	}
}

// waitTime returns how long until every full window resets.
func (r *RateLimiter) waitTime(now time.Time) time.Duration {
	var waitTime time.Duration
	for _, window := range r.windows {
		// If it's not this window that is limited, just continue.
		if window.count < window.limit {
			continue
		}

		waitTill := window.resetInterval - now.Sub(window.lastReset)
		if waitTill > waitTime {
			waitTime = waitTill
		}
	}
	return waitTime
}

// reserve takes a slot when every window allows it.
// Returns how long to wait otherwise.
func (r *RateLimiter) reserve() (time.Duration, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	r.resetCounts(now)

	if !r.checkLimits() {
		return r.waitTime(now), false
	}

	r.incrementCounts()
	return 0, true
}

// Wait blocks until a request can be sent or the context is done.
// The lock is only held while counting, goroutines sleep on their own timers.
func (r *RateLimiter) Wait(ctx context.Context) error {
	for {
		wait, ok := r.reserve()
		if ok {
			return nil
		}

		if err := sleep(ctx, wait); err != nil {
			return err
		}
	}
}

// sleep waits for the duration unless the context finishes first.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
