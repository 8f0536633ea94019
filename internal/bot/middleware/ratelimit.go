package middleware

import (
	"sync"
	"time"
)

// RateLimiter caps the number of requests per user.
// Sliding-window algorithm.
type RateLimiter struct {
	mu       sync.Mutex
	requests map[int64][]time.Time
	limit    int
	window   time.Duration

	// cleanupEvery is derived from the window so short windows do not
	// let stale per-user slices pile up between sweeps.
	cleanupEvery time.Duration

	stopOnce sync.Once
	stopCh   chan struct{}
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	cleanupEvery := 5 * window
	if cleanupEvery < time.Minute {
		cleanupEvery = time.Minute
	}

	rl := &RateLimiter{
		requests:     make(map[int64][]time.Time),
		limit:        limit,
		window:       window,
		cleanupEvery: cleanupEvery,
		stopCh:       make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Close stops the background cleanup goroutine.
// Must be called on shutdown, otherwise cleanup runs forever.
func (rl *RateLimiter) Close() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

func (rl *RateLimiter) Allow(userID int64) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	recent := withinWindow(rl.requests[userID], time.Now().Add(-rl.window))

	if len(recent) >= rl.limit {
		rl.requests[userID] = recent
		return false
	}

	rl.requests[userID] = append(recent, time.Now())
	return true
}

// withinWindow drops timestamps at or before the cutoff.
func withinWindow(times []time.Time, cutoff time.Time) []time.Time {
	var recent []time.Time
	for _, t := range times {
		if t.After(cutoff) {
			recent = append(recent, t)
		}
	}
	return recent
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(rl.cleanupEvery)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stopCh:
			return
		case <-ticker.C:
			rl.mu.Lock()
			cutoff := time.Now().Add(-rl.window)
			for userID, times := range rl.requests {
				recent := withinWindow(times, cutoff)
				if len(recent) == 0 {
					delete(rl.requests, userID)
				} else {
					rl.requests[userID] = recent
				}
			}
			rl.mu.Unlock()
		}
	}
}
