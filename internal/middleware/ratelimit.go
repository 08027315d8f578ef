package middleware

import (
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	// Ceiling of authentication attempts per key within one window.
	RateLimitMax    = 25
	RateLimitWindow = 15 * time.Minute
)

type rateWindow struct {
	count       int
	windowStart time.Time
}

// RateLimiter counts authentication attempts per client address in fixed
// windows. Stale keys are never evicted; acceptable for a single process.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*rateWindow
	now     func() time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*rateWindow),
		now:     time.Now,
	}
}

// NewRateLimiterWithClock is used by tests to step past the window.
func NewRateLimiterWithClock(now func() time.Time) *RateLimiter {
	return &RateLimiter{
		windows: make(map[string]*rateWindow),
		now:     now,
	}
}

// Allow reports whether another attempt from key is permitted. A fresh or
// expired window restarts the count; once the ceiling is reached further
// attempts in the same window are denied without growing the count.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	w, ok := rl.windows[key]
	if !ok || now.Sub(w.windowStart) > RateLimitWindow {
		rl.windows[key] = &rateWindow{count: 1, windowStart: now}
		return true
	}

	if w.count >= RateLimitMax {
		return false
	}
	w.count++
	return true
}

// AuthRateLimit guards the login and registration endpoints against
// brute-force attempts, keyed by client address.
func AuthRateLimit(rl *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			c.JSON(429, gin.H{"error": "Muitas tentativas. Tente novamente mais tarde."})
			c.Abort()
			return
		}
		c.Next()
	}
}
