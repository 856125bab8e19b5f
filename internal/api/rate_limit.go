package api

import (
	"sync"

	"golang.org/x/time/rate"
)

// RateLimiter hands out one token bucket per key.
type RateLimiter struct {
	mu     sync.Mutex
	limits map[string]*rate.Limiter
	rps    rate.Limit
	burst  int
}

// NewRateLimiter creates a limiter allowing rps requests per second per key,
// with bursts of up to burst requests.
func NewRateLimiter(rps float64, burst int) *RateLimiter {
	return &RateLimiter{
		limits: make(map[string]*rate.Limiter),
		rps:    rate.Limit(rps),
		burst:  burst,
	}
}

// getLimiter gets or creates a limiter for the given key.
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if limiter, ok := rl.limits[key]; ok {
		return limiter
	}
	limiter := rate.NewLimiter(rl.rps, rl.burst)
	rl.limits[key] = limiter
	return limiter
}

// Allow checks if a request is allowed for the given key.
func (rl *RateLimiter) Allow(key string) bool {
	return rl.getLimiter(key).Allow()
}
