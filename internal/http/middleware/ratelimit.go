package middleware

import (
	"net/http"
	"sync"
	"time"
)

const (
	bucketSweepEvery = 5 * time.Minute
	bucketIdleAfter  = 10 * time.Minute
)

// RateLimiter throttles callers per client IP with a continuously refilling
// token bucket. There is no background goroutine: stale buckets are swept
// opportunistically inside Allow, so the limiter needs no shutdown hook.
type RateLimiter struct {
	ratePerSec float64
	burst      float64

	mu        sync.Mutex
	clients   map[string]*tokenBucket
	lastSweep time.Time
}

type tokenBucket struct {
	tokens   float64
	refillAt time.Time
}

// refill credits tokens accrued since the last refill, capped at burst.
func (b *tokenBucket) refill(now time.Time, ratePerSec, burst float64) {
	b.tokens += now.Sub(b.refillAt).Seconds() * ratePerSec
	if b.tokens > burst {
		b.tokens = burst
	}
	b.refillAt = now
}

// NewRateLimiter creates a limiter allowing ratePerSec requests per second
// with the given burst per client IP.
func NewRateLimiter(ratePerSec float64, burst int) *RateLimiter {
	return &RateLimiter{
		ratePerSec: ratePerSec,
		burst:      float64(burst),
		clients:    make(map[string]*tokenBucket),
		lastSweep:  time.Now(),
	}
}

// Allow reports whether a request from ip may proceed, spending one token.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	rl.sweepLocked(now)

	b, ok := rl.clients[ip]
	if !ok {
		b = &tokenBucket{tokens: rl.burst, refillAt: now}
		rl.clients[ip] = b
	} else {
		b.refill(now, rl.ratePerSec, rl.burst)
	}

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// sweepLocked drops buckets idle long enough to have fully refilled anyway.
func (rl *RateLimiter) sweepLocked(now time.Time) {
	if now.Sub(rl.lastSweep) < bucketSweepEvery {
		return
	}
	rl.lastSweep = now
	for ip, b := range rl.clients {
		if now.Sub(b.refillAt) > bucketIdleAfter {
			delete(rl.clients, ip)
		}
	}
}

// clientIP picks the address the limiter keys on. chi's RealIP middleware
// rewrites RemoteAddr before this runs, but the header is also honored
// directly so the limiter still keys correctly without that middleware.
func clientIP(r *http.Request) string {
	if xri := r.Header.Get("X-Real-Ip"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

// RateLimit rejects requests over the configured per-IP rate with
// 429 Too Many Requests.
func RateLimit(ratePerSec float64, burst int) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(ratePerSec, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
