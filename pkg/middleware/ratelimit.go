/**
 * @description
 * Rate limiting middleware to prevent abuse of the sync endpoint. Uses a
 * simple in-memory token bucket per caller; wizard syncs happen at most once
 * per step transition, so a small steady rate with a burst allowance is
 * plenty.
 *
 * @dependencies
 * - sync: For thread-safe operations
 * - time: For time-based refill
 * - net/http: For HTTP middleware
 */
package middleware

import (
	"net/http"
	"sync"
	"time"
)

// RateLimiter implements a per-key token bucket rate limiter.
type RateLimiter struct {
	buckets     map[string]*tokenBucket
	mutex       sync.Mutex
	capacity    int
	refillRate  time.Duration
	stopCleanup chan struct{}
}

type tokenBucket struct {
	tokens     int
	lastRefill time.Time
}

// NewRateLimiter creates a rate limiter allowing `capacity` burst requests
// per key, refilling one token every `refillRate`.
func NewRateLimiter(capacity int, refillRate time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets:     make(map[string]*tokenBucket),
		capacity:    capacity,
		refillRate:  refillRate,
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

// Stop terminates the background cleanup goroutine.
func (rl *RateLimiter) Stop() {
	close(rl.stopCleanup)
}

// Allow checks if a request from the given key should be allowed.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := time.Now()
	bucket, exists := rl.buckets[key]
	if !exists {
		rl.buckets[key] = &tokenBucket{tokens: rl.capacity - 1, lastRefill: now}
		return true
	}

	refilled := int(now.Sub(bucket.lastRefill) / rl.refillRate)
	if refilled > 0 {
		bucket.tokens += refilled
		if bucket.tokens > rl.capacity {
			bucket.tokens = rl.capacity
		}
		bucket.lastRefill = now
	}

	if bucket.tokens <= 0 {
		return false
	}
	bucket.tokens--
	return true
}

// cleanupLoop drops buckets idle long enough to be full again, to prevent
// unbounded growth.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.mutex.Lock()
			idle := time.Duration(rl.capacity) * rl.refillRate
			now := time.Now()
			for key, bucket := range rl.buckets {
				if now.Sub(bucket.lastRefill) > idle {
					delete(rl.buckets, key)
				}
			}
			rl.mutex.Unlock()
		case <-rl.stopCleanup:
			return
		}
	}
}

// Handler wraps an http.Handler, keying the limit by authenticated store id
// when present and by remote address otherwise.
func (rl *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := GetStoreIDFromContext(r.Context())
		if key == "" {
			key = r.RemoteAddr
		}
		if !rl.Allow(key) {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
