package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	perr "bridgewatch/internal/platform/errors"
	phttp "bridgewatch/internal/platform/net/http"
	ptime "bridgewatch/internal/platform/time"

	"golang.org/x/time/rate"
)

// DefaultMaxClients caps how many client buckets a RateLimiter keeps at once
const DefaultMaxClients = 10000

// RateLimiter hands out one token bucket per client key. A bucket idle long enough
// to have refilled completely is dropped, and the least recently seen one is evicted
// when the cap is reached
type RateLimiter struct {
	mu        sync.Mutex
	limits    map[string]*bucket
	every     time.Duration
	burst     int
	idle      time.Duration
	max       int
	now       ptime.Clock
	lastSweep time.Time
}

type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// RateLimitOption tunes a RateLimiter
type RateLimitOption func(*RateLimiter)

// WithClock replaces the wall clock, mostly for tests
func WithClock(c ptime.Clock) RateLimitOption {
	return func(rl *RateLimiter) { rl.now = c }
}

// WithMaxClients sets the bucket cap; n < 1 keeps the default
func WithMaxClients(n int) RateLimitOption {
	return func(rl *RateLimiter) {
		if n > 0 {
			rl.max = n
		}
	}
}

// NewRateLimiter allows one request per every with the given burst, per key
func NewRateLimiter(every time.Duration, burst int, opts ...RateLimitOption) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	rl := &RateLimiter{
		limits: make(map[string]*bucket),
		every:  every,
		burst:  burst,
		idle:   every * time.Duration(burst),
		max:    DefaultMaxClients,
		now:    ptime.System,
	}
	for _, o := range opts {
		o(rl)
	}
	rl.lastSweep = rl.now()
	return rl
}

func (rl *RateLimiter) get(key string, now time.Time) *bucket {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if now.Sub(rl.lastSweep) >= rl.idle {
		rl.sweep(now)
	}
	if b, ok := rl.limits[key]; ok {
		b.seen = now
		return b
	}
	if len(rl.limits) >= rl.max {
		rl.evictOldest()
	}
	b := &bucket{lim: rate.NewLimiter(rate.Every(rl.every), rl.burst), seen: now}
	rl.limits[key] = b
	return b
}

// sweep drops buckets that have been idle for a full refill. mu must be held
func (rl *RateLimiter) sweep(now time.Time) {
	for k, b := range rl.limits {
		if now.Sub(b.seen) >= rl.idle {
			delete(rl.limits, k)
		}
	}
	rl.lastSweep = now
}

// evictOldest drops the least recently seen bucket. mu must be held
func (rl *RateLimiter) evictOldest() {
	var (
		oldest string
		at     time.Time
		found  bool
	)
	for k, b := range rl.limits {
		if !found || b.seen.Before(at) {
			oldest, at, found = k, b.seen, true
		}
	}
	if found {
		delete(rl.limits, oldest)
	}
}

// Allow reports whether a request for key may proceed now
func (rl *RateLimiter) Allow(key string) bool {
	now := rl.now()
	return rl.get(key, now).lim.AllowN(now, 1)
}

// Len returns how many client buckets are held
func (rl *RateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.limits)
}

// Middleware rejects over-limit requests with a 429 envelope, keyed by client IP
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !rl.Allow(clientKey(r)) {
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter(rl.every)))
			phttp.RespondError(w, r, perr.TooManyf("rate limit exceeded, retry later"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func retryAfter(every time.Duration) int {
	secs := int(math.Ceil(every.Seconds()))
	if secs < 1 {
		return 1
	}
	return secs
}
