package middleware

import (
	"encoding/json"
	"net"
	"sync"
	"time"

	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"

	"github.com/techgit41/Advanced-Todo-App/api/transport"
)

// RateLimiter throttles requests per client IP using token buckets. Buckets
// idle for longer than the window are evicted by a background sweep.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*clientBucket
	limit    rate.Limit
	burst    int
	window   time.Duration
	stopOnce sync.Once
	stopCh   chan struct{}
}

type clientBucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimiter allows max requests per window from each client IP.
func NewRateLimiter(max int, window time.Duration) *RateLimiter {
	if max <= 0 {
		max = 100
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	rl := &RateLimiter{
		clients: make(map[string]*clientBucket),
		limit:   rate.Every(window / time.Duration(max)),
		burst:   max,
		window:  window,
		stopCh:  make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

// Handler wraps next with the rate limit check.
func (rl *RateLimiter) Handler(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if !rl.Allow(clientIP(ctx)) {
			ctx.Response.Header.SetContentType("application/json")
			ctx.SetStatusCode(fasthttp.StatusTooManyRequests)
			body, _ := json.Marshal(transport.NewError("RATE_LIMITED", "too many requests, slow down", nil))
			ctx.SetBody(body)
			return
		}
		next(ctx)
	}
}

// Allow reports whether one more request from key fits in its bucket.
func (rl *RateLimiter) Allow(key string) bool {
	rl.mu.Lock()
	bucket, ok := rl.clients[key]
	if !ok {
		bucket = &clientBucket{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.clients[key] = bucket
	}
	bucket.lastSeen = time.Now()
	rl.mu.Unlock()

	return bucket.limiter.Allow()
}

// Stop terminates the eviction sweep.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			cutoff := time.Now().Add(-rl.window)
			rl.mu.Lock()
			for key, bucket := range rl.clients {
				if bucket.lastSeen.Before(cutoff) {
					delete(rl.clients, key)
				}
			}
			rl.mu.Unlock()
		case <-rl.stopCh:
			return
		}
	}
}

func clientIP(ctx *fasthttp.RequestCtx) string {
	addr := ctx.RemoteAddr()
	if addr == nil {
		return "unknown"
	}
	if host, _, err := net.SplitHostPort(addr.String()); err == nil {
		return host
	}
	return addr.String()
}
