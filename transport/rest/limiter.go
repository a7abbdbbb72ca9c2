package rest

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const limiterCleanupInterval = 3 * time.Minute

// IPRateLimiter keeps one token bucket per client IP.
type IPRateLimiter struct {
	logger *slog.Logger

	mu     sync.RWMutex
	limits map[string]*rate.Limiter

	r rate.Limit
	b int
}

func NewIPRateLimiter(logger *slog.Logger, r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		logger: logger.With("component", "rate_limiter"),
		limits: make(map[string]*rate.Limiter),
		r:      r,
		b:      b,
	}
}

// GetLimiter returns the bucket for ip, creating it on first use.
func (that *IPRateLimiter) GetLimiter(ip string) *rate.Limiter {
	that.mu.RLock()
	limiter, exists := that.limits[ip]
	that.mu.RUnlock()

	if exists {
		return limiter
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	limiter, exists = that.limits[ip]
	if !exists {
		limiter = rate.NewLimiter(that.r, that.b)
		that.limits[ip] = limiter
	}

	return limiter
}

// Run drops buckets that have refilled completely until ctx is done.
func (that *IPRateLimiter) Run(ctx context.Context) {
	ticker := time.NewTicker(limiterCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, remaining := that.cleanUp(time.Now())
			that.logger.Debug("rate limiter cleanup", "removed", removed, "remaining", remaining)
		}
	}
}

func (that *IPRateLimiter) cleanUp(now time.Time) (int, int) {
	that.mu.Lock()
	defer that.mu.Unlock()

	removed := 0
	for ip, limiter := range that.limits {
		if limiter.TokensAt(now) >= float64(limiter.Burst()) {
			delete(that.limits, ip)
			removed++
		}
	}

	return removed, len(that.limits)
}

// Middleware answers 429 once the client's bucket is empty.
func (that *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		if ip == "" {
			ip = "unknown_ip"
		}

		if !that.GetLimiter(ip).Allow() {
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "Too many requests, slow down!"})
			return
		}

		next.ServeHTTP(w, r)
	})
}
