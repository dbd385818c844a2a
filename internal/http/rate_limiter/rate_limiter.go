// Package rate_limiter throttles form posts, such as login attempts, per
// client IP.
package rate_limiter

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

const (
	cleanupInterval = time.Minute
	idleTimeout     = 5 * time.Minute
)

var (
	visitors = make(map[string]*clientLimiter)
	mu       sync.Mutex
)

func GetVisitor(ip string) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	v, exists := visitors[ip]
	if !exists {
		limiter := rate.NewLimiter(1, 3) // 1 request/sec, burst of 3
		visitors[ip] = &clientLimiter{limiter, time.Now()}
		return limiter
	}

	v.lastSeen = time.Now()
	return v.limiter
}

// StartVisitorCleanupLoop forgets idle visitors every minute until ctx is
// done.
func StartVisitorCleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cleanupIdle(time.Now())
		}
	}
}

func cleanupIdle(now time.Time) int {
	mu.Lock()
	defer mu.Unlock()
	removed := 0
	for ip, v := range visitors {
		if now.Sub(v.lastSeen) > idleTimeout {
			delete(visitors, ip)
			removed++
		}
	}
	return removed
}

func CleanupAllVisitors() {
	mu.Lock()
	visitors = make(map[string]*clientLimiter)
	mu.Unlock()
}

// Middleware rejects requests from an IP that exceeded its budget with 429.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !GetVisitor(ip).Allow() {
			w.Header().Set("Retry-After", "1")
			http.Error(w, "too many requests, slow down", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
