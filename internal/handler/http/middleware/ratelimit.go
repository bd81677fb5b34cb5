package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gajihub/payroll-backend-go/internal/handler/http/response"
	"golang.org/x/time/rate"
)

const visitorIdleEviction = 10 * time.Minute

// visitor pairs a client's token bucket with the last time it was seen,
// so idle buckets can be evicted and the registry stays bounded.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type visitorRegistry struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
}

func newVisitorRegistry(limit rate.Limit, burst int) *visitorRegistry {
	reg := &visitorRegistry{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
	}
	go reg.evictIdle()
	return reg
}

func (reg *visitorRegistry) limiterFor(key string) *rate.Limiter {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	v, ok := reg.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(reg.limit, reg.burst)}
		reg.visitors[key] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

func (reg *visitorRegistry) evictIdle() {
	for range time.Tick(time.Minute) {
		reg.mu.Lock()
		for key, v := range reg.visitors {
			if time.Since(v.lastSeen) > visitorIdleEviction {
				delete(reg.visitors, key)
			}
		}
		reg.mu.Unlock()
	}
}

// RateLimitByIP throttles each client IP with its own token bucket.
func RateLimitByIP(limit rate.Limit, burst int) func(http.Handler) http.Handler {
	registry := newVisitorRegistry(limit, burst)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !registry.limiterFor(clientIP(r)).Allow() {
				response.TooManyRequests(w, "Too many requests from this IP")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers the first X-Forwarded-For hop set by the reverse proxy,
// falling back to the connection's remote address.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx != -1 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
