package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	resp "paroquia-backend/internal/transport/http/response"
)

// RateLimit is a global token bucket. rps <= 0 disables it.
func RateLimit(rps rate.Limit, burst int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	lim := rate.NewLimiter(rps, max(burst, 1))
	return func(c *gin.Context) {
		if lim.Allow() {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeTooManyRequests, "too many requests"))
	}
}

// ipIdleTTL is how long an idle client keeps its bucket.
const ipIdleTTL = 10 * time.Minute

type ipBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// ipLimiter keeps one bucket per client IP. Buckets idle for longer than ttl
// are swept at most once per ttl.
type ipLimiter struct {
	rps   rate.Limit
	burst int
	ttl   time.Duration
	now   func() time.Time

	mu        sync.Mutex
	buckets   map[string]*ipBucket
	lastSweep time.Time
}

func newIPLimiter(rps rate.Limit, burst int, ttl time.Duration) *ipLimiter {
	return &ipLimiter{rps: rps, burst: burst, ttl: ttl, now: time.Now, buckets: make(map[string]*ipBucket)}
}

func (l *ipLimiter) allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	if now.Sub(l.lastSweep) >= l.ttl {
		for k, b := range l.buckets {
			if now.Sub(b.seen) >= l.ttl {
				delete(l.buckets, k)
			}
		}
		l.lastSweep = now
	}
	b, ok := l.buckets[ip]
	if !ok {
		b = &ipBucket{lim: rate.NewLimiter(l.rps, l.burst)}
		l.buckets[ip] = b
	}
	b.seen = now
	return b.lim.AllowN(now, 1)
}

func (l *ipLimiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// RateLimitPerIP keeps one bucket per client IP; used on the login route.
func RateLimitPerIP(rps rate.Limit, burst int) gin.HandlerFunc {
	return ipLimit(newIPLimiter(rps, burst, ipIdleTTL))
}

func ipLimit(l *ipLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l.allow(c.ClientIP()) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeTooManyRequests, "too many requests"))
	}
}
