package auth

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	"github.com/pagesmith-app/pagesmith/pkg/apperror"
)

// IPRateLimiter applies a token-bucket limit per client IP. Buckets idle
// for more than an hour are dropped to keep the map bounded.
type IPRateLimiter struct {
	mu       sync.Mutex
	limiters map[string]*ipLimiter
	limit    rate.Limit
	burst    int
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewIPRateLimiter creates a limiter allowing perMinute events per IP.
// Values below 1 are clamped to 1; zero would divide the refill interval
// away and a limiter that admits nothing locks every client out.
func NewIPRateLimiter(perMinute int) *IPRateLimiter {
	if perMinute < 1 {
		perMinute = 1
	}
	return &IPRateLimiter{
		limiters: make(map[string]*ipLimiter),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
	}
}

// Allow reports whether the given IP may proceed
func (l *IPRateLimiter) Allow(ip string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	entry, ok := l.limiters[ip]
	if !ok {
		entry = &ipLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[ip] = entry
	}
	entry.lastSeen = now

	if len(l.limiters) > 1000 {
		for k, v := range l.limiters {
			if now.Sub(v.lastSeen) > time.Hour {
				delete(l.limiters, k)
			}
		}
	}

	return entry.limiter.Allow()
}

// Limit returns Echo middleware enforcing the per-IP limit
func (l *IPRateLimiter) Limit() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !l.Allow(c.RealIP()) {
				return apperror.ErrTooManyRequests
			}
			return next(c)
		}
	}
}
