package middleware

import (
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"

	apperrors "task-manager.com/task-manager/internal/errors"
)

const limiterIdleTTL = 10 * time.Minute

// RateLimiter allows limit requests per window for each client IP, refilling continuously.
func RateLimiter(limit int, window time.Duration) echo.MiddlewareFunc {
	if limit <= 0 || window <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	type bucket struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}

	var (
		mu      sync.Mutex
		hits    uint64
		buckets = make(map[string]*bucket)
		every   = rate.Every(window / time.Duration(limit))
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := time.Now()
			key := c.RealIP()

			mu.Lock()
			b, ok := buckets[key]
			if !ok {
				b = &bucket{limiter: rate.NewLimiter(every, limit)}
				buckets[key] = b
			}
			b.lastSeen = now
			allowed := b.limiter.AllowN(now, 1)

			hits++
			if hits%512 == 0 {
				cutoff := now.Add(-limiterIdleTTL)
				for k, v := range buckets {
					if v.lastSeen.Before(cutoff) {
						delete(buckets, k)
					}
				}
			}
			mu.Unlock()

			if !allowed {
				return apperrors.ErrRateLimited
			}

			return next(c)
		}
	}
}
