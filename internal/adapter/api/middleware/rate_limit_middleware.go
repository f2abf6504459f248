package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"bizmatch/internal/infrastructure/ratelimit"
	"bizmatch/pkg/errors"
	"bizmatch/pkg/logger"
	"bizmatch/pkg/response"
)

type RateLimitMiddleware struct {
	limiter *ratelimit.RateLimiter
}

func NewRateLimitMiddleware(limiter *ratelimit.RateLimiter) *RateLimitMiddleware {
	return &RateLimitMiddleware{limiter: limiter}
}

// Limit throttles action per acting user, falling back to the client IP for anonymous calls.
func (m *RateLimitMiddleware) Limit(action string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key, ok := c.Get("uid").(string)
			if !ok || key == "" {
				key = c.RealIP()
			}

			allowed, retryAfter := m.limiter.Allow(key, action)
			if !allowed {
				logger.Warn("Rate limit hit for %s on %s (retry in %v)", key, action, retryAfter)
				c.Response().Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded, please slow down"))
			}

			return next(c)
		}
	}
}
