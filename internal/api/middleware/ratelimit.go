package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/interviewsim/interview-api/internal/api/metrics"
)

// Limiter is the slice of the Redis rate limiter this middleware needs.
type Limiter interface {
	Allow(ctx context.Context, key string) bool
}

// LoginRateLimit throttles a route per client IP. Intended for the admin
// login endpoint, where unlimited attempts would make the exact-match
// credential check guessable.
func LoginRateLimit(limiter Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(c.Request().Context(), c.RealIP()) {
				metrics.AdminLoginsTotal.WithLabelValues("rate_limited").Inc()
				return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "too many attempts"})
			}
			return next(c)
		}
	}
}
