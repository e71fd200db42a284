package middleware

import (
	"log"

	"github.com/labstack/echo/v4"

	apperrors "task-service.com/task-service/internal/errors"
	"task-service.com/task-service/internal/ratelimit"
)

// RateLimiter keys requests on the client IP. A limiter failure lets the
// request through.
func RateLimiter(limiter ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Printf("rate limiter unavailable: %v", err)
				return next(c)
			}

			if !ok {
				return apperrors.ErrRateLimitExceeded
			}

			return next(c)
		}
	}
}
