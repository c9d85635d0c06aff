package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/gizo333/react-server/internal/auth/ratelimit"
)

// RateLimit guards an endpoint with the registration limiter, keyed by the
// request's client IP. Denied requests get 429 and are not recorded against
// the client; allowed requests are counted whether or not the handler
// succeeds afterwards.
func RateLimit(limiter ratelimit.Limiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		allowed, err := limiter.Allow(c.UserContext(), c.IP())
		if err != nil {
			zap.L().Error("rate limiter unavailable", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": "service unavailable",
			})
		}

		if !allowed {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "too many registration attempts, please try again later",
			})
		}

		return c.Next()
	}
}
