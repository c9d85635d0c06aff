package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gizo333/react-server/internal/auth/ratelimit"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler, limiter ratelimit.Limiter) {
	v1 := app.Group("/api/v1")

	// Only registration is rate limited; login does not create resources.
	v1.Post("/register", RateLimit(limiter), h.Register)
	v1.Post("/login", h.Login)
	v1.Get("/me", h.Me)
}
