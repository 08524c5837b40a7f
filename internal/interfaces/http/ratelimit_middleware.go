package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/invorya/bodega-api/internal/application/dto"
	"github.com/invorya/bodega-api/internal/infrastructure/ratelimit"
)

// LoginRateLimit limita los intentos de login por IP con la ventana deslizante
// de Redis. Protege contra fuerza bruta de credenciales.
func LoginRateLimit(limiter *ratelimit.LoginLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter != nil && !limiter.Allow(c.Context(), c.IP()) {
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code: "RATE_LIMITED", Message: "demasiados intentos, espera un momento",
			})
		}
		return c.Next()
	}
}
