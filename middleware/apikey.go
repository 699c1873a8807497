// Package middleware provides request-level filters for the API surface.
package middleware

import (
	"crypto/subtle"

	"foliocms/observability"

	"github.com/gofiber/fiber/v2"
)

// APIKey returns a Fiber middleware that authorizes every request against the
// configured shared secret. A missing or mismatched X-API-Key header
// short-circuits the request before any resource handler runs.
func APIKey(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		provided := c.Get("X-API-Key")
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			observability.GateRejections.Inc()
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Forbidden",
			})
		}
		return c.Next()
	}
}
