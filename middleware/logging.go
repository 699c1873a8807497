package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// RequestLogger returns a Fiber middleware for structured request logging.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		latency := time.Since(start)

		evt := log.Info()
		if err != nil {
			evt = log.Error().Err(err)
		}

		if rid := c.Locals("requestid"); rid != nil {
			evt = evt.Interface("request_id", rid)
		}

		evt.
			Int("status", status).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", c.IP()).
			Dur("latency", latency).
			Msg("request processed")

		return err
	}
}
