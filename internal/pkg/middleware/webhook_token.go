package middleware

import (
	"crypto/hmac"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sunfield-crm/sunfield/internal/pkg/env"
)

// WebhookTokenMiddleware authenticates inbound platform webhooks against a
// shared secret carried in a source-specific header. The expected value is
// read once when the router is installed and compared in constant time.
// Requests failing the check are rejected before any event row is written.
func WebhookTokenMiddleware(headerName, envKey string) fiber.Handler {
	expected := strings.TrimSpace(env.GetEnv(envKey, ""))

	return func(c *fiber.Ctx) error {
		if expected == "" {
			// Misconfigured deployment: refuse everything rather than
			// accepting unauthenticated events.
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Webhook token not configured"})
		}
		got := strings.TrimSpace(c.Get(headerName))
		if got == "" || !hmac.Equal([]byte(got), []byte(expected)) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid webhook token"})
		}
		return c.Next()
	}
}
