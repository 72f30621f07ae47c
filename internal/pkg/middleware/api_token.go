package middleware

import (
	"crypto/hmac"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sunfield-crm/sunfield/internal/pkg/constants"
	"github.com/sunfield-crm/sunfield/internal/pkg/env"
)

// APITokenMiddleware guards the internal JSON API with a single deployment
// token. User-level authentication lives in the gateway in front of this
// service; this check only keeps the API off the open internet.
func APITokenMiddleware() fiber.Handler {
	expected := strings.TrimSpace(env.GetEnv("API_TOKEN", ""))

	return func(c *fiber.Ctx) error {
		if expected == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "API token not configured"})
		}
		got := extractAPIToken(c)
		if got == "" || !hmac.Equal([]byte(got), []byte(expected)) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid API token"})
		}
		return c.Next()
	}
}

func extractAPIToken(c *fiber.Ctx) string {
	if v := strings.TrimSpace(c.Get(constants.APITokenHeader)); v != "" {
		return v
	}
	auth := strings.TrimSpace(c.Get("Authorization"))
	if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}
