package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunfield-crm/sunfield/internal/pkg/constants"
)

func newTokenTestApp(headerName, envKey string) *fiber.App {
	app := fiber.New()
	app.Post("/hook", WebhookTokenMiddleware(headerName, envKey), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

func TestWebhookTokenMiddlewareAcceptsValidToken(t *testing.T) {
	t.Setenv("TEST_WEBHOOK_TOKEN", "s3cret")
	app := newTokenTestApp(constants.RepCardTokenHeader, "TEST_WEBHOOK_TOKEN")

	req := httptest.NewRequest(http.MethodPost, "/hook", nil)
	req.Header.Set(constants.RepCardTokenHeader, "s3cret")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestWebhookTokenMiddlewareRejectsWrongToken(t *testing.T) {
	t.Setenv("TEST_WEBHOOK_TOKEN", "s3cret")
	app := newTokenTestApp(constants.RepCardTokenHeader, "TEST_WEBHOOK_TOKEN")

	req := httptest.NewRequest(http.MethodPost, "/hook", nil)
	req.Header.Set(constants.RepCardTokenHeader, "wrong")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookTokenMiddlewareRejectsMissingHeader(t *testing.T) {
	t.Setenv("TEST_WEBHOOK_TOKEN", "s3cret")
	app := newTokenTestApp(constants.RepCardTokenHeader, "TEST_WEBHOOK_TOKEN")

	resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/hook", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestWebhookTokenMiddlewareRefusesWhenUnconfigured(t *testing.T) {
	app := newTokenTestApp(constants.AuroraTokenHeader, "UNSET_WEBHOOK_TOKEN")

	req := httptest.NewRequest(http.MethodPost, "/hook", nil)
	req.Header.Set(constants.AuroraTokenHeader, "anything")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAPITokenMiddlewareAcceptsHeaderAndBearer(t *testing.T) {
	t.Setenv("API_TOKEN", "internal-token")

	app := fiber.New()
	app.Get("/v1/deals", APITokenMiddleware(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/v1/deals", nil)
	req.Header.Set(constants.APITokenHeader, "internal-token")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/v1/deals", nil)
	req.Header.Set("Authorization", "Bearer internal-token")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodGet, "/v1/deals", nil)
	req.Header.Set("Authorization", "Bearer nope")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
