package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunfield-crm/sunfield/internal/pkg/reconcile"
)

func TestReconcileErrorResponseMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", fmt.Errorf("%w: no appointment", reconcile.ErrNotFound), fiber.StatusNotFound},
		{"unprocessable", fmt.Errorf("%w: unknown closer", reconcile.ErrUnprocessable), fiber.StatusUnprocessableEntity},
		{"infrastructure", fmt.Errorf("connection refused"), fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return reconcileErrorResponse(c, tc.err)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.want, resp.StatusCode)
		})
	}
}

func TestCollectWebhookHeadersRedactsSecrets(t *testing.T) {
	app := fiber.New()
	var collected map[string]string
	app.Get("/", func(c *fiber.Ctx) error {
		collected = collectWebhookHeaders(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Repcard-Webhook-Token", "super-secret")
	req.Header.Set("Authorization", "Bearer abc")
	req.Header.Set("User-Agent", "repcard-delivery/1.0")

	_, err := app.Test(req, -1)
	require.NoError(t, err)

	for key, value := range collected {
		switch {
		case key == "Authorization" || key == "X-Repcard-Webhook-Token":
			assert.Equal(t, "[redacted]", value, key)
		case key == "User-Agent":
			assert.Equal(t, "repcard-delivery/1.0", value)
		}
	}
	assert.NotContains(t, fmt.Sprint(collected), "super-secret")
}

func TestParsePagination(t *testing.T) {
	app := fiber.New()
	var offset, limit int
	app.Get("/", func(c *fiber.Ctx) error {
		offset, limit = parsePagination(c)
		return c.SendStatus(fiber.StatusNoContent)
	})

	_, err := app.Test(httptest.NewRequest(http.MethodGet, "/?offset=-5&limit=9999", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 100, limit)

	_, err = app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 0, offset)
	assert.Equal(t, 25, limit)
}
