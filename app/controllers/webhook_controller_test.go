package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Malformed payloads must be rejected with 400 before the event log is
// touched, so these paths are exercisable without a database.

func newWebhookTestApp() *fiber.App {
	app := fiber.New()
	app.Post("/webhooks/repcard/appointment-outcome", HandleRepCardAppointmentOutcome)
	app.Post("/webhooks/repcard/closer-update", HandleRepCardCloserUpdate)
	app.Post("/webhooks/repcard/door-knocked", HandleRepCardDoorKnocked)
	app.Post("/webhooks/repcard/status-changed", HandleRepCardStatusChanged)
	app.Get("/webhooks/aurora/design-completed", HandleAuroraDesignCompleted)
	app.Get("/webhooks/aurora/design-rejected", HandleAuroraDesignRejected)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAppointmentOutcomeRejectsMalformedBody(t *testing.T) {
	app := newWebhookTestApp()

	resp := postJSON(t, app, "/webhooks/repcard/appointment-outcome", "{not json")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAppointmentOutcomeRejectsMissingFields(t *testing.T) {
	app := newWebhookTestApp()

	// missing closer and appointment status
	resp := postJSON(t, app, "/webhooks/repcard/appointment-outcome", `{"id": 123}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestCloserUpdateRejectsMissingFields(t *testing.T) {
	app := newWebhookTestApp()

	resp := postJSON(t, app, "/webhooks/repcard/closer-update", `{}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDoorKnockedRejectsContactWithoutID(t *testing.T) {
	app := newWebhookTestApp()

	resp := postJSON(t, app, "/webhooks/repcard/door-knocked", `{"firstName": "Robin"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestStatusChangedRequiresStatus(t *testing.T) {
	app := newWebhookTestApp()

	resp := postJSON(t, app, "/webhooks/repcard/status-changed", `{"id": "cust-1", "firstName": "Robin"}`)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuroraDesignCompletedRequiresDesignRequestID(t *testing.T) {
	app := newWebhookTestApp()

	req := httptest.NewRequest(http.MethodGet, "/webhooks/aurora/design-completed", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestAuroraDesignRejectedRequiresDesignRequestID(t *testing.T) {
	app := newWebhookTestApp()

	req := httptest.NewRequest(http.MethodGet, "/webhooks/aurora/design-rejected?reason=shading", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
