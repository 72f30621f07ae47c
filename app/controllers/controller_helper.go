package controllers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sunfield-crm/sunfield/internal/pkg/metrics/counter"
	"github.com/sunfield-crm/sunfield/internal/pkg/reconcile"
)

// trackDelivery bumps the Redis delivery counters for an accepted webhook.
// Rejected (400/401) requests are never counted, matching the event log.
func trackDelivery(source, eventType string, err error) {
	counter.AddReceived(source, eventType)
	if err != nil {
		counter.AddFailed(source, eventType)
	} else {
		counter.AddProcessed(source, eventType)
	}
}

// collectWebhookHeaders snapshots the request headers for the event log.
// Shared-secret headers are redacted so tokens never land in the database.
func collectWebhookHeaders(c *fiber.Ctx) map[string]string {
	headers := make(map[string]string)
	for key, values := range c.GetReqHeaders() {
		if len(values) == 0 {
			continue
		}
		if strings.Contains(strings.ToLower(key), "token") || strings.EqualFold(key, "Authorization") {
			headers[key] = "[redacted]"
			continue
		}
		headers[key] = values[0]
	}
	return headers
}

// reconcileErrorResponse maps a handler error onto the HTTP taxonomy.
// The event row was already marked failed by the service at this point.
func reconcileErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, reconcile.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": err.Error()})
	case errors.Is(err, reconcile.ErrUnprocessable):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "unprocessable", "message": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error", "message": "processing failed"})
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "bad_request", "message": msg})
}

// parsePagination reads offset/limit query params with sane caps.
func parsePagination(c *fiber.Ctx) (int, int) {
	offset, _ := strconv.Atoi(c.Query("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	limit, _ := strconv.Atoi(c.Query("limit", "25"))
	if limit <= 0 {
		limit = 25
	}
	if limit > 100 {
		limit = 100
	}
	return offset, limit
}
