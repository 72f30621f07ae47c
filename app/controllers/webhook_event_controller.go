package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sunfield-crm/sunfield/app/models"
	"github.com/sunfield-crm/sunfield/app/repository"
)

var webhookEventStatuses = map[string]bool{
	models.WEBHOOK_STATUS_RECEIVED:   true,
	models.WEBHOOK_STATUS_PROCESSING: true,
	models.WEBHOOK_STATUS_PROCESSED:  true,
	models.WEBHOOK_STATUS_FAILED:     true,
}

// HandleListWebhookEvents returns the event-log audit listing, newest first,
// optionally filtered by source and status.
// Security: API token required via router middleware.
func HandleListWebhookEvents(c *fiber.Ctx) error {
	source := strings.ToLower(strings.TrimSpace(c.Query("source")))
	if source != "" && source != models.WEBHOOK_SOURCE_REPCARD && source != models.WEBHOOK_SOURCE_AURORA {
		return badRequest(c, "unknown source: "+source)
	}
	status := strings.ToLower(strings.TrimSpace(c.Query("status")))
	if status != "" && !webhookEventStatuses[status] {
		return badRequest(c, "unknown status: "+status)
	}

	offset, limit := parsePagination(c)
	eventRepo := repository.GetGlobalFactory().GetWebhookEventRepository()

	events, err := eventRepo.List(source, status, offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error", "message": "could not list events"})
	}
	total, _ := eventRepo.Count(source, status)

	return c.JSON(fiber.Map{
		"events": events,
		"total":  total,
		"offset": offset,
		"limit":  limit,
	})
}

// HandleGetWebhookEvent returns a single event-log row including its stored
// payload, for debugging a failed delivery.
// Security: API token required via router middleware.
func HandleGetWebhookEvent(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return badRequest(c, "id missing")
	}

	event, err := repository.GetGlobalFactory().GetWebhookEventRepository().GetByID(uint(id))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "event not found"})
	}

	return c.JSON(fiber.Map{"event": event})
}
