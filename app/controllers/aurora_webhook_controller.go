package controllers

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/sunfield-crm/sunfield/app/models"
	"github.com/sunfield-crm/sunfield/internal/pkg/database"
	"github.com/sunfield-crm/sunfield/internal/pkg/jobqueue"
	"github.com/sunfield-crm/sunfield/internal/pkg/metrics/counter"
	"github.com/sunfield-crm/sunfield/internal/pkg/reconcile"
)

// Aurora design webhooks arrive as GET requests with query parameters.
// The handlers log the event and acknowledge immediately; the actual deal
// update runs on the job queue so a slow database never blocks Aurora's
// delivery loop. The job carries its own copy of the parameters because the
// request context is gone by the time a worker picks it up.

// HandleAuroraDesignCompleted acknowledges a completed design request.
// Security: shared-secret token required via router middleware.
func HandleAuroraDesignCompleted(c *fiber.Ctx) error {
	return handleAuroraDesignEvent(c, models.DESIGN_STATUS_COMPLETED, reconcile.EventTypeDesignCompleted)
}

// HandleAuroraDesignRejected acknowledges a rejected design request.
// Security: shared-secret token required via router middleware.
func HandleAuroraDesignRejected(c *fiber.Ctx) error {
	return handleAuroraDesignEvent(c, models.DESIGN_STATUS_REJECTED, reconcile.EventTypeDesignRejected)
}

func handleAuroraDesignEvent(c *fiber.Ctx, status, eventType string) error {
	params := &reconcile.AuroraDesignEvent{
		DesignRequestID: strings.TrimSpace(c.Query("design_request_id")),
		Status:          status,
		Reason:          strings.TrimSpace(c.Query("reason")),
	}
	if err := params.Validate(); err != nil {
		return badRequest(c, err.Error())
	}

	// GET carries no body; persist the query parameters as the payload.
	payload, _ := json.Marshal(params)

	svc := reconcile.NewServiceFromDB(database.GetDB())
	event, err := svc.LogEvent(c.UserContext(), models.WEBHOOK_SOURCE_AURORA, eventType, payload, collectWebhookHeaders(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error", "message": "could not record event"})
	}

	job, err := jobqueue.EnqueueAuroraDesignSync(jobqueue.AuroraDesignJobPayload{
		EventID:         event.ID,
		DesignRequestID: params.DesignRequestID,
		Status:          params.Status,
		Reason:          params.Reason,
	})
	if err != nil {
		log.Errorf("[Aurora] Failed to enqueue design sync for event %d: %v", event.ID, err)
		_ = svc.MarkFailed(event.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error", "message": "could not queue event"})
	}

	counter.AddReceived(models.WEBHOOK_SOURCE_AURORA, eventType)
	log.Infof("[Aurora] Queued design sync job %s for request %s", job.ID, params.DesignRequestID)
	return c.JSON(fiber.Map{"received": true})
}
