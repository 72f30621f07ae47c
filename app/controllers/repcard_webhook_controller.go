package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sunfield-crm/sunfield/app/models"
	"github.com/sunfield-crm/sunfield/internal/pkg/database"
	"github.com/sunfield-crm/sunfield/internal/pkg/reconcile"
)

// RepCard webhook handlers. Each decodes and validates the body first:
// malformed payloads are rejected with 400 before anything is written to the
// event log. Once a delivery is accepted it always leaves an audit row, which
// ends up processed or failed depending on the handler outcome.

// HandleRepCardAppointmentOutcome processes appointment-outcome deliveries.
// Security: shared-secret token required via router middleware.
func HandleRepCardAppointmentOutcome(c *fiber.Ctx) error {
	payload, err := reconcile.DecodeAppointmentPayload(c.Body())
	if err != nil {
		return badRequest(c, err.Error())
	}

	svc := reconcile.NewServiceFromDB(database.GetDB())
	event, err := svc.LogEvent(c.UserContext(), models.WEBHOOK_SOURCE_REPCARD, reconcile.EventTypeAppointmentOutcome, c.Body(), collectWebhookHeaders(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error", "message": "could not record event"})
	}

	res, err := svc.ProcessAppointmentOutcome(c.UserContext(), event, payload)
	trackDelivery(models.WEBHOOK_SOURCE_REPCARD, reconcile.EventTypeAppointmentOutcome, err)
	if err != nil {
		return reconcileErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message":        res.Message,
		"appointment_id": res.AppointmentID,
		"deal_id":        res.DealID,
	})
}

// HandleRepCardCloserUpdate processes closer-reassignment deliveries.
// Security: shared-secret token required via router middleware.
func HandleRepCardCloserUpdate(c *fiber.Ctx) error {
	payload, err := reconcile.DecodeAppointmentPayload(c.Body())
	if err != nil {
		return badRequest(c, err.Error())
	}

	svc := reconcile.NewServiceFromDB(database.GetDB())
	event, err := svc.LogEvent(c.UserContext(), models.WEBHOOK_SOURCE_REPCARD, reconcile.EventTypeCloserUpdate, c.Body(), collectWebhookHeaders(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error", "message": "could not record event"})
	}

	res, err := svc.ProcessCloserUpdate(c.UserContext(), event, payload)
	trackDelivery(models.WEBHOOK_SOURCE_REPCARD, reconcile.EventTypeCloserUpdate, err)
	if err != nil {
		return reconcileErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message": res.Message,
		"deal_id": res.DealID,
	})
}

// HandleRepCardDoorKnocked processes door-knock deliveries, creating the
// contact when it does not exist yet.
// Security: shared-secret token required via router middleware.
func HandleRepCardDoorKnocked(c *fiber.Ctx) error {
	payload, err := reconcile.DecodeContactPayload(c.Body(), false)
	if err != nil {
		return badRequest(c, err.Error())
	}

	svc := reconcile.NewServiceFromDB(database.GetDB())
	event, err := svc.LogEvent(c.UserContext(), models.WEBHOOK_SOURCE_REPCARD, reconcile.EventTypeDoorKnocked, c.Body(), collectWebhookHeaders(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error", "message": "could not record event"})
	}

	res, err := svc.ProcessDoorKnock(c.UserContext(), event, payload)
	trackDelivery(models.WEBHOOK_SOURCE_REPCARD, reconcile.EventTypeDoorKnocked, err)
	if err != nil {
		return reconcileErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    res.Message,
		"contact_id": res.ContactID,
	})
}

// HandleRepCardStatusChanged processes contact status-change deliveries.
// Security: shared-secret token required via router middleware.
func HandleRepCardStatusChanged(c *fiber.Ctx) error {
	payload, err := reconcile.DecodeContactPayload(c.Body(), true)
	if err != nil {
		return badRequest(c, err.Error())
	}

	svc := reconcile.NewServiceFromDB(database.GetDB())
	event, err := svc.LogEvent(c.UserContext(), models.WEBHOOK_SOURCE_REPCARD, reconcile.EventTypeStatusChanged, c.Body(), collectWebhookHeaders(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error", "message": "could not record event"})
	}

	res, err := svc.ProcessStatusChange(c.UserContext(), event, payload)
	trackDelivery(models.WEBHOOK_SOURCE_REPCARD, reconcile.EventTypeStatusChanged, err)
	if err != nil {
		return reconcileErrorResponse(c, err)
	}

	return c.JSON(fiber.Map{
		"message":    res.Message,
		"contact_id": res.ContactID,
	})
}
