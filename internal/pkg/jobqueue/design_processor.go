package jobqueue

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"

	"github.com/sunfield-crm/sunfield/app/models"
	"github.com/sunfield-crm/sunfield/internal/pkg/database"
	"github.com/sunfield-crm/sunfield/internal/pkg/metrics/counter"
	"github.com/sunfield-crm/sunfield/internal/pkg/reconcile"
)

// processAuroraDesignJob reconciles a queued Aurora design event. The webhook
// endpoint already answered 200, so every failure here has exactly one place
// to land: the webhook event log. Classification errors (unknown design id,
// bad payload) are terminal and must not burn retries; only infrastructure
// errors requeue.
func (q *Queue) processAuroraDesignJob(ctx context.Context, job *Job) error {
	payload, err := AuroraDesignJobPayloadFromMap(job.Payload)
	if err != nil {
		return fmt.Errorf("invalid aurora design payload: %w", err)
	}

	svc := reconcile.NewServiceFromDB(database.GetDB())
	event := &reconcile.AuroraDesignEvent{
		DesignRequestID: payload.DesignRequestID,
		Status:          payload.Status,
		Reason:          payload.Reason,
	}

	eventType := reconcile.EventTypeDesignCompleted
	if payload.Status == models.DESIGN_STATUS_REJECTED {
		eventType = reconcile.EventTypeDesignRejected
	}

	_, err = svc.ProcessDesignEvent(ctx, payload.EventID, event)
	if err != nil {
		if errors.Is(err, reconcile.ErrNotFound) || errors.Is(err, reconcile.ErrInvalidPayload) {
			// Already recorded as failed on the event row; retrying cannot
			// change the outcome.
			counter.AddFailed(models.WEBHOOK_SOURCE_AURORA, eventType)
			log.Warnf("[JobQueue] Aurora design event %d not reconcilable: %v", payload.EventID, err)
			return nil
		}
		return err
	}
	counter.AddProcessed(models.WEBHOOK_SOURCE_AURORA, eventType)
	return nil
}
