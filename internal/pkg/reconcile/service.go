package reconcile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/sunfield-crm/sunfield/app/models"
)

// Service applies inbound webhook events to internal entities under the
// pipeline transition rules, with the webhook event log as audit trail.
type Service struct {
	repo Repository
}

// NewService creates a reconciliation service from an injected repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// NewServiceFromDB creates a reconciliation service from a GORM DB handle.
func NewServiceFromDB(db *gorm.DB) *Service {
	return NewService(NewRepository(db))
}

// Result reports what a handler touched, for the HTTP response and the event
// log cross-references.
type Result struct {
	AppointmentID *uint
	DealID        *uint
	ContactID     *uint
	Changed       bool
	Message       string
}

// LogEvent appends the audit row for an accepted delivery. Every processed
// event must have a row; when this fails the caller rejects the delivery so
// nothing runs unaudited.
func (s *Service) LogEvent(ctx context.Context, source, eventType string, payload []byte, headers map[string]string) (*models.WebhookEvent, error) {
	_ = ctx
	headersJSON := ""
	if len(headers) > 0 {
		if b, err := json.Marshal(headers); err == nil {
			headersJSON = string(b)
		}
	}
	event := &models.WebhookEvent{
		Source:      source,
		EventType:   eventType,
		PayloadJSON: string(payload),
		HeadersJSON: headersJSON,
		Status:      models.WEBHOOK_STATUS_RECEIVED,
	}
	if err := s.repo.CreateWebhookEvent(event); err != nil {
		return nil, err
	}
	return event, nil
}

// markProcessing is the linearization point: set synchronously before any
// side-effecting work begins.
func (s *Service) markProcessing(eventID uint) error {
	return s.repo.UpdateWebhookEvent(eventID, map[string]interface{}{
		"status": models.WEBHOOK_STATUS_PROCESSING,
	})
}

// MarkProcessed records the terminal success status with optional entity
// cross-references. Re-setting the same status is a harmless no-op.
func (s *Service) MarkProcessed(eventID uint, res *Result) error {
	now := time.Now()
	updates := map[string]interface{}{
		"status":        models.WEBHOOK_STATUS_PROCESSED,
		"processed_at":  &now,
		"error_message": "",
	}
	if res != nil {
		if res.ContactID != nil {
			updates["related_contact_id"] = *res.ContactID
		}
		if res.DealID != nil {
			updates["related_deal_id"] = *res.DealID
		}
	}
	return s.repo.UpdateWebhookEvent(eventID, updates)
}

// MarkFailed records the terminal failure status with the cause.
func (s *Service) MarkFailed(eventID uint, cause error) error {
	now := time.Now()
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	return s.repo.UpdateWebhookEvent(eventID, map[string]interface{}{
		"status":        models.WEBHOOK_STATUS_FAILED,
		"processed_at":  &now,
		"error_message": msg,
	})
}

// ProcessAppointmentOutcome owns the full lifecycle for an appointment-outcome
// event: processing -> apply -> processed|failed.
func (s *Service) ProcessAppointmentOutcome(ctx context.Context, event *models.WebhookEvent, p *RepCardAppointmentPayload) (*Result, error) {
	if err := s.markProcessing(event.ID); err != nil {
		return nil, err
	}
	res, err := s.applyAppointmentOutcome(ctx, p)
	if err != nil {
		_ = s.MarkFailed(event.ID, err)
		return nil, err
	}
	_ = s.MarkProcessed(event.ID, res)
	return res, nil
}

// applyAppointmentOutcome updates the appointment's status/outcome and, for a
// closed sale on a deal sitting at appointment_set, advances the deal to
// appointment_sat. That edge is the only deal-stage transition this subsystem
// owns.
func (s *Service) applyAppointmentOutcome(ctx context.Context, p *RepCardAppointmentPayload) (*Result, error) {
	_ = ctx
	appt, err := s.repo.FindAppointmentByRepCardID(p.ID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: appointment %s", ErrNotFound, p.ID)
		}
		return nil, err
	}

	res := &Result{AppointmentID: &appt.ID}

	title := strings.TrimSpace(p.AppointmentStatusTitle)
	outcomeID := p.AppointmentStatusID.String()
	newStatus := appt.Status
	if mapped, ok := MapOutcomeStatus(title); ok {
		newStatus = mapped
	}

	// Compare before writing so redelivery is a no-op.
	if appt.Status != newStatus || appt.Outcome != title || appt.OutcomeID != outcomeID {
		updates := map[string]interface{}{
			"status":     newStatus,
			"outcome":    title,
			"outcome_id": outcomeID,
		}
		if newStatus == models.APPT_STATUS_COMPLETED && appt.CompletedAt == nil {
			now := time.Now()
			updates["completed_at"] = &now
		}
		if err := s.repo.UpdateAppointment(appt.ID, updates); err != nil {
			return nil, err
		}
		res.Changed = true
	}

	if appt.DealID == nil {
		res.Message = "appointment updated"
		return res, nil
	}

	deal, err := s.repo.GetDeal(*appt.DealID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Appointment points at a vanished deal; the appointment update
			// above still stands.
			res.Message = "appointment updated, linked deal missing"
			return res, nil
		}
		return nil, err
	}
	res.DealID = &deal.ID
	res.ContactID = &deal.ContactID

	dealUpdates := map[string]interface{}{}
	if deal.AppointmentOutcome != title || deal.AppointmentOutcomeID != outcomeID {
		dealUpdates["appointment_outcome"] = title
		dealUpdates["appointment_outcome_id"] = outcomeID
	}

	advanced := false
	if deal.Stage == models.STAGE_APPOINTMENT_SET && OutcomeIndicatesSale(title) {
		now := time.Now()
		dealUpdates["stage"] = models.STAGE_APPOINTMENT_SAT
		dealUpdates["stage_changed_at"] = &now
		advanced = true
	}

	if len(dealUpdates) > 0 {
		if err := s.repo.UpdateDeal(deal.ID, dealUpdates); err != nil {
			return nil, err
		}
		res.Changed = true

		desc := fmt.Sprintf("Appointment outcome: %s", title)
		if advanced {
			desc = fmt.Sprintf("Appointment outcome: %s — deal advanced to %s", title, models.STAGE_APPOINTMENT_SAT)
		}
		if err := s.appendActivity(models.ACTIVITY_ENTITY_DEAL, deal.ID, models.ACTIVITY_APPOINTMENT_OUTCOME, desc, map[string]interface{}{
			"repcard_appointment_id": p.ID.String(),
			"outcome":                title,
			"outcome_id":             outcomeID,
			"stage_advanced":         advanced,
		}); err != nil {
			return nil, err
		}
	}

	res.Message = "appointment outcome reconciled"
	return res, nil
}

// ProcessCloserUpdate owns the full lifecycle for a closer-update event.
func (s *Service) ProcessCloserUpdate(ctx context.Context, event *models.WebhookEvent, p *RepCardAppointmentPayload) (*Result, error) {
	if err := s.markProcessing(event.ID); err != nil {
		return nil, err
	}
	res, err := s.applyCloserUpdate(ctx, p)
	if err != nil {
		_ = s.MarkFailed(event.ID, err)
		return nil, err
	}
	_ = s.MarkProcessed(event.ID, res)
	return res, nil
}

// applyCloserUpdate reassigns the closer on the appointment (best effort) and
// the deal (with assignment history). Writes happen only when the closer
// genuinely changed, which keeps redelivery from growing the history.
func (s *Service) applyCloserUpdate(ctx context.Context, p *RepCardAppointmentPayload) (*Result, error) {
	closer, err := s.ResolveUser(ctx, p.Closer.ID)
	if err != nil {
		return nil, err
	}

	res := &Result{}

	// Appointment update is best effort: unlike outcome handling, a missing
	// appointment row is not fatal here.
	appt, err := s.repo.FindAppointmentByRepCardID(p.ID.String())
	switch {
	case err == nil:
		res.AppointmentID = &appt.ID
		if appt.CloserID == nil || *appt.CloserID != closer.ID {
			if err := s.repo.UpdateAppointment(appt.ID, map[string]interface{}{"closer_id": closer.ID}); err != nil {
				return nil, err
			}
			res.Changed = true
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		// fine
	default:
		return nil, err
	}

	deal, err := s.repo.FindDealByRepCardAppointmentID(p.ID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			res.Message = "no deal for appointment, closer synced"
			return res, nil
		}
		return nil, err
	}
	res.DealID = &deal.ID
	res.ContactID = &deal.ContactID

	if deal.CloserID != nil && *deal.CloserID == closer.ID {
		res.Message = "closer unchanged"
		return res, nil
	}

	previous := ""
	if deal.CloserID != nil {
		if prev, err := s.repo.GetUser(*deal.CloserID); err == nil {
			previous = prev.FullName()
		} else if errors.Is(err, gorm.ErrRecordNotFound) {
			previous = fmt.Sprintf("user #%d", *deal.CloserID)
		} else {
			return nil, err
		}
	}

	if err := s.repo.UpdateDeal(deal.ID, map[string]interface{}{"closer_id": closer.ID}); err != nil {
		return nil, err
	}
	if err := s.repo.AppendAssignmentHistory(&models.DealAssignmentHistory{
		DealID:        deal.ID,
		RoleChanged:   models.ASSIGN_ROLE_CLOSER,
		PreviousValue: previous,
		NewValue:      closer.FullName(),
		ChangedBy:     models.WEBHOOK_SOURCE_REPCARD,
	}); err != nil {
		return nil, err
	}
	if err := s.appendActivity(models.ACTIVITY_ENTITY_DEAL, deal.ID, models.ACTIVITY_CLOSER_REASSIGNED,
		fmt.Sprintf("Closer reassigned to %s", closer.FullName()), map[string]interface{}{
			"repcard_appointment_id": p.ID.String(),
			"previous":               previous,
			"new":                    closer.FullName(),
		}); err != nil {
		return nil, err
	}

	res.Changed = true
	res.Message = "closer reassigned"
	return res, nil
}

// ProcessDoorKnock owns the full lifecycle for a door-knocked event.
func (s *Service) ProcessDoorKnock(ctx context.Context, event *models.WebhookEvent, p *RepCardContactPayload) (*Result, error) {
	if err := s.markProcessing(event.ID); err != nil {
		return nil, err
	}
	res, err := s.applyDoorKnock(ctx, p)
	if err != nil {
		_ = s.MarkFailed(event.ID, err)
		return nil, err
	}
	_ = s.MarkProcessed(event.ID, res)
	return res, nil
}

// applyDoorKnock resolves (or creates) the contact and records the knock.
func (s *Service) applyDoorKnock(ctx context.Context, p *RepCardContactPayload) (*Result, error) {
	companyID, err := s.ResolveCompany(ctx, p)
	if err != nil {
		return nil, err
	}

	contact, created, err := s.FindOrCreateContact(ctx, p, companyID)
	if err != nil {
		return nil, err
	}

	if err := s.appendActivity(models.ACTIVITY_ENTITY_CONTACT, contact.ID, models.ACTIVITY_DOOR_KNOCKED,
		fmt.Sprintf("Door knocked at %s", p.KnockedAddress()), map[string]interface{}{
			"repcard_customer_id": p.ID.String(),
			"contact_created":     created,
		}); err != nil {
		return nil, err
	}

	msg := "door knock logged"
	if created {
		msg = "contact created, door knock logged"
	}
	return &Result{ContactID: &contact.ID, Changed: true, Message: msg}, nil
}

// ProcessStatusChange owns the full lifecycle for a status-changed event.
func (s *Service) ProcessStatusChange(ctx context.Context, event *models.WebhookEvent, p *RepCardContactPayload) (*Result, error) {
	if err := s.markProcessing(event.ID); err != nil {
		return nil, err
	}
	res, err := s.applyStatusChange(ctx, p)
	if err != nil {
		_ = s.MarkFailed(event.ID, err)
		return nil, err
	}
	_ = s.MarkProcessed(event.ID, res)
	return res, nil
}

// applyStatusChange records the old/new status pair and updates the contact.
// The external status is a free-form label, so no transition table applies —
// unlike deal stages and financing statuses.
func (s *Service) applyStatusChange(ctx context.Context, p *RepCardContactPayload) (*Result, error) {
	_ = ctx
	contact, err := s.repo.FindContactByRepCardCustomerID(p.ID.String())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: contact with repcard customer id %s", ErrNotFound, p.ID)
		}
		return nil, err
	}

	res := &Result{ContactID: &contact.ID}
	newStatus := strings.TrimSpace(p.Status)
	if contact.RepCardStatus == newStatus {
		res.Message = "status unchanged"
		return res, nil
	}

	if err := s.repo.AppendContactStatusHistory(&models.ContactStatusHistory{
		ContactID: contact.ID,
		OldStatus: contact.RepCardStatus,
		NewStatus: newStatus,
		Source:    models.WEBHOOK_SOURCE_REPCARD,
	}); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateContact(contact.ID, map[string]interface{}{"repcard_status": newStatus}); err != nil {
		return nil, err
	}
	if err := s.appendActivity(models.ACTIVITY_ENTITY_CONTACT, contact.ID, models.ACTIVITY_STATUS_CHANGED,
		fmt.Sprintf("Status changed from %q to %q", contact.RepCardStatus, newStatus), map[string]interface{}{
			"repcard_customer_id": p.ID.String(),
			"old_status":          contact.RepCardStatus,
			"new_status":          newStatus,
		}); err != nil {
		return nil, err
	}

	res.Changed = true
	res.Message = "status updated"
	return res, nil
}

// ProcessDesignEvent owns the full lifecycle for an Aurora design event. It
// runs in the background after the webhook already answered 200, so failures
// only ever land in the event log.
func (s *Service) ProcessDesignEvent(ctx context.Context, eventID uint, p *AuroraDesignEvent) (*Result, error) {
	if err := s.markProcessing(eventID); err != nil {
		return nil, err
	}
	res, err := s.applyDesignEvent(ctx, p)
	if err != nil {
		_ = s.MarkFailed(eventID, err)
		return nil, err
	}
	_ = s.MarkProcessed(eventID, res)
	return res, nil
}

func (s *Service) applyDesignEvent(ctx context.Context, p *AuroraDesignEvent) (*Result, error) {
	_ = ctx
	deal, err := s.repo.FindDealByAuroraDesignID(p.DesignRequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: deal with aurora design id %s", ErrNotFound, p.DesignRequestID)
		}
		return nil, err
	}

	res := &Result{DealID: &deal.ID, ContactID: &deal.ContactID}

	var newStatus, action, desc string
	switch strings.ToLower(strings.TrimSpace(p.Status)) {
	case models.DESIGN_STATUS_REJECTED:
		newStatus = models.DESIGN_STATUS_REJECTED
		action = models.ACTIVITY_DESIGN_REJECTED
		desc = "Design request rejected"
		if p.Reason != "" {
			desc = fmt.Sprintf("Design request rejected: %s", p.Reason)
		}
	default:
		newStatus = models.DESIGN_STATUS_COMPLETED
		action = models.ACTIVITY_DESIGN_COMPLETED
		desc = "Design request completed"
	}

	if deal.DesignStatus == newStatus && deal.DesignRejectionReason == strings.TrimSpace(p.Reason) {
		res.Message = "design status unchanged"
		return res, nil
	}

	updates := map[string]interface{}{"design_status": newStatus}
	if newStatus == models.DESIGN_STATUS_REJECTED {
		updates["design_rejection_reason"] = strings.TrimSpace(p.Reason)
	}
	if err := s.repo.UpdateDeal(deal.ID, updates); err != nil {
		return nil, err
	}
	if err := s.appendActivity(models.ACTIVITY_ENTITY_DEAL, deal.ID, action, desc, map[string]interface{}{
		"aurora_design_id": p.DesignRequestID,
		"status":           newStatus,
		"reason":           strings.TrimSpace(p.Reason),
	}); err != nil {
		return nil, err
	}

	res.Changed = true
	res.Message = "design status reconciled"
	return res, nil
}

func (s *Service) appendActivity(entityType string, entityID uint, action, description string, metadata map[string]interface{}) error {
	metadataJSON := ""
	if len(metadata) > 0 {
		if b, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(b)
		}
	}
	return s.repo.AppendActivity(&models.ActivityLogEntry{
		EntityType:   entityType,
		EntityID:     entityID,
		Action:       action,
		Description:  description,
		MetadataJSON: metadataJSON,
	})
}
