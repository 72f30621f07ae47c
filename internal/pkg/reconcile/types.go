package reconcile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Event types recorded in the webhook event log.
const (
	EventTypeAppointmentOutcome = "appointment_outcome"
	EventTypeCloserUpdate       = "closer_update"
	EventTypeDoorKnocked        = "door_knocked"
	EventTypeStatusChanged      = "status_changed"
	EventTypeDesignCompleted    = "design_request_completed"
	EventTypeDesignRejected     = "design_request_rejected"
)

// Classification sentinels. Handlers wrap these so controllers can map errors
// onto the HTTP taxonomy (404 vs 422) without string matching.
var (
	ErrNotFound      = errors.New("not found")
	ErrUnprocessable = errors.New("unprocessable reference")
	ErrInvalidPayload = errors.New("invalid payload")
)

// ExternalID tolerates RepCard sending ids as JSON numbers or strings.
type ExternalID string

func (e *ExternalID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*e = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*e = ExternalID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*e = ExternalID(n.String())
	return nil
}

func (e ExternalID) String() string { return string(e) }

// RepCardUserRef is the embedded rep reference carried by RepCard payloads.
type RepCardUserRef struct {
	ID    ExternalID `json:"id"`
	Name  string     `json:"name"`
	Email string     `json:"email"`
}

// RepCardContactRef is the embedded customer reference on appointment
// payloads.
type RepCardContactRef struct {
	ID        ExternalID `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Address   string     `json:"address"`
	City      string     `json:"city"`
	State     string     `json:"state"`
	Zip       string     `json:"zip"`
}

// RepCardAppointmentPayload is the shape shared by the appointment-outcome
// and closer-update webhooks.
type RepCardAppointmentPayload struct {
	ID                     ExternalID         `json:"id"`
	Closer                 *RepCardUserRef    `json:"closer"`
	Contact                *RepCardContactRef `json:"contact"`
	User                   *RepCardUserRef    `json:"user"`
	AppointmentStatusTitle string             `json:"appointment_status_title"`
	AppointmentStatusID    ExternalID         `json:"appointment_status_id"`
}

// Validate applies the structural checks the handlers rely on. All four
// top-level references plus the status title must be present.
func (p *RepCardAppointmentPayload) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: empty body", ErrInvalidPayload)
	}
	if p.ID == "" {
		return fmt.Errorf("%w: missing appointment id", ErrInvalidPayload)
	}
	if p.Closer == nil || p.Closer.ID == "" {
		return fmt.Errorf("%w: missing closer", ErrInvalidPayload)
	}
	if p.Contact == nil || p.Contact.ID == "" {
		return fmt.Errorf("%w: missing contact", ErrInvalidPayload)
	}
	if p.User == nil || p.User.ID == "" {
		return fmt.Errorf("%w: missing user", ErrInvalidPayload)
	}
	if strings.TrimSpace(p.AppointmentStatusTitle) == "" {
		return fmt.Errorf("%w: missing appointment_status_title", ErrInvalidPayload)
	}
	return nil
}

// RepCardContactPayload is the customer-shaped body of the door-knocked and
// status-changed webhooks.
type RepCardContactPayload struct {
	ID        ExternalID      `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Address   string          `json:"address"`
	City      string          `json:"city"`
	State     string          `json:"state"`
	Zip       string          `json:"zip"`
	Status    string          `json:"status"`
	User      *RepCardUserRef `json:"user"`
}

// Validate checks the fields every contact-shaped webhook must carry. A
// combined name is accepted in place of firstName.
func (p *RepCardContactPayload) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: empty body", ErrInvalidPayload)
	}
	if p.ID == "" {
		return fmt.Errorf("%w: missing customer id", ErrInvalidPayload)
	}
	if strings.TrimSpace(p.FirstName) == "" && strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: missing firstName or name", ErrInvalidPayload)
	}
	return nil
}

// ValidateStatusChange additionally requires the new status value.
func (p *RepCardContactPayload) ValidateStatusChange() error {
	if err := p.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(p.Status) == "" {
		return fmt.Errorf("%w: missing status", ErrInvalidPayload)
	}
	return nil
}

// KnockedAddress joins the non-empty address parts for activity descriptions,
// defaulting to "Unknown" when the payload carries no location at all.
func (p *RepCardContactPayload) KnockedAddress() string {
	parts := make([]string, 0, 4)
	for _, s := range []string{p.Address, p.City, p.State, p.Zip} {
		if v := strings.TrimSpace(s); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return "Unknown"
	}
	return strings.Join(parts, ", ")
}

// AuroraDesignEvent is the decoded query-parameter form of the Aurora design
// webhooks. Aurora delivers these as GETs with a tight response deadline, so
// the event is validated here and processed in the background.
type AuroraDesignEvent struct {
	DesignRequestID string `json:"design_request_id"`
	Status          string `json:"status"`
	Reason          string `json:"reason,omitempty"`
}

// Validate checks the required query parameters.
func (p *AuroraDesignEvent) Validate() error {
	if p == nil || strings.TrimSpace(p.DesignRequestID) == "" {
		return fmt.Errorf("%w: missing design_request_id", ErrInvalidPayload)
	}
	if strings.TrimSpace(p.Status) == "" {
		return fmt.Errorf("%w: missing status", ErrInvalidPayload)
	}
	return nil
}

// DecodeAppointmentPayload parses and validates an appointment-shaped body.
func DecodeAppointmentPayload(body []byte) (*RepCardAppointmentPayload, error) {
	var p RepCardAppointmentPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// DecodeContactPayload parses and validates a customer-shaped body.
func DecodeContactPayload(body []byte, requireStatus bool) (*RepCardContactPayload, error) {
	var p RepCardContactPayload
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if requireStatus {
		if err := p.ValidateStatusChange(); err != nil {
			return nil, err
		}
		return &p, nil
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
