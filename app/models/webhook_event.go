package models

import "time"

// Webhook sources.
const (
	WEBHOOK_SOURCE_REPCARD = "repcard"
	WEBHOOK_SOURCE_AURORA  = "aurora"
)

// Webhook event processing statuses. received and processing are transient;
// processed and failed are terminal and set exactly once per event.
const (
	WEBHOOK_STATUS_RECEIVED   = "received"
	WEBHOOK_STATUS_PROCESSING = "processing"
	WEBHOOK_STATUS_PROCESSED  = "processed"
	WEBHOOK_STATUS_FAILED     = "failed"
)

// WebhookEvent is the append-only audit record for every accepted inbound
// delivery. There is deliberately no uniqueness constraint on an external
// event id: redelivered events get their own rows and the handlers converge
// by comparing current state before writing.
type WebhookEvent struct {
	ID               uint       `gorm:"primaryKey" json:"id"`
	Source           string     `gorm:"type:varchar(20);not null;index" json:"source"`
	EventType        string     `gorm:"type:varchar(100);not null;index" json:"event_type"`
	PayloadJSON      string     `gorm:"type:longtext;not null" json:"payload_json"`
	HeadersJSON      string     `gorm:"type:text" json:"headers_json"`
	Status           string     `gorm:"type:varchar(20);not null;default:'received';index" json:"status"`
	ErrorMessage     string     `gorm:"type:text" json:"error_message"`
	RelatedContactID *uint      `gorm:"index" json:"related_contact_id,omitempty"`
	RelatedDealID    *uint      `gorm:"index" json:"related_deal_id,omitempty"`
	ProcessedAt      *time.Time `gorm:"type:timestamp;default:null" json:"processed_at,omitempty"`
	CreatedAt        time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// IsTerminal reports whether the event has reached a final processing status.
func (e *WebhookEvent) IsTerminal() bool {
	return e.Status == WEBHOOK_STATUS_PROCESSED || e.Status == WEBHOOK_STATUS_FAILED
}
