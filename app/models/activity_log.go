package models

import "time"

// Entity types an activity entry can attach to.
const (
	ACTIVITY_ENTITY_DEAL    = "deal"
	ACTIVITY_ENTITY_CONTACT = "contact"
)

// Well-known activity actions written by the reconciliation handlers and the
// pipeline API. Free-form actions are allowed; these are the ones we query.
const (
	ACTIVITY_APPOINTMENT_OUTCOME = "appointment_outcome"
	ACTIVITY_CLOSER_REASSIGNED   = "closer_reassigned"
	ACTIVITY_DOOR_KNOCKED        = "door_knocked"
	ACTIVITY_STATUS_CHANGED      = "status_changed"
	ACTIVITY_STAGE_CHANGED       = "stage_changed"
	ACTIVITY_DESIGN_COMPLETED    = "design_completed"
	ACTIVITY_DESIGN_REJECTED     = "design_rejected"
	ACTIVITY_FINANCING_UPDATED   = "financing_updated"
)

// ActivityLogEntry is the append-only audit trail on deals and contacts.
// Created as a side effect of every reconciliation handler; never mutated.
type ActivityLogEntry struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EntityType   string    `gorm:"type:varchar(20);not null;index:idx_activity_entity,priority:1" json:"entity_type"`
	EntityID     uint      `gorm:"not null;index:idx_activity_entity,priority:2" json:"entity_id"`
	Action       string    `gorm:"type:varchar(50);not null;index" json:"action"`
	Description  string    `gorm:"type:varchar(500)" json:"description"`
	MetadataJSON string    `gorm:"type:text" json:"metadata_json"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
