package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Deal pipeline stages. The allowed transitions between them live in
// internal/pkg/pipeline; the model only guards enumeration membership.
const (
	STAGE_NEW_LEAD          = "new_lead"
	STAGE_APPOINTMENT_SET   = "appointment_set"
	STAGE_APPOINTMENT_SAT   = "appointment_sat"
	STAGE_PROPOSAL_SENT     = "proposal_sent"
	STAGE_SIGNED            = "signed"
	STAGE_SITE_SURVEY       = "site_survey"
	STAGE_PERMITTING        = "permitting"
	STAGE_INSTALL_SCHEDULED = "install_scheduled"
	STAGE_INSTALLED         = "installed"
	STAGE_PTO               = "pto"
	STAGE_LOST              = "lost"
	STAGE_CANCELLED         = "cancelled"
)

// Aurora design request statuses as reported by the design platform.
const (
	DESIGN_STATUS_REQUESTED = "requested"
	DESIGN_STATUS_COMPLETED = "completed"
	DESIGN_STATUS_REJECTED  = "rejected"
)

// Deal is one sales opportunity for a contact. Never hard-deleted; pipeline
// reporting relies on soft-deleted rows staying queryable.
type Deal struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	UUID                 string         `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	CompanyID            uint           `gorm:"not null;index" json:"company_id" validate:"required"`
	ContactID            uint           `gorm:"not null;index" json:"contact_id" validate:"required"`
	CloserID             *uint          `gorm:"index" json:"closer_id"`
	SetterID             *uint          `gorm:"index" json:"setter_id"`
	Office               string         `gorm:"type:varchar(100)" json:"office"`
	Stage                string         `gorm:"type:varchar(50);not null;default:'new_lead';index" json:"stage" validate:"oneof=new_lead appointment_set appointment_sat proposal_sent signed site_survey permitting install_scheduled installed pto lost cancelled"`
	StageChangedAt       *time.Time     `gorm:"type:timestamp;default:null" json:"stage_changed_at"`
	AppointmentOutcome   string         `gorm:"type:varchar(150)" json:"appointment_outcome"`
	AppointmentOutcomeID string         `gorm:"type:varchar(100)" json:"appointment_outcome_id"`
	RepCardAppointmentID string         `gorm:"type:varchar(100);index" json:"repcard_appointment_id"`
	AuroraDesignID       string         `gorm:"type:varchar(100);index" json:"aurora_design_id"`
	DesignStatus         string         `gorm:"type:varchar(50)" json:"design_status"`
	DesignRejectionReason string        `gorm:"type:varchar(255)" json:"design_rejection_reason"`
	SystemSizeKW         float64        `gorm:"type:decimal(6,2);default:0" json:"system_size_kw"`
	GrossValue           float64        `gorm:"type:decimal(12,2);default:0" json:"gross_value"`
	Notes                string         `gorm:"type:text" json:"notes"`
	CreatedAt            time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"-"`
	Contact *Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Closer  *User    `gorm:"foreignKey:CloserID" json:"closer,omitempty"`
	Setter  *User    `gorm:"foreignKey:SetterID" json:"setter,omitempty"`
}

func (d *Deal) Validate() error {
	v := validator.New()

	return v.Struct(d)
}

// Assignment roles tracked in DealAssignmentHistory.
const (
	ASSIGN_ROLE_CLOSER = "closer"
	ASSIGN_ROLE_SETTER = "setter"
	ASSIGN_ROLE_OFFICE = "office"
)

// DealAssignmentHistory records every closer/setter/office reassignment on a
// deal. Append-only; written only when the value genuinely changed.
type DealAssignmentHistory struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	DealID        uint      `gorm:"not null;index" json:"deal_id"`
	RoleChanged   string    `gorm:"type:varchar(20);not null" json:"role_changed"`
	PreviousValue string    `gorm:"type:varchar(150)" json:"previous_value"`
	NewValue      string    `gorm:"type:varchar(150)" json:"new_value"`
	ChangedBy     string    `gorm:"type:varchar(150)" json:"changed_by"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
