package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	APPT_STATUS_SCHEDULED   = "scheduled"
	APPT_STATUS_CONFIRMED   = "confirmed"
	APPT_STATUS_COMPLETED   = "completed"
	APPT_STATUS_CANCELLED   = "cancelled"
	APPT_STATUS_NO_SHOW     = "no_show"
	APPT_STATUS_RESCHEDULED = "rescheduled"
)

// Appointment mirrors a RepCard appointment. RepCardAppointmentID is unique
// so outcome webhooks can be re-delivered without creating duplicate rows.
type Appointment struct {
	ID                   uint           `gorm:"primaryKey" json:"id"`
	CompanyID            uint           `gorm:"not null;index" json:"company_id" validate:"required"`
	DealID               *uint          `gorm:"index" json:"deal_id"`
	ContactID            uint           `gorm:"not null;index" json:"contact_id" validate:"required"`
	CloserID             *uint          `gorm:"index" json:"closer_id"`
	RepCardAppointmentID string         `gorm:"type:varchar(100);uniqueIndex" json:"repcard_appointment_id"`
	Status               string         `gorm:"type:varchar(50);not null;default:'scheduled';index" json:"status" validate:"oneof=scheduled confirmed completed cancelled no_show rescheduled"`
	Outcome              string         `gorm:"type:varchar(150)" json:"outcome"`
	OutcomeID            string         `gorm:"type:varchar(100)" json:"outcome_id"`
	ScheduledFor         *time.Time     `gorm:"type:timestamp;default:null;index" json:"scheduled_for"`
	CompletedAt          *time.Time     `gorm:"type:timestamp;default:null" json:"completed_at"`
	CreatedAt            time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`

	Deal    *Deal    `gorm:"foreignKey:DealID" json:"deal,omitempty"`
	Contact *Contact `gorm:"foreignKey:ContactID" json:"contact,omitempty"`
	Closer  *User    `gorm:"foreignKey:CloserID" json:"closer,omitempty"`
}

func (a *Appointment) Validate() error {
	v := validator.New()

	return v.Struct(a)
}
