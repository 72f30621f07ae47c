package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	ROLE_CLOSER = "closer"
	ROLE_SETTER = "setter"
	ROLE_ADMIN  = "admin"

	STATUS_ACTIVE   = "active"
	STATUS_INACTIVE = "inactive"
	STATUS_DISABLED = "disabled"
)

// User is an internal sales rep (closer/setter) or admin. RepCardUserID links
// the rep to their identity on the canvassing platform; webhook payloads carry
// that id, never our own.
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	CompanyID     uint           `gorm:"not null;index" json:"company_id" validate:"required"`
	FirstName     string         `gorm:"type:varchar(100);not null" json:"first_name" validate:"required,max=100"`
	LastName      string         `gorm:"type:varchar(100)" json:"last_name" validate:"max=100"`
	Email         string         `gorm:"uniqueIndex;type:varchar(200)" json:"email" validate:"required,email,min=5,max=200"`
	Phone         string         `gorm:"type:varchar(30)" json:"phone" validate:"max=30"`
	Role          string         `gorm:"type:varchar(50);default:'closer'" json:"role" validate:"oneof=closer setter admin"`
	Status        string         `gorm:"type:varchar(50);default:'active'" json:"status" validate:"oneof=active inactive disabled"`
	Office        string         `gorm:"type:varchar(100)" json:"office" validate:"max=100"`
	RepCardUserID string         `gorm:"type:varchar(100);index" json:"repcard_user_id"`
	LastSeenAt    *time.Time     `gorm:"type:timestamp;default:null" json:"last_seen_at"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"-"`
}

func (u *User) Validate() error {
	v := validator.New()

	return v.Struct(u)
}

// FullName joins first and last name, tolerating an empty last name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
