package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Contact is a homeowner/lead. RepCardCustomerID links the contact to the
// canvassing platform's customer record; the unique index on
// (company_id, repcard_customer_id) is the concurrency primitive that makes
// webhook-driven find-or-create converge to a single row.
type Contact struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UUID             string         `gorm:"type:varchar(36);uniqueIndex" json:"uuid"`
	CompanyID        uint           `gorm:"not null;index:ux_contacts_company_repcard,unique,priority:1" json:"company_id" validate:"required"`
	RepCardCustomerID string        `gorm:"type:varchar(100);not null;default:'';index:ux_contacts_company_repcard,unique,priority:2" json:"repcard_customer_id"`
	RepCardStatus    string         `gorm:"type:varchar(100)" json:"repcard_status"`
	FirstName        string         `gorm:"type:varchar(100);not null" json:"first_name" validate:"required,max=100"`
	LastName         string         `gorm:"type:varchar(100)" json:"last_name" validate:"max=100"`
	Email            string         `gorm:"type:varchar(200);index" json:"email" validate:"omitempty,email,max=200"`
	Phone            string         `gorm:"type:varchar(30)" json:"phone" validate:"max=30"`
	Address          string         `gorm:"type:varchar(255)" json:"address" validate:"max=255"`
	City             string         `gorm:"type:varchar(100)" json:"city" validate:"max=100"`
	State            string         `gorm:"type:varchar(50)" json:"state" validate:"max=50"`
	Zip              string         `gorm:"type:varchar(20)" json:"zip" validate:"max=20"`
	Source           string         `gorm:"type:varchar(50);default:'manual'" json:"source"`
	CreatedAt        time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	Company *Company `gorm:"foreignKey:CompanyID" json:"-"`
}

func (c *Contact) Validate() error {
	v := validator.New()

	return v.Struct(c)
}

// FullName joins first and last name, tolerating an empty last name.
func (c *Contact) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

// SplitName splits a combined "First Last" name into its parts. Everything
// after the first space belongs to the last name.
func SplitName(name string) (string, string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ""
	}
	parts := strings.SplitN(name, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.TrimSpace(parts[1])
}

// ContactStatusHistory records every external status change applied to a
// contact. Append-only.
type ContactStatusHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ContactID uint      `gorm:"not null;index" json:"contact_id"`
	OldStatus string    `gorm:"type:varchar(100)" json:"old_status"`
	NewStatus string    `gorm:"type:varchar(100);not null" json:"new_status"`
	Source    string    `gorm:"type:varchar(50);default:'repcard'" json:"source"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
