package models

import (
	"time"

	"gorm.io/gorm"
)

// Financing application statuses. Legal transitions between them are defined
// in internal/pkg/pipeline; denied/expired/cancelled/funded are terminal.
const (
	FIN_STATUS_DRAFT                  = "draft"
	FIN_STATUS_SUBMITTED              = "submitted"
	FIN_STATUS_PENDING                = "pending"
	FIN_STATUS_APPROVED               = "approved"
	FIN_STATUS_CONDITIONALLY_APPROVED = "conditionally_approved"
	FIN_STATUS_STIPS_PENDING          = "stips_pending"
	FIN_STATUS_STIPS_CLEARED          = "stips_cleared"
	FIN_STATUS_FUNDED                 = "funded"
	FIN_STATUS_DENIED                 = "denied"
	FIN_STATUS_EXPIRED                = "expired"
	FIN_STATUS_CANCELLED              = "cancelled"
)

// FinancingApplication tracks a lender application for a deal.
type FinancingApplication struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	DealID          uint           `gorm:"not null;index" json:"deal_id"`
	Lender          string         `gorm:"type:varchar(150);not null" json:"lender"`
	Status          string         `gorm:"type:varchar(50);not null;default:'draft';index" json:"status"`
	AmountRequested float64        `gorm:"type:decimal(12,2);default:0" json:"amount_requested"`
	AmountApproved  float64        `gorm:"type:decimal(12,2);default:0" json:"amount_approved"`
	TermMonths      int            `gorm:"default:0" json:"term_months"`
	RateBps         int            `gorm:"default:0" json:"rate_bps"`
	SubmittedAt     *time.Time     `gorm:"type:timestamp;default:null" json:"submitted_at"`
	DecidedAt       *time.Time     `gorm:"type:timestamp;default:null" json:"decided_at"`
	CreatedAt       time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	Deal *Deal `gorm:"foreignKey:DealID" json:"-"`
}
