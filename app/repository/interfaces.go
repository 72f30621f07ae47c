package repository

import (
	"time"

	"github.com/sunfield-crm/sunfield/app/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for rep-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByRepCardUserID(repcardUserID string) (*models.User, error)
	Update(user *models.User) error
	ListByCompany(companyID uint, offset, limit int) ([]models.User, error)
	Count() (int64, error)
}

// ContactRepository defines the interface for contact-related database operations
type ContactRepository interface {
	Create(contact *models.Contact) error
	GetByID(id uint) (*models.Contact, error)
	GetByUUID(uuid string) (*models.Contact, error)
	GetByRepCardCustomerID(companyID uint, repcardCustomerID string) (*models.Contact, error)
	Update(contact *models.Contact) error
	Delete(id uint) error
	ListByCompany(companyID uint, offset, limit int) ([]models.Contact, error)
	CountByCompany(companyID uint) (int64, error)
	Search(companyID uint, query string) ([]models.Contact, error)
	StatusHistory(contactID uint) ([]models.ContactStatusHistory, error)
}

// DealRepository defines the interface for deal-related database operations
type DealRepository interface {
	Create(deal *models.Deal) error
	GetByID(id uint) (*models.Deal, error)
	GetByUUID(uuid string) (*models.Deal, error)
	Update(deal *models.Deal) error
	UpdateFields(id uint, updates map[string]interface{}) error
	Delete(id uint) error
	ListByCompany(companyID uint, stage string, offset, limit int) ([]models.Deal, error)
	CountByStage(companyID uint) (map[string]int64, error)
	AssignmentHistory(dealID uint) ([]models.DealAssignmentHistory, error)
	AppendAssignmentHistory(h *models.DealAssignmentHistory) error
}

// AppointmentRepository defines the interface for appointment-related database operations
type AppointmentRepository interface {
	Create(appt *models.Appointment) error
	GetByID(id uint) (*models.Appointment, error)
	GetByRepCardAppointmentID(repcardAppointmentID string) (*models.Appointment, error)
	Update(appt *models.Appointment) error
	ListByDeal(dealID uint) ([]models.Appointment, error)
	ListScheduledBetween(companyID uint, from, to time.Time) ([]models.Appointment, error)
}

// FinancingRepository defines the interface for financing-application operations
type FinancingRepository interface {
	Create(app *models.FinancingApplication) error
	GetByID(id uint) (*models.FinancingApplication, error)
	Update(app *models.FinancingApplication) error
	UpdateFields(id uint, updates map[string]interface{}) error
	ListByDeal(dealID uint) ([]models.FinancingApplication, error)
}

// WebhookEventRepository defines the interface for event-log audit queries
type WebhookEventRepository interface {
	GetByID(id uint) (*models.WebhookEvent, error)
	List(source, status string, offset, limit int) ([]models.WebhookEvent, error)
	Count(source, status string) (int64, error)
	ListForDeal(dealID uint) ([]models.WebhookEvent, error)
}

// ActivityRepository defines the interface for the activity audit trail
type ActivityRepository interface {
	Append(entry *models.ActivityLogEntry) error
	ListForEntity(entityType string, entityID uint, limit int) ([]models.ActivityLogEntry, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Contact      ContactRepository
	Deal         DealRepository
	Appointment  AppointmentRepository
	Financing    FinancingRepository
	WebhookEvent WebhookEventRepository
	Activity     ActivityRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Contact:      NewContactRepository(db),
		Deal:         NewDealRepository(db),
		Appointment:  NewAppointmentRepository(db),
		Financing:    NewFinancingRepository(db),
		WebhookEvent: NewWebhookEventRepository(db),
		Activity:     NewActivityRepository(db),
	}
}
