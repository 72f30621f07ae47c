package reconcile

import (
	"github.com/sunfield-crm/sunfield/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides the DB operations used by the reconciliation service.
type Repository interface {
	CreateWebhookEvent(event *models.WebhookEvent) error
	UpdateWebhookEvent(id uint, updates map[string]interface{}) error
	GetWebhookEvent(id uint) (*models.WebhookEvent, error)

	FindUserByRepCardID(repcardUserID string) (*models.User, error)
	GetUser(id uint) (*models.User, error)

	FindContactByRepCardCustomerID(repcardCustomerID string) (*models.Contact, error)
	FindContactByCompanyAndRepCardID(companyID uint, repcardCustomerID string) (*models.Contact, error)
	CreateContactIfNotExists(contact *models.Contact) (bool, *models.Contact, error)
	UpdateContact(id uint, updates map[string]interface{}) error

	FindAppointmentByRepCardID(repcardAppointmentID string) (*models.Appointment, error)
	UpdateAppointment(id uint, updates map[string]interface{}) error

	GetDeal(id uint) (*models.Deal, error)
	FindDealByRepCardAppointmentID(repcardAppointmentID string) (*models.Deal, error)
	FindDealByAuroraDesignID(auroraDesignID string) (*models.Deal, error)
	UpdateDeal(id uint, updates map[string]interface{}) error

	AppendActivity(entry *models.ActivityLogEntry) error
	AppendAssignmentHistory(h *models.DealAssignmentHistory) error
	AppendContactStatusHistory(h *models.ContactStatusHistory) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a reconciliation repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateWebhookEvent(event *models.WebhookEvent) error {
	return r.db.Create(event).Error
}

func (r *gormRepository) UpdateWebhookEvent(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.WebhookEvent{}).Where("id = ?", id).Updates(updates).Error
}

func (r *gormRepository) GetWebhookEvent(id uint) (*models.WebhookEvent, error) {
	var event models.WebhookEvent
	if err := r.db.First(&event, id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *gormRepository) FindUserByRepCardID(repcardUserID string) (*models.User, error) {
	var user models.User
	err := r.db.Where("repcard_user_id = ?", repcardUserID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormRepository) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormRepository) FindContactByRepCardCustomerID(repcardCustomerID string) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.Where("repcard_customer_id = ?", repcardCustomerID).
		Order("id ASC").
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *gormRepository) FindContactByCompanyAndRepCardID(companyID uint, repcardCustomerID string) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.Where("company_id = ? AND repcard_customer_id = ?", companyID, repcardCustomerID).
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

// CreateContactIfNotExists inserts the contact unless a row already holds the
// same (company_id, repcard_customer_id) pair. The unique index makes this
// race-safe: two concurrent resolutions converge to one row, and the stored
// row is re-read so callers always see the winner.
func (r *gormRepository) CreateContactIfNotExists(contact *models.Contact) (bool, *models.Contact, error) {
	tx := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "company_id"},
			{Name: "repcard_customer_id"},
		},
		DoNothing: true,
	}).Create(contact)
	if tx.Error != nil {
		return false, nil, tx.Error
	}

	created := tx.RowsAffected > 0
	var stored models.Contact
	if err := r.db.Where("company_id = ? AND repcard_customer_id = ?", contact.CompanyID, contact.RepCardCustomerID).
		First(&stored).Error; err != nil {
		return false, nil, err
	}
	return created, &stored, nil
}

func (r *gormRepository) UpdateContact(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Contact{}).Where("id = ?", id).Updates(updates).Error
}

func (r *gormRepository) FindAppointmentByRepCardID(repcardAppointmentID string) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.Where("repcard_appointment_id = ?", repcardAppointmentID).First(&appt).Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *gormRepository) UpdateAppointment(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Appointment{}).Where("id = ?", id).Updates(updates).Error
}

func (r *gormRepository) GetDeal(id uint) (*models.Deal, error) {
	var deal models.Deal
	if err := r.db.First(&deal, id).Error; err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *gormRepository) FindDealByRepCardAppointmentID(repcardAppointmentID string) (*models.Deal, error) {
	var deal models.Deal
	err := r.db.Where("repcard_appointment_id = ?", repcardAppointmentID).
		Order("id DESC").
		First(&deal).Error
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *gormRepository) FindDealByAuroraDesignID(auroraDesignID string) (*models.Deal, error) {
	var deal models.Deal
	err := r.db.Where("aurora_design_id = ?", auroraDesignID).First(&deal).Error
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *gormRepository) UpdateDeal(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Deal{}).Where("id = ?", id).Updates(updates).Error
}

func (r *gormRepository) AppendActivity(entry *models.ActivityLogEntry) error {
	return r.db.Create(entry).Error
}

func (r *gormRepository) AppendAssignmentHistory(h *models.DealAssignmentHistory) error {
	return r.db.Create(h).Error
}

func (r *gormRepository) AppendContactStatusHistory(h *models.ContactStatusHistory) error {
	return r.db.Create(h).Error
}
