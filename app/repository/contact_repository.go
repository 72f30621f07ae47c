package repository

import (
	"strings"

	"github.com/sunfield-crm/sunfield/app/models"
	"gorm.io/gorm"
)

// contactRepository implements the ContactRepository interface
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository creates a new contact repository instance
func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(contact *models.Contact) error {
	return r.db.Create(contact).Error
}

func (r *contactRepository) GetByID(id uint) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.First(&contact, id).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) GetByUUID(uuid string) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.Where("uuid = ?", uuid).First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) GetByRepCardCustomerID(companyID uint, repcardCustomerID string) (*models.Contact, error) {
	var contact models.Contact
	err := r.db.Where("company_id = ? AND repcard_customer_id = ?", companyID, repcardCustomerID).
		First(&contact).Error
	if err != nil {
		return nil, err
	}
	return &contact, nil
}

func (r *contactRepository) Update(contact *models.Contact) error {
	return r.db.Save(contact).Error
}

func (r *contactRepository) Delete(id uint) error {
	return r.db.Delete(&models.Contact{}, id).Error
}

func (r *contactRepository) ListByCompany(companyID uint, offset, limit int) ([]models.Contact, error) {
	var contacts []models.Contact
	err := r.db.Where("company_id = ?", companyID).
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&contacts).Error
	return contacts, err
}

func (r *contactRepository) CountByCompany(companyID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Contact{}).Where("company_id = ?", companyID).Count(&count).Error
	return count, err
}

func (r *contactRepository) Search(companyID uint, query string) ([]models.Contact, error) {
	var contacts []models.Contact
	like := "%" + strings.TrimSpace(query) + "%"
	err := r.db.Where("company_id = ?", companyID).
		Where("first_name LIKE ? OR last_name LIKE ? OR email LIKE ? OR address LIKE ?", like, like, like, like).
		Limit(50).
		Find(&contacts).Error
	return contacts, err
}

func (r *contactRepository) StatusHistory(contactID uint) ([]models.ContactStatusHistory, error) {
	var history []models.ContactStatusHistory
	err := r.db.Where("contact_id = ?", contactID).
		Order("created_at DESC").
		Find(&history).Error
	return history, err
}
