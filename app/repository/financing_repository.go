package repository

import (
	"github.com/sunfield-crm/sunfield/app/models"
	"gorm.io/gorm"
)

// financingRepository implements the FinancingRepository interface
type financingRepository struct {
	db *gorm.DB
}

// NewFinancingRepository creates a new financing repository instance
func NewFinancingRepository(db *gorm.DB) FinancingRepository {
	return &financingRepository{db: db}
}

func (r *financingRepository) Create(app *models.FinancingApplication) error {
	return r.db.Create(app).Error
}

func (r *financingRepository) GetByID(id uint) (*models.FinancingApplication, error) {
	var app models.FinancingApplication
	err := r.db.First(&app, id).Error
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *financingRepository) Update(app *models.FinancingApplication) error {
	return r.db.Save(app).Error
}

func (r *financingRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.FinancingApplication{}).Where("id = ?", id).Updates(updates).Error
}

func (r *financingRepository) ListByDeal(dealID uint) ([]models.FinancingApplication, error) {
	var apps []models.FinancingApplication
	err := r.db.Where("deal_id = ?", dealID).
		Order("created_at DESC").
		Find(&apps).Error
	return apps, err
}
