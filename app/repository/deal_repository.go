package repository

import (
	"github.com/sunfield-crm/sunfield/app/models"
	"gorm.io/gorm"
)

// dealRepository implements the DealRepository interface
type dealRepository struct {
	db *gorm.DB
}

// NewDealRepository creates a new deal repository instance
func NewDealRepository(db *gorm.DB) DealRepository {
	return &dealRepository{db: db}
}

func (r *dealRepository) Create(deal *models.Deal) error {
	return r.db.Create(deal).Error
}

func (r *dealRepository) GetByID(id uint) (*models.Deal, error) {
	var deal models.Deal
	err := r.db.First(&deal, id).Error
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *dealRepository) GetByUUID(uuid string) (*models.Deal, error) {
	var deal models.Deal
	err := r.db.Where("uuid = ?", uuid).First(&deal).Error
	if err != nil {
		return nil, err
	}
	return &deal, nil
}

func (r *dealRepository) Update(deal *models.Deal) error {
	return r.db.Save(deal).Error
}

func (r *dealRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Deal{}).Where("id = ?", id).Updates(updates).Error
}

func (r *dealRepository) Delete(id uint) error {
	return r.db.Delete(&models.Deal{}, id).Error
}

func (r *dealRepository) ListByCompany(companyID uint, stage string, offset, limit int) ([]models.Deal, error) {
	var deals []models.Deal
	query := r.db.Where("company_id = ?", companyID)
	if stage != "" {
		query = query.Where("stage = ?", stage)
	}
	err := query.Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&deals).Error
	return deals, err
}

func (r *dealRepository) CountByStage(companyID uint) (map[string]int64, error) {
	type stageCount struct {
		Stage string
		Count int64
	}
	var rows []stageCount
	err := r.db.Model(&models.Deal{}).
		Select("stage, COUNT(*) as count").
		Where("company_id = ?", companyID).
		Group("stage").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Stage] = row.Count
	}
	return counts, nil
}

func (r *dealRepository) AssignmentHistory(dealID uint) ([]models.DealAssignmentHistory, error) {
	var history []models.DealAssignmentHistory
	err := r.db.Where("deal_id = ?", dealID).
		Order("created_at DESC").
		Find(&history).Error
	return history, err
}

func (r *dealRepository) AppendAssignmentHistory(h *models.DealAssignmentHistory) error {
	return r.db.Create(h).Error
}
