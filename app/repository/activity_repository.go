package repository

import (
	"github.com/sunfield-crm/sunfield/app/models"
	"gorm.io/gorm"
)

// activityRepository implements the ActivityRepository interface
type activityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates a new activity repository instance
func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Append(entry *models.ActivityLogEntry) error {
	return r.db.Create(entry).Error
}

func (r *activityRepository) ListForEntity(entityType string, entityID uint, limit int) ([]models.ActivityLogEntry, error) {
	var entries []models.ActivityLogEntry
	if limit <= 0 {
		limit = 50
	}
	err := r.db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("id DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
