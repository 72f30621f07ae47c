package repository

import (
	"github.com/sunfield-crm/sunfield/app/models"
	"gorm.io/gorm"
)

// webhookEventRepository implements the WebhookEventRepository interface.
// Writes to the event log go through the reconcile service; this repository
// only serves the audit read paths.
type webhookEventRepository struct {
	db *gorm.DB
}

// NewWebhookEventRepository creates a new webhook event repository instance
func NewWebhookEventRepository(db *gorm.DB) WebhookEventRepository {
	return &webhookEventRepository{db: db}
}

func (r *webhookEventRepository) GetByID(id uint) (*models.WebhookEvent, error) {
	var event models.WebhookEvent
	err := r.db.First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *webhookEventRepository) List(source, status string, offset, limit int) ([]models.WebhookEvent, error) {
	var events []models.WebhookEvent
	query := r.db.Model(&models.WebhookEvent{})
	if source != "" {
		query = query.Where("source = ?", source)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Offset(offset).Limit(limit).
		Order("id DESC").
		Find(&events).Error
	return events, err
}

func (r *webhookEventRepository) Count(source, status string) (int64, error) {
	var count int64
	query := r.db.Model(&models.WebhookEvent{})
	if source != "" {
		query = query.Where("source = ?", source)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *webhookEventRepository) ListForDeal(dealID uint) ([]models.WebhookEvent, error) {
	var events []models.WebhookEvent
	err := r.db.Where("related_deal_id = ?", dealID).
		Order("id DESC").
		Find(&events).Error
	return events, err
}
