package repository

import (
	"time"

	"github.com/sunfield-crm/sunfield/app/models"
	"gorm.io/gorm"
)

// appointmentRepository implements the AppointmentRepository interface
type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository instance
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(appt *models.Appointment) error {
	return r.db.Create(appt).Error
}

func (r *appointmentRepository) GetByID(id uint) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.First(&appt, id).Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) GetByRepCardAppointmentID(repcardAppointmentID string) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.Where("repcard_appointment_id = ?", repcardAppointmentID).First(&appt).Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func (r *appointmentRepository) Update(appt *models.Appointment) error {
	return r.db.Save(appt).Error
}

func (r *appointmentRepository) ListByDeal(dealID uint) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.Where("deal_id = ?", dealID).
		Order("scheduled_for DESC").
		Find(&appts).Error
	return appts, err
}

func (r *appointmentRepository) ListScheduledBetween(companyID uint, from, to time.Time) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := r.db.Where("company_id = ? AND scheduled_for >= ? AND scheduled_for < ?", companyID, from, to).
		Order("scheduled_for ASC").
		Find(&appts).Error
	return appts, err
}
