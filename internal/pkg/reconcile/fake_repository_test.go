package reconcile

import (
	"time"

	"gorm.io/gorm"

	"github.com/sunfield-crm/sunfield/app/models"
)

// fakeRepository is an in-memory Repository for handler tests.
type fakeRepository struct {
	events        map[uint]*models.WebhookEvent
	users         map[uint]*models.User
	contacts      map[uint]*models.Contact
	appointments  map[uint]*models.Appointment
	deals         map[uint]*models.Deal
	activities    []models.ActivityLogEntry
	assignments   []models.DealAssignmentHistory
	statusHistory []models.ContactStatusHistory
	nextID        uint

	failCreateEvent bool
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		events:       map[uint]*models.WebhookEvent{},
		users:        map[uint]*models.User{},
		contacts:     map[uint]*models.Contact{},
		appointments: map[uint]*models.Appointment{},
		deals:        map[uint]*models.Deal{},
	}
}

func (f *fakeRepository) id() uint {
	f.nextID++
	return f.nextID
}

func (f *fakeRepository) addUser(u models.User) *models.User {
	u.ID = f.id()
	f.users[u.ID] = &u
	return &u
}

func (f *fakeRepository) addContact(c models.Contact) *models.Contact {
	c.ID = f.id()
	f.contacts[c.ID] = &c
	return &c
}

func (f *fakeRepository) addAppointment(a models.Appointment) *models.Appointment {
	a.ID = f.id()
	f.appointments[a.ID] = &a
	return &a
}

func (f *fakeRepository) addDeal(d models.Deal) *models.Deal {
	d.ID = f.id()
	f.deals[d.ID] = &d
	return &d
}

func (f *fakeRepository) CreateWebhookEvent(event *models.WebhookEvent) error {
	if f.failCreateEvent {
		return gorm.ErrInvalidDB
	}
	event.ID = f.id()
	event.CreatedAt = time.Now()
	f.events[event.ID] = event
	return nil
}

func (f *fakeRepository) UpdateWebhookEvent(id uint, updates map[string]interface{}) error {
	e, ok := f.events[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range updates {
		switch k {
		case "status":
			e.Status = v.(string)
		case "error_message":
			e.ErrorMessage = v.(string)
		case "processed_at":
			e.ProcessedAt = v.(*time.Time)
		case "related_contact_id":
			cid := v.(uint)
			e.RelatedContactID = &cid
		case "related_deal_id":
			did := v.(uint)
			e.RelatedDealID = &did
		}
	}
	return nil
}

func (f *fakeRepository) GetWebhookEvent(id uint) (*models.WebhookEvent, error) {
	if e, ok := f.events[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) FindUserByRepCardID(repcardUserID string) (*models.User, error) {
	for _, u := range f.users {
		if u.RepCardUserID == repcardUserID {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) GetUser(id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) FindContactByRepCardCustomerID(repcardCustomerID string) (*models.Contact, error) {
	var best *models.Contact
	for _, c := range f.contacts {
		if c.RepCardCustomerID == repcardCustomerID {
			if best == nil || c.ID < best.ID {
				best = c
			}
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return best, nil
}

func (f *fakeRepository) FindContactByCompanyAndRepCardID(companyID uint, repcardCustomerID string) (*models.Contact, error) {
	for _, c := range f.contacts {
		if c.CompanyID == companyID && c.RepCardCustomerID == repcardCustomerID {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) CreateContactIfNotExists(contact *models.Contact) (bool, *models.Contact, error) {
	if existing, err := f.FindContactByCompanyAndRepCardID(contact.CompanyID, contact.RepCardCustomerID); err == nil {
		return false, existing, nil
	}
	stored := f.addContact(*contact)
	return true, stored, nil
}

func (f *fakeRepository) UpdateContact(id uint, updates map[string]interface{}) error {
	c, ok := f.contacts[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range updates {
		switch k {
		case "repcard_status":
			c.RepCardStatus = v.(string)
		case "first_name":
			c.FirstName = v.(string)
		case "last_name":
			c.LastName = v.(string)
		}
	}
	return nil
}

func (f *fakeRepository) FindAppointmentByRepCardID(repcardAppointmentID string) (*models.Appointment, error) {
	for _, a := range f.appointments {
		if a.RepCardAppointmentID == repcardAppointmentID {
			return a, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) UpdateAppointment(id uint, updates map[string]interface{}) error {
	a, ok := f.appointments[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range updates {
		switch k {
		case "status":
			a.Status = v.(string)
		case "outcome":
			a.Outcome = v.(string)
		case "outcome_id":
			a.OutcomeID = v.(string)
		case "completed_at":
			a.CompletedAt = v.(*time.Time)
		case "closer_id":
			cid := v.(uint)
			a.CloserID = &cid
		}
	}
	return nil
}

func (f *fakeRepository) GetDeal(id uint) (*models.Deal, error) {
	if d, ok := f.deals[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) FindDealByRepCardAppointmentID(repcardAppointmentID string) (*models.Deal, error) {
	var best *models.Deal
	for _, d := range f.deals {
		if d.RepCardAppointmentID == repcardAppointmentID {
			if best == nil || d.ID > best.ID {
				best = d
			}
		}
	}
	if best == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return best, nil
}

func (f *fakeRepository) FindDealByAuroraDesignID(auroraDesignID string) (*models.Deal, error) {
	for _, d := range f.deals {
		if d.AuroraDesignID == auroraDesignID {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) UpdateDeal(id uint, updates map[string]interface{}) error {
	d, ok := f.deals[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	for k, v := range updates {
		switch k {
		case "stage":
			d.Stage = v.(string)
		case "stage_changed_at":
			d.StageChangedAt = v.(*time.Time)
		case "appointment_outcome":
			d.AppointmentOutcome = v.(string)
		case "appointment_outcome_id":
			d.AppointmentOutcomeID = v.(string)
		case "closer_id":
			cid := v.(uint)
			d.CloserID = &cid
		case "design_status":
			d.DesignStatus = v.(string)
		case "design_rejection_reason":
			d.DesignRejectionReason = v.(string)
		}
	}
	return nil
}

func (f *fakeRepository) AppendActivity(entry *models.ActivityLogEntry) error {
	entry.ID = f.id()
	f.activities = append(f.activities, *entry)
	return nil
}

func (f *fakeRepository) AppendAssignmentHistory(h *models.DealAssignmentHistory) error {
	h.ID = f.id()
	f.assignments = append(f.assignments, *h)
	return nil
}

func (f *fakeRepository) AppendContactStatusHistory(h *models.ContactStatusHistory) error {
	h.ID = f.id()
	f.statusHistory = append(f.statusHistory, *h)
	return nil
}
