package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sunfield-crm/sunfield/app/models"
)

// ResolveUser maps a RepCard user id to an internal rep. A nil result with
// ErrUnprocessable means the external identity is unknown here and the event
// cannot be attributed to a company.
func (s *Service) ResolveUser(ctx context.Context, repcardUserID ExternalID) (*models.User, error) {
	_ = ctx
	id := strings.TrimSpace(repcardUserID.String())
	if id == "" {
		return nil, fmt.Errorf("%w: empty repcard user id", ErrUnprocessable)
	}
	user, err := s.repo.FindUserByRepCardID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown repcard user %s", ErrUnprocessable, id)
		}
		return nil, err
	}
	return user, nil
}

// ResolveCompany determines which company an inbound contact payload belongs
// to. Attribution order: the payload's embedded user reference, then an
// existing contact carrying the same external customer id. With neither we
// refuse to guess.
func (s *Service) ResolveCompany(ctx context.Context, p *RepCardContactPayload) (uint, error) {
	if p.User != nil && p.User.ID != "" {
		user, err := s.ResolveUser(ctx, p.User.ID)
		if err == nil {
			return user.CompanyID, nil
		}
		if !errors.Is(err, ErrUnprocessable) {
			return 0, err
		}
		// Unknown rep: fall through to the contact lookup.
	}

	contact, err := s.repo.FindContactByRepCardCustomerID(p.ID.String())
	if err == nil {
		return contact.CompanyID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	return 0, fmt.Errorf("%w: cannot determine company for customer %s", ErrUnprocessable, p.ID)
}

// FindOrCreateContact resolves the payload's customer to a contact row within
// the company, creating one when absent. Creation goes through an insert
// guarded by the unique (company_id, repcard_customer_id) index, so
// concurrent deliveries for the same customer converge to a single row.
func (s *Service) FindOrCreateContact(ctx context.Context, p *RepCardContactPayload, companyID uint) (*models.Contact, bool, error) {
	_ = ctx
	existing, err := s.repo.FindContactByCompanyAndRepCardID(companyID, p.ID.String())
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	firstName := strings.TrimSpace(p.FirstName)
	lastName := strings.TrimSpace(p.LastName)
	if firstName == "" {
		firstName, lastName = models.SplitName(p.Name)
	}

	contact := &models.Contact{
		UUID:              uuid.New().String(),
		CompanyID:         companyID,
		RepCardCustomerID: p.ID.String(),
		RepCardStatus:     strings.TrimSpace(p.Status),
		FirstName:         firstName,
		LastName:          lastName,
		Email:             strings.TrimSpace(p.Email),
		Phone:             strings.TrimSpace(p.Phone),
		Address:           strings.TrimSpace(p.Address),
		City:              strings.TrimSpace(p.City),
		State:             strings.TrimSpace(p.State),
		Zip:               strings.TrimSpace(p.Zip),
		Source:            models.WEBHOOK_SOURCE_REPCARD,
	}
	created, stored, err := s.repo.CreateContactIfNotExists(contact)
	if err != nil {
		return nil, false, err
	}
	return stored, created, nil
}
