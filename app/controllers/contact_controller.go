package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sunfield-crm/sunfield/app/models"
	"github.com/sunfield-crm/sunfield/app/repository"
)

// HandleListContacts returns contacts for a company; a `q` parameter switches
// to a name/email/address search.
// Security: API token required via router middleware.
func HandleListContacts(c *fiber.Ctx) error {
	companyID, err := strconv.ParseUint(c.Query("company_id"), 10, 32)
	if err != nil || companyID == 0 {
		return badRequest(c, "company_id missing")
	}

	contactRepo := repository.GetGlobalFactory().GetContactRepository()

	if q := strings.TrimSpace(c.Query("q")); q != "" {
		contacts, err := contactRepo.Search(uint(companyID), q)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error", "message": "search failed"})
		}
		return c.JSON(fiber.Map{"contacts": contacts})
	}

	offset, limit := parsePagination(c)
	contacts, err := contactRepo.ListByCompany(uint(companyID), offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error", "message": "could not list contacts"})
	}
	total, _ := contactRepo.CountByCompany(uint(companyID))

	return c.JSON(fiber.Map{
		"contacts": contacts,
		"total":    total,
		"offset":   offset,
		"limit":    limit,
	})
}

// HandleGetContact returns one contact with its status history and activity.
// Security: API token required via router middleware.
func HandleGetContact(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	if uuid == "" {
		return badRequest(c, "uuid missing")
	}

	factory := repository.GetGlobalFactory()
	contact, err := factory.GetContactRepository().GetByUUID(uuid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "contact not found"})
	}

	history, _ := factory.GetContactRepository().StatusHistory(contact.ID)
	activity, _ := factory.GetActivityRepository().ListForEntity(models.ACTIVITY_ENTITY_CONTACT, contact.ID, 50)

	return c.JSON(fiber.Map{
		"contact":        contact,
		"status_history": history,
		"activity":       activity,
	})
}
