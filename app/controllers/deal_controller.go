package controllers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/sunfield-crm/sunfield/app/models"
	"github.com/sunfield-crm/sunfield/app/repository"
	"github.com/sunfield-crm/sunfield/internal/pkg/pipeline"
)

// HandleListDeals returns deals for a company, optionally filtered by stage.
// Security: API token required via router middleware.
func HandleListDeals(c *fiber.Ctx) error {
	companyID, err := strconv.ParseUint(c.Query("company_id"), 10, 32)
	if err != nil || companyID == 0 {
		return badRequest(c, "company_id missing")
	}
	stage := strings.TrimSpace(c.Query("stage"))
	if stage != "" && !pipeline.IsKnownState(stage, pipeline.DealStageTable) {
		return badRequest(c, "unknown stage: "+stage)
	}

	offset, limit := parsePagination(c)
	dealRepo := repository.GetGlobalFactory().GetDealRepository()
	deals, err := dealRepo.ListByCompany(uint(companyID), stage, offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error", "message": "could not list deals"})
	}

	return c.JSON(fiber.Map{
		"deals":  deals,
		"offset": offset,
		"limit":  limit,
	})
}

// HandleGetDeal returns one deal with its appointments, financing
// applications and assignment history.
// Security: API token required via router middleware.
func HandleGetDeal(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	if uuid == "" {
		return badRequest(c, "uuid missing")
	}

	factory := repository.GetGlobalFactory()
	deal, err := factory.GetDealRepository().GetByUUID(uuid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "deal not found"})
	}

	appointments, _ := factory.GetAppointmentRepository().ListByDeal(deal.ID)
	financing, _ := factory.GetFinancingRepository().ListByDeal(deal.ID)
	assignments, _ := factory.GetDealRepository().AssignmentHistory(deal.ID)
	activity, _ := factory.GetActivityRepository().ListForEntity(models.ACTIVITY_ENTITY_DEAL, deal.ID, 50)

	return c.JSON(fiber.Map{
		"deal":                deal,
		"appointments":        appointments,
		"financing":           financing,
		"assignment_history":  assignments,
		"activity":            activity,
		"next_allowed_stages": pipeline.NextStages(deal.Stage),
	})
}

type stageChangeRequest struct {
	Stage     string `json:"stage"`
	ChangedBy string `json:"changed_by"`
}

// HandleUpdateDealStage moves a deal along the pipeline. Transitions are
// validated against the stage table; an illegal one is a 409 with the allowed
// next stages in the response.
// Security: API token required via router middleware.
func HandleUpdateDealStage(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	if uuid == "" {
		return badRequest(c, "uuid missing")
	}

	var req stageChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	target := strings.ToLower(strings.TrimSpace(req.Stage))
	if target == "" {
		return badRequest(c, "stage missing")
	}
	if !pipeline.IsKnownState(target, pipeline.DealStageTable) {
		return badRequest(c, "unknown stage: "+target)
	}

	factory := repository.GetGlobalFactory()
	dealRepo := factory.GetDealRepository()
	deal, err := dealRepo.GetByUUID(uuid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "deal not found"})
	}

	if deal.Stage == target {
		return c.JSON(fiber.Map{"message": "stage unchanged", "stage": deal.Stage})
	}
	if !pipeline.IsValidStageTransition(deal.Stage, target) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "invalid_transition",
			"message": fmt.Sprintf("cannot move deal from %s to %s", deal.Stage, target),
			"allowed": pipeline.NextStages(deal.Stage),
		})
	}

	now := time.Now()
	previous := deal.Stage
	if err := dealRepo.UpdateFields(deal.ID, map[string]interface{}{
		"stage":            target,
		"stage_changed_at": &now,
	}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error", "message": "could not update deal"})
	}

	_ = factory.GetActivityRepository().Append(&models.ActivityLogEntry{
		EntityType:  models.ACTIVITY_ENTITY_DEAL,
		EntityID:    deal.ID,
		Action:      models.ACTIVITY_STAGE_CHANGED,
		Description: fmt.Sprintf("Stage changed from %s to %s", previous, target),
	})

	return c.JSON(fiber.Map{"message": "stage updated", "stage": target, "previous_stage": previous})
}

type financingStatusRequest struct {
	Status string `json:"status"`
}

// HandleUpdateFinancingStatus moves a financing application through the
// lender status table. Illegal transitions return 409.
// Security: API token required via router middleware.
func HandleUpdateFinancingStatus(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	appID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if uuid == "" || err != nil {
		return badRequest(c, "uuid or financing id missing")
	}

	var req financingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	target := strings.ToLower(strings.TrimSpace(req.Status))
	if target == "" {
		return badRequest(c, "status missing")
	}
	if !pipeline.IsKnownState(target, pipeline.FinancingStatusTable) {
		return badRequest(c, "unknown financing status: "+target)
	}

	factory := repository.GetGlobalFactory()
	deal, err := factory.GetDealRepository().GetByUUID(uuid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "deal not found"})
	}

	finRepo := factory.GetFinancingRepository()
	app, err := finRepo.GetByID(uint(appID))
	if err != nil || app.DealID != deal.ID {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "financing application not found"})
	}

	if app.Status == target {
		return c.JSON(fiber.Map{"message": "status unchanged", "status": app.Status})
	}
	if !pipeline.IsValidFinancingTransition(app.Status, target) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   "invalid_transition",
			"message": fmt.Sprintf("cannot move financing from %s to %s", app.Status, target),
			"allowed": pipeline.NextFinancingStatuses(app.Status),
		})
	}

	previous := app.Status
	if err := finRepo.UpdateFields(app.ID, map[string]interface{}{"status": target}); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error", "message": "could not update financing application"})
	}

	_ = factory.GetActivityRepository().Append(&models.ActivityLogEntry{
		EntityType:  models.ACTIVITY_ENTITY_DEAL,
		EntityID:    deal.ID,
		Action:      models.ACTIVITY_FINANCING_UPDATED,
		Description: fmt.Sprintf("Financing (%s) moved from %s to %s", app.Lender, previous, target),
	})

	return c.JSON(fiber.Map{"message": "financing status updated", "status": target, "previous_status": previous})
}

type assignRequest struct {
	Role      string `json:"role"`
	UserID    uint   `json:"user_id"`
	Office    string `json:"office"`
	ChangedBy string `json:"changed_by"`
}

// HandleAssignDeal reassigns the closer, setter or office on a deal. A
// history row is written only when the value actually changed, so replays of
// the same assignment stay silent.
// Security: API token required via router middleware.
func HandleAssignDeal(c *fiber.Ctx) error {
	uuid := c.Params("uuid")
	if uuid == "" {
		return badRequest(c, "uuid missing")
	}

	var req assignRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	role := strings.ToLower(strings.TrimSpace(req.Role))

	factory := repository.GetGlobalFactory()
	dealRepo := factory.GetDealRepository()
	deal, err := dealRepo.GetByUUID(uuid)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "deal not found"})
	}

	var previous, next string
	updates := map[string]interface{}{}

	switch role {
	case models.ASSIGN_ROLE_CLOSER, models.ASSIGN_ROLE_SETTER:
		if req.UserID == 0 {
			return badRequest(c, "user_id missing")
		}
		user, err := factory.GetUserRepository().GetByID(req.UserID)
		if err != nil {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "unprocessable", "message": "assigned user does not exist"})
		}
		current := deal.CloserID
		column := "closer_id"
		if role == models.ASSIGN_ROLE_SETTER {
			current = deal.SetterID
			column = "setter_id"
		}
		if current != nil && *current == user.ID {
			return c.JSON(fiber.Map{"message": "assignment unchanged"})
		}
		if current != nil {
			if prev, err := factory.GetUserRepository().GetByID(*current); err == nil {
				previous = prev.FullName()
			} else {
				previous = fmt.Sprintf("user #%d", *current)
			}
		}
		next = user.FullName()
		updates[column] = user.ID
	case models.ASSIGN_ROLE_OFFICE:
		office := strings.TrimSpace(req.Office)
		if office == "" {
			return badRequest(c, "office missing")
		}
		if deal.Office == office {
			return c.JSON(fiber.Map{"message": "assignment unchanged"})
		}
		previous = deal.Office
		next = office
		updates["office"] = office
	default:
		return badRequest(c, "role must be closer, setter or office")
	}

	if err := dealRepo.UpdateFields(deal.ID, updates); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error", "message": "could not update deal"})
	}

	_ = dealRepo.AppendAssignmentHistory(&models.DealAssignmentHistory{
		DealID:        deal.ID,
		RoleChanged:   role,
		PreviousValue: previous,
		NewValue:      next,
		ChangedBy:     strings.TrimSpace(req.ChangedBy),
	})

	return c.JSON(fiber.Map{
		"message":  "assignment updated",
		"role":     role,
		"previous": previous,
		"new":      next,
	})
}
