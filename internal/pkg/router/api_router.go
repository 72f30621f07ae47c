package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/sunfield-crm/sunfield/app/controllers"
	"github.com/sunfield-crm/sunfield/internal/pkg/constants"
	"github.com/sunfield-crm/sunfield/internal/pkg/middleware"
)

type ApiRouter struct {
}

// InstallRouter mounts the internal JSON API used by the dashboard UI. The
// whole group requires the internal API token.
func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group(constants.APIRoute, limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "sunfield api",
		})
	})

	v1 := api.Group(constants.APIv1Route, middleware.APITokenMiddleware())

	v1.Get("/deals", controllers.HandleListDeals)
	v1.Get("/deals/:uuid", controllers.HandleGetDeal)
	v1.Patch("/deals/:uuid/stage", controllers.HandleUpdateDealStage)
	v1.Patch("/deals/:uuid/financing/:id/status", controllers.HandleUpdateFinancingStatus)
	v1.Post("/deals/:uuid/assign", controllers.HandleAssignDeal)

	v1.Get("/contacts", controllers.HandleListContacts)
	v1.Get("/contacts/:uuid", controllers.HandleGetContact)

	v1.Get("/dashboard/pipeline", controllers.HandleDashboardPipeline)
	v1.Get("/dashboard/alerts", controllers.HandleDashboardAlerts)
	v1.Post("/dashboard/alerts/digest", controllers.HandleSendAlertDigest)

	v1.Get("/webhook-events", controllers.HandleListWebhookEvents)
	v1.Get("/webhook-events/:id", controllers.HandleGetWebhookEvent)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
