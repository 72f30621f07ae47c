package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/sunfield-crm/sunfield/app/controllers"
	"github.com/sunfield-crm/sunfield/internal/pkg/constants"
	"github.com/sunfield-crm/sunfield/internal/pkg/middleware"
)

type WebhookRouter struct {
}

// InstallRouter mounts the RepCard and Aurora ingestion endpoints. Each group
// sits behind its own shared-secret token middleware; a bad token is a 401
// before any handler (or the event log) is touched.
func (h WebhookRouter) InstallRouter(app *fiber.App) {
	webhooks := app.Group(constants.WebhookRoute)

	repcard := webhooks.Group(constants.RepCardWebhookPrefix,
		middleware.WebhookTokenMiddleware(constants.RepCardTokenHeader, "REPCARD_WEBHOOK_TOKEN"))
	repcard.Post("/appointment-outcome", controllers.HandleRepCardAppointmentOutcome)
	repcard.Post("/closer-update", controllers.HandleRepCardCloserUpdate)
	repcard.Post("/door-knocked", controllers.HandleRepCardDoorKnocked)
	repcard.Post("/status-changed", controllers.HandleRepCardStatusChanged)

	// Aurora delivers design callbacks as GET requests with query params.
	aurora := webhooks.Group(constants.AuroraWebhookPrefix,
		middleware.WebhookTokenMiddleware(constants.AuroraTokenHeader, "AURORA_WEBHOOK_TOKEN"))
	aurora.Get("/design-completed", controllers.HandleAuroraDesignCompleted)
	aurora.Get("/design-rejected", controllers.HandleAuroraDesignRejected)
}

func NewWebhookRouter() *WebhookRouter {
	return &WebhookRouter{}
}
