package constants

// Static route constants
const (
	APIRoute     = "/api"
	APIv1Route   = "/v1"
	WebhookRoute = "/webhooks"

	RepCardWebhookPrefix = "/repcard"
	AuroraWebhookPrefix  = "/aurora"
)

// Shared-secret header names checked by the webhook token middleware.
const (
	RepCardTokenHeader = "x-repcard-webhook-token"
	AuroraTokenHeader  = "x-aurora-webhook-token"
	APITokenHeader     = "X-API-Token"
)
