package controllers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/sunfield-crm/sunfield/internal/pkg/env"
	"github.com/sunfield-crm/sunfield/internal/pkg/mail"
	"github.com/sunfield-crm/sunfield/internal/pkg/metrics/counter"
	"github.com/sunfield-crm/sunfield/internal/pkg/statistics"
)

// HandleDashboardPipeline returns the cached pipeline rollup: deals per
// stage, open deal count and today's appointments.
// Security: API token required via router middleware.
func HandleDashboardPipeline(c *fiber.Ctx) error {
	statistics.UpdateCacheIfNeeded()

	stats, err := statistics.GetPipelineStats()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error", "message": "could not load pipeline stats"})
	}

	return c.JSON(fiber.Map{
		"stage_counts":       stats.StageCounts,
		"open_deals":         stats.OpenDeals,
		"appointments_today": stats.AppointmentsToday,
		"webhook_deliveries": counter.Snapshot(),
	})
}

// HandleDashboardAlerts returns deals idle in their stage and financing
// applications stuck in a non-terminal status.
// Security: API token required via router middleware.
func HandleDashboardAlerts(c *fiber.Ctx) error {
	dealDays, _ := strconv.Atoi(c.Query("deal_days", "14"))
	financingDays, _ := strconv.Atoi(c.Query("financing_days", "7"))

	dealAlerts, err := statistics.StaleDealAlerts(dealDays)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error", "message": "could not load deal alerts"})
	}
	financingAlerts, err := statistics.PendingFinancingAlerts(financingDays)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error", "message": "could not load financing alerts"})
	}

	return c.JSON(fiber.Map{
		"stale_deals":       dealAlerts,
		"pending_financing": financingAlerts,
	})
}

// HandleSendAlertDigest emails the current alert rollup to the configured
// recipient. Intended to be hit by a scheduler, not a browser.
// Security: API token required via router middleware.
func HandleSendAlertDigest(c *fiber.Ctx) error {
	recipient := strings.TrimSpace(env.GetEnv("ALERT_DIGEST_RECIPIENT", ""))
	if recipient == "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": "unprocessable", "message": "ALERT_DIGEST_RECIPIENT not configured"})
	}

	dealDays, _ := strconv.Atoi(c.Query("deal_days", "14"))
	financingDays, _ := strconv.Atoi(c.Query("financing_days", "7"))

	dealAlerts, err := statistics.StaleDealAlerts(dealDays)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error", "message": "could not load deal alerts"})
	}
	financingAlerts, err := statistics.PendingFinancingAlerts(financingDays)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error", "message": "could not load financing alerts"})
	}

	if err := mail.SendAlertDigest(recipient, dealAlerts, financingAlerts); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_error", "message": "could not send digest"})
	}

	return c.JSON(fiber.Map{
		"message":           "digest sent",
		"stale_deals":       len(dealAlerts),
		"pending_financing": len(financingAlerts),
	})
}
