package reconcile

import (
	"strings"

	"github.com/sunfield-crm/sunfield/app/models"
)

// OutcomeIndicatesSale reports whether an outcome title describes a closed
// sale. RepCard lets offices name their outcomes freely, so this is a
// case-insensitive substring match on "sale" or "signed" — a documented
// heuristic inherited from how the outcomes are configured in the field.
func OutcomeIndicatesSale(title string) bool {
	t := strings.ToLower(title)
	return strings.Contains(t, "sale") || strings.Contains(t, "signed")
}

// MapOutcomeStatus maps an external outcome title onto the internal
// appointment status enumeration. Titles that indicate a completed sit map to
// completed; cancellations, no-shows and reschedules map to their statuses;
// anything else returns ok=false and leaves the appointment status untouched
// (the raw title is still recorded as the outcome).
func MapOutcomeStatus(title string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(title))
	if t == "" {
		return "", false
	}
	switch {
	case OutcomeIndicatesSale(t), strings.Contains(t, "complete"):
		return models.APPT_STATUS_COMPLETED, true
	case strings.Contains(t, "no show"), strings.Contains(t, "no-show"):
		return models.APPT_STATUS_NO_SHOW, true
	case strings.Contains(t, "cancel"):
		return models.APPT_STATUS_CANCELLED, true
	case strings.Contains(t, "resched"):
		return models.APPT_STATUS_RESCHEDULED, true
	default:
		return "", false
	}
}
