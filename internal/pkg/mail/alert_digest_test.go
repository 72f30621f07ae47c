package mail

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sunfield-crm/sunfield/internal/pkg/statistics"
)

func TestBuildAlertDigestEmptyWhenNoAlerts(t *testing.T) {
	assert.Empty(t, BuildAlertDigest(nil, nil))
}

func TestBuildAlertDigestListsBothSections(t *testing.T) {
	deals := []statistics.DealAlert{
		{DealID: 1, DealUUID: "d-1", Stage: "proposal_sent", IdleDays: 21},
	}
	financing := []statistics.FinancingAlert{
		{ApplicationID: 7, DealID: 1, Lender: "GoodLeap", Status: "submitted", UpdatedAt: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
	}

	body := BuildAlertDigest(deals, financing)
	assert.Contains(t, body, "d-1")
	assert.Contains(t, body, "proposal_sent")
	assert.Contains(t, body, "21 days")
	assert.Contains(t, body, "GoodLeap")
	assert.Contains(t, body, "submitted")
}

func TestBuildAlertDigestDealsOnly(t *testing.T) {
	deals := []statistics.DealAlert{{DealUUID: "d-2", Stage: "signed", IdleDays: 30}}

	body := BuildAlertDigest(deals, nil)
	assert.Contains(t, body, "Deals idle in stage")
	assert.NotContains(t, body, "Financing applications pending")
}
