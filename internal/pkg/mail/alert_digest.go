package mail

import (
	"fmt"
	"strings"
	"time"

	"github.com/sunfield-crm/sunfield/internal/pkg/statistics"
)

// BuildAlertDigest renders the stale-deal / stuck-financing digest as a small
// HTML email body. Returns an empty string when there is nothing to report so
// callers can skip the send.
func BuildAlertDigest(dealAlerts []statistics.DealAlert, financingAlerts []statistics.FinancingAlert) string {
	if len(dealAlerts) == 0 && len(financingAlerts) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("<h2>Pipeline alerts</h2>")
	b.WriteString(fmt.Sprintf("<p>Generated %s</p>", time.Now().Format("2006-01-02 15:04")))

	if len(dealAlerts) > 0 {
		b.WriteString("<h3>Deals idle in stage</h3><ul>")
		for _, a := range dealAlerts {
			b.WriteString(fmt.Sprintf("<li>Deal %s &mdash; %s for %d days</li>", a.DealUUID, a.Stage, a.IdleDays))
		}
		b.WriteString("</ul>")
	}

	if len(financingAlerts) > 0 {
		b.WriteString("<h3>Financing applications pending</h3><ul>")
		for _, a := range financingAlerts {
			b.WriteString(fmt.Sprintf("<li>%s application #%d on deal %d &mdash; %s since %s</li>",
				a.Lender, a.ApplicationID, a.DealID, a.Status, a.UpdatedAt.Format("2006-01-02")))
		}
		b.WriteString("</ul>")
	}

	return b.String()
}

// SendAlertDigest emails the digest to the given recipient. A nil return with
// nothing sent means there were no alerts.
func SendAlertDigest(to string, dealAlerts []statistics.DealAlert, financingAlerts []statistics.FinancingAlert) error {
	body := BuildAlertDigest(dealAlerts, financingAlerts)
	if body == "" {
		return nil
	}
	subject := fmt.Sprintf("Sunfield pipeline alerts: %d deals, %d financing", len(dealAlerts), len(financingAlerts))
	return SendMail(to, subject, body)
}
