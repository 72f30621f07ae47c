package pipeline

import "github.com/sunfield-crm/sunfield/app/models"

// FinancingStatusTable governs lender application statuses. denied, expired,
// cancelled and funded are terminal.
var FinancingStatusTable = Table{
	models.FIN_STATUS_DRAFT: {
		models.FIN_STATUS_SUBMITTED,
		models.FIN_STATUS_CANCELLED,
	},
	models.FIN_STATUS_SUBMITTED: {
		models.FIN_STATUS_PENDING,
		models.FIN_STATUS_APPROVED,
		models.FIN_STATUS_CONDITIONALLY_APPROVED,
		models.FIN_STATUS_DENIED,
		models.FIN_STATUS_CANCELLED,
	},
	models.FIN_STATUS_PENDING: {
		models.FIN_STATUS_APPROVED,
		models.FIN_STATUS_CONDITIONALLY_APPROVED,
		models.FIN_STATUS_DENIED,
		models.FIN_STATUS_EXPIRED,
		models.FIN_STATUS_CANCELLED,
	},
	models.FIN_STATUS_APPROVED: {
		models.FIN_STATUS_STIPS_PENDING,
		models.FIN_STATUS_STIPS_CLEARED,
		models.FIN_STATUS_FUNDED,
		models.FIN_STATUS_CANCELLED,
	},
	models.FIN_STATUS_CONDITIONALLY_APPROVED: {
		models.FIN_STATUS_APPROVED,
		models.FIN_STATUS_STIPS_PENDING,
		models.FIN_STATUS_DENIED,
		models.FIN_STATUS_CANCELLED,
	},
	models.FIN_STATUS_STIPS_PENDING: {
		models.FIN_STATUS_STIPS_CLEARED,
		models.FIN_STATUS_DENIED,
		models.FIN_STATUS_CANCELLED,
	},
	models.FIN_STATUS_STIPS_CLEARED: {
		models.FIN_STATUS_FUNDED,
		models.FIN_STATUS_CANCELLED,
	},
	models.FIN_STATUS_DENIED:    {},
	models.FIN_STATUS_EXPIRED:   {},
	models.FIN_STATUS_CANCELLED: {},
	models.FIN_STATUS_FUNDED:    {},
}

// IsValidFinancingTransition reports whether a financing application may move
// between the two statuses.
func IsValidFinancingTransition(from, to string) bool {
	return IsValidTransition(from, to, FinancingStatusTable)
}

// NextFinancingStatuses returns the statuses an application may move to.
func NextFinancingStatuses(from string) []string {
	return NextAllowed(from, FinancingStatusTable)
}
