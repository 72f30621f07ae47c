package pipeline

import "github.com/sunfield-crm/sunfield/app/models"

// DealStageTable governs pipeline progression. appointment_set ->
// appointment_sat is the only edge driven by webhook reconciliation; every
// other edge is taken by user-initiated pipeline actions. pto, lost and
// cancelled are terminal.
var DealStageTable = Table{
	models.STAGE_NEW_LEAD:          {models.STAGE_APPOINTMENT_SET, models.STAGE_LOST},
	models.STAGE_APPOINTMENT_SET:   {models.STAGE_APPOINTMENT_SAT, models.STAGE_NEW_LEAD, models.STAGE_LOST},
	models.STAGE_APPOINTMENT_SAT:   {models.STAGE_PROPOSAL_SENT, models.STAGE_APPOINTMENT_SET, models.STAGE_LOST},
	models.STAGE_PROPOSAL_SENT:     {models.STAGE_SIGNED, models.STAGE_APPOINTMENT_SAT, models.STAGE_LOST},
	models.STAGE_SIGNED:            {models.STAGE_SITE_SURVEY, models.STAGE_CANCELLED},
	models.STAGE_SITE_SURVEY:       {models.STAGE_PERMITTING, models.STAGE_CANCELLED},
	models.STAGE_PERMITTING:        {models.STAGE_INSTALL_SCHEDULED, models.STAGE_CANCELLED},
	models.STAGE_INSTALL_SCHEDULED: {models.STAGE_INSTALLED, models.STAGE_CANCELLED},
	models.STAGE_INSTALLED:         {models.STAGE_PTO},
	models.STAGE_PTO:               {},
	models.STAGE_LOST:              {},
	models.STAGE_CANCELLED:         {},
}

// IsValidStageTransition reports whether a deal may move between the two
// stages.
func IsValidStageTransition(from, to string) bool {
	return IsValidTransition(from, to, DealStageTable)
}

// NextStages returns the stages a deal may move to from its current stage.
func NextStages(from string) []string {
	return NextAllowed(from, DealStageTable)
}

// ActiveStages lists the stages that count as open pipeline for dashboard
// rollups (everything non-terminal).
func ActiveStages() []string {
	return []string{
		models.STAGE_NEW_LEAD,
		models.STAGE_APPOINTMENT_SET,
		models.STAGE_APPOINTMENT_SAT,
		models.STAGE_PROPOSAL_SENT,
		models.STAGE_SIGNED,
		models.STAGE_SITE_SURVEY,
		models.STAGE_PERMITTING,
		models.STAGE_INSTALL_SCHEDULED,
		models.STAGE_INSTALLED,
	}
}
