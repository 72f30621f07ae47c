package reconcile

import (
	"testing"

	"github.com/sunfield-crm/sunfield/app/models"
)

func TestOutcomeIndicatesSale(t *testing.T) {
	tests := []struct {
		title string
		want  bool
	}{
		{"Sale Signed", true},
		{"SALE", true},
		{"Contract Signed", true},
		{"Closed - sale pending finance", true},
		{"No Show", false},
		{"Rescheduled", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := OutcomeIndicatesSale(tt.title); got != tt.want {
			t.Fatalf("OutcomeIndicatesSale(%q) = %v, want %v", tt.title, got, tt.want)
		}
	}
}

func TestMapOutcomeStatus(t *testing.T) {
	tests := []struct {
		title  string
		want   string
		wantOK bool
	}{
		{"Sale Signed", models.APPT_STATUS_COMPLETED, true},
		{"Appointment Complete", models.APPT_STATUS_COMPLETED, true},
		{"No Show", models.APPT_STATUS_NO_SHOW, true},
		{"Customer Cancelled", models.APPT_STATUS_CANCELLED, true},
		{"Rescheduled to next week", models.APPT_STATUS_RESCHEDULED, true},
		{"Thinking about it", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := MapOutcomeStatus(tt.title)
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("MapOutcomeStatus(%q) = (%q, %v), want (%q, %v)", tt.title, got, ok, tt.want, tt.wantOK)
		}
	}
}
