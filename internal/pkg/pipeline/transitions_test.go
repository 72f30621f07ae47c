package pipeline

import (
	"testing"

	"github.com/sunfield-crm/sunfield/app/models"
)

func TestIsValidTransitionUnknownStates(t *testing.T) {
	table := Table{"a": {"b"}, "b": {}}

	if IsValidTransition("missing", "b", table) {
		t.Fatal("unknown from-state must not allow transitions")
	}
	if IsValidTransition("a", "missing", table) {
		t.Fatal("unknown to-state must not be reachable")
	}
	if IsValidTransition("", "b", table) {
		t.Fatal("empty from-state must not allow transitions")
	}
}

func TestIsValidTransitionNormalizesInput(t *testing.T) {
	table := Table{"a": {"b"}}

	if !IsValidTransition(" A ", "B", table) {
		t.Fatal("expected case-insensitive, trimmed matching")
	}
}

func TestTerminalStatesAllowNothing(t *testing.T) {
	for _, table := range []Table{FinancingStatusTable, DealStageTable} {
		for state, allowed := range table {
			if len(allowed) != 0 {
				continue
			}
			// Terminal: no outbound edge to any known state, including itself.
			for target := range table {
				if IsValidTransition(state, target, table) {
					t.Fatalf("terminal state %q must not transition to %q", state, target)
				}
			}
			if IsValidTransition(state, state, table) {
				t.Fatalf("terminal state %q must not self-transition", state)
			}
			if !IsTerminalState(state, table) {
				t.Fatalf("expected %q to be terminal", state)
			}
		}
	}
}

func TestNextAllowedMatchesIsValidTransition(t *testing.T) {
	// For every financing status, NextAllowed and the set of targets accepted
	// by IsValidTransition must be the same set.
	for from := range FinancingStatusTable {
		allowed := make(map[string]bool)
		for _, s := range NextAllowed(from, FinancingStatusTable) {
			allowed[s] = true
		}
		for to := range FinancingStatusTable {
			if allowed[to] != IsValidTransition(from, to, FinancingStatusTable) {
				t.Fatalf("mismatch for %s -> %s", from, to)
			}
		}
	}
}

func TestNextAllowedUnknownState(t *testing.T) {
	got := NextAllowed("bogus", FinancingStatusTable)
	if len(got) != 0 {
		t.Fatalf("expected empty set for unknown state, got %v", got)
	}
}

func TestNextAllowedReturnsCopy(t *testing.T) {
	got := NextAllowed(models.FIN_STATUS_DRAFT, FinancingStatusTable)
	if len(got) == 0 {
		t.Fatal("draft must have outbound transitions")
	}
	got[0] = "mutated"
	again := NextAllowed(models.FIN_STATUS_DRAFT, FinancingStatusTable)
	if again[0] == "mutated" {
		t.Fatal("NextAllowed must not expose the underlying table slice")
	}
}

func TestFinancingTableShape(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want bool
	}{
		{models.FIN_STATUS_DRAFT, models.FIN_STATUS_SUBMITTED, true},
		{models.FIN_STATUS_DRAFT, models.FIN_STATUS_APPROVED, false},
		{models.FIN_STATUS_SUBMITTED, models.FIN_STATUS_CONDITIONALLY_APPROVED, true},
		{models.FIN_STATUS_PENDING, models.FIN_STATUS_EXPIRED, true},
		{models.FIN_STATUS_APPROVED, models.FIN_STATUS_FUNDED, true},
		{models.FIN_STATUS_CONDITIONALLY_APPROVED, models.FIN_STATUS_APPROVED, true},
		{models.FIN_STATUS_STIPS_PENDING, models.FIN_STATUS_STIPS_CLEARED, true},
		{models.FIN_STATUS_STIPS_CLEARED, models.FIN_STATUS_FUNDED, true},
		{models.FIN_STATUS_FUNDED, models.FIN_STATUS_DRAFT, false},
		{models.FIN_STATUS_DENIED, models.FIN_STATUS_SUBMITTED, false},
		{models.FIN_STATUS_EXPIRED, models.FIN_STATUS_PENDING, false},
		{models.FIN_STATUS_CANCELLED, models.FIN_STATUS_CANCELLED, false},
	}

	for _, tt := range tests {
		if got := IsValidFinancingTransition(tt.from, tt.to); got != tt.want {
			t.Fatalf("IsValidFinancingTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestDealStageWebhookEdge(t *testing.T) {
	if !IsValidStageTransition(models.STAGE_APPOINTMENT_SET, models.STAGE_APPOINTMENT_SAT) {
		t.Fatal("appointment_set -> appointment_sat must be legal")
	}
	if IsValidStageTransition(models.STAGE_APPOINTMENT_SAT, models.STAGE_APPOINTMENT_SAT) {
		t.Fatal("self-transition must be illegal")
	}
	if IsValidStageTransition(models.STAGE_PTO, models.STAGE_NEW_LEAD) {
		t.Fatal("pto is terminal")
	}
}

func TestActiveStagesExcludeTerminals(t *testing.T) {
	for _, stage := range ActiveStages() {
		if IsTerminalState(stage, DealStageTable) {
			t.Fatalf("active stage %q must not be terminal", stage)
		}
	}
}
