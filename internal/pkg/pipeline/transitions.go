package pipeline

import "strings"

// Table maps a state to the set of states it may legally move to. Terminal
// states appear with an empty set so membership and terminality stay
// distinguishable from an unknown state.
type Table map[string][]string

// IsValidTransition reports whether from -> to is a legal edge in the table.
// Unknown and terminal from-states allow nothing, including self-transitions.
func IsValidTransition(from, to string, table Table) bool {
	allowed, ok := table[normalize(from)]
	if !ok {
		return false
	}
	target := normalize(to)
	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}

// NextAllowed returns the set of states reachable from the given state, or an
// empty slice for unknown and terminal states.
func NextAllowed(from string, table Table) []string {
	allowed, ok := table[normalize(from)]
	if !ok || len(allowed) == 0 {
		return []string{}
	}
	out := make([]string, len(allowed))
	copy(out, allowed)
	return out
}

// IsKnownState reports whether the state exists in the table at all.
func IsKnownState(state string, table Table) bool {
	_, ok := table[normalize(state)]
	return ok
}

// IsTerminalState reports whether the state is known and has no outbound
// transitions.
func IsTerminalState(state string, table Table) bool {
	allowed, ok := table[normalize(state)]
	return ok && len(allowed) == 0
}

func normalize(state string) string {
	return strings.ToLower(strings.TrimSpace(state))
}
