package engine

import (
	"fmt"
	"strings"

	"github.com/ancients-collective/checkers/internal/types"
)

// StateFilter restricts a listing to enabled or disabled checkers.
type StateFilter uint8

const (
	// AnyState keeps checkers regardless of state.
	AnyState StateFilter = iota
	// OnlyEnabled drops disabled checkers.
	OnlyEnabled
	// OnlyDisabled drops enabled checkers.
	OnlyDisabled
)

// Filter holds the per-query selection applied after state resolution.
type Filter struct {
	// ProfileSelected keeps only checkers enabled by the requested profile.
	ProfileSelected bool

	// State is the only-enabled/only-disabled switch.
	State StateFilter

	// Guidelines drops checkers that match none of the values. Empty keeps all.
	Guidelines Selection

	// Index answers guideline matches. Required when Guidelines is non-empty.
	Index *GuidelineIndex
}

// ShouldSkip determines if a resolved checker is dropped by the filter.
// Stages apply in order: profile, state, guideline. Returns skip=true with
// the reason of the first stage that rejects the checker.
func ShouldSkip(r Resolution, f Filter) (skip bool, reason string) {
	// Profile selection keeps what the profile enabled
	if f.ProfileSelected && !r.State.Enabled() {
		return true, "not enabled by the selected profile"
	}

	if skip, reason := skipByState(r.State, f.State); skip {
		return true, reason
	}

	return skipByGuideline(r.Name, f)
}

// skipByState applies the only-enabled/only-disabled switch.
func skipByState(state types.CheckerState, f StateFilter) (bool, string) {
	switch {
	case f == OnlyEnabled && !state.Enabled():
		return true, "checker is disabled"
	case f == OnlyDisabled && state.Enabled():
		return true, "checker is enabled"
	}
	return false, ""
}

// skipByGuideline drops checkers not covering any requested guideline or rule.
func skipByGuideline(name string, f Filter) (bool, string) {
	if len(f.Guidelines) == 0 || f.Index == nil {
		return false, ""
	}
	if !f.Index.Matches(name, f.Guidelines) {
		return true, fmt.Sprintf("covers none of [%s]", strings.Join(f.Guidelines.Values(), ", "))
	}
	return false, ""
}
