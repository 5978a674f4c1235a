// Package engine resolves checker states under a selection policy and answers
// the checker, profile, guideline and checker-config listing queries.
package engine

import (
	"github.com/ancients-collective/checkers/internal/labels"
	"github.com/ancients-collective/checkers/internal/types"
)

// LabelSource is the read-only label index the engine queries.
// *labels.Store implements it.
type LabelSource interface {
	LabelsOf(checker string) []types.Label
	DescriptionOf(key types.LabelKey) map[string]string
	ValuesOccurring(key types.LabelKey) []string
	HasValue(checker string, key types.LabelKey, value string) bool
	Severity(checker string) types.Severity
	Profiles() []string
	HasProfile(name string) bool
}

// ProfileDirective sets every member of Profile to enabled or disabled.
type ProfileDirective struct {
	Profile string
	Enable  bool
}

// CatalogEntry is one checker of the merged analyzer catalog.
type CatalogEntry struct {
	Name        string
	Description string
	Analyzer    string
}

// Resolution is a catalog entry with its resolved state.
type Resolution struct {
	CatalogEntry
	State types.CheckerState
}

// ResolveStates classifies every catalog entry. A checker starts enabled iff
// it belongs to the default profile. Directives are then applied in order and
// the last directive whose profile contains a checker decides its state.
// Directives naming unknown profiles match nothing. The result preserves
// catalog order.
func ResolveStates(catalog []CatalogEntry, src LabelSource, directives []ProfileDirective) []Resolution {
	out := make([]Resolution, 0, len(catalog))
	for _, entry := range catalog {
		state := types.StateDisabled
		if src.HasValue(entry.Name, types.ProfileKey, labels.DefaultProfile) {
			state = types.StateEnabled
		}

		for _, d := range directives {
			if !src.HasValue(entry.Name, types.ProfileKey, d.Profile) {
				continue
			}
			if d.Enable {
				state = types.StateEnabled
			} else {
				state = types.StateDisabled
			}
		}

		out = append(out, Resolution{CatalogEntry: entry, State: state})
	}
	return out
}

// profileDirectives expresses "only checkers of profile P" as directives:
// the default set is switched off, then P is switched on.
func profileDirectives(profile string) []ProfileDirective {
	if profile == "" {
		return nil
	}
	return []ProfileDirective{
		{Profile: labels.DefaultProfile, Enable: false},
		{Profile: profile, Enable: true},
	}
}
