package types

import (
	"sort"
	"strings"
)

// Severity is the impact rating attached to a checker through its severity label.
type Severity string

const (
	SeverityUnspecified Severity = "UNSPECIFIED"
	SeverityStyle       Severity = "STYLE"
	SeverityLow         Severity = "LOW"
	SeverityMedium      Severity = "MEDIUM"
	SeverityHigh        Severity = "HIGH"
	SeverityCritical    Severity = "CRITICAL"
)

// Severities lists every valid severity from least to most severe.
var Severities = []Severity{
	SeverityUnspecified,
	SeverityStyle,
	SeverityLow,
	SeverityMedium,
	SeverityHigh,
	SeverityCritical,
}

// ParseSeverity converts a label value to a Severity. Matching is case-insensitive.
func ParseSeverity(s string) (Severity, bool) {
	up := Severity(strings.ToUpper(strings.TrimSpace(s)))
	for _, sev := range Severities {
		if sev == up {
			return sev, true
		}
	}
	return SeverityUnspecified, false
}

// CheckerState is the per-query enabled/disabled classification of a checker.
type CheckerState string

const (
	// StateEnabled means the checker would run under the active policy.
	StateEnabled CheckerState = "enabled"
	// StateDisabled means the checker would not run under the active policy.
	StateDisabled CheckerState = "disabled"
	// StateNone marks rows that are not checkers, such as compiler warnings.
	StateNone CheckerState = ""
)

// Enabled reports whether the state is StateEnabled.
func (s CheckerState) Enabled() bool {
	return s == StateEnabled
}

// CheckerInfo is one catalog entry reported by an analyzer backend.
type CheckerInfo struct {
	// Name is the globally unique checker name (e.g., "govet-printf").
	Name string

	// Description is the backend-provided default description.
	Description string
}

// ConfigOption is a configurable option reported by an analyzer backend.
type ConfigOption struct {
	// Name is the option name, unique within its analyzer.
	Name string

	// Description is the option's help text or default value.
	Description string
}

// GuidelineCoverage maps a guideline name to the rule IDs a checker covers under it.
type GuidelineCoverage map[string][]string

// Guidelines returns the guideline names in sorted order.
func (g GuidelineCoverage) Guidelines() []string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// String renders the coverage for human-readable output:
// "Related sei-cert rules: arr30-c, int33-c".
func (g GuidelineCoverage) String() string {
	parts := make([]string, 0, len(g))
	for _, name := range g.Guidelines() {
		parts = append(parts, "Related "+name+" rules: "+strings.Join(g[name], ", "))
	}
	return strings.Join(parts, " ")
}
