package output

import (
	"github.com/fatih/color"

	"github.com/ancients-collective/checkers/internal/types"
)

func init() {
	color.NoColor = true
}

// newDetailsTable builds a representative detailed checker listing.
func newDetailsTable() *types.Table {
	t := types.NewTable("Enabled", "Name", "Analyzer", "Severity", "Guideline", "Description")
	t.Append(types.StateEnabled, "core.DivideZero", "clangsa", types.SeverityHigh,
		types.GuidelineCoverage{"sei-cert": {"int33-c"}}, "Check for division by zero")
	t.Append(types.StateDisabled, "govet-shadow", "govet", types.SeverityLow,
		types.GuidelineCoverage{}, "check for possible unintended shadowing of variables")
	t.Append(types.StateNone, "clang-diagnostic-format", "-", types.SeverityMedium,
		types.GuidelineCoverage{}, "-")
	return t
}
