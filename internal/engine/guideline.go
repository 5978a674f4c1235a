package engine

import (
	"sort"
	"strings"

	"github.com/ancients-collective/checkers/internal/types"
)

// Selection is a requested set of guideline names and rule IDs. The two are
// not distinguished: a value matches if it appears verbatim.
type Selection map[string]struct{}

// NewSelection builds a selection. Each value may hold several
// comma-separated entries; blanks are dropped.
func NewSelection(values ...string) Selection {
	sel := make(Selection)
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				sel[part] = struct{}{}
			}
		}
	}
	return sel
}

// Has reports whether value was requested.
func (s Selection) Has(value string) bool {
	_, ok := s[value]
	return ok
}

// Values returns the requested values in sorted order.
func (s Selection) Values() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// GuidelineIndex answers guideline coverage questions over a label source.
// A guideline is known when it is described or used as a guideline label
// value; a custom key with a known guideline's name carries rule IDs.
type GuidelineIndex struct {
	src   LabelSource
	known map[string]bool
}

// NewGuidelineIndex indexes the guidelines known to src.
func NewGuidelineIndex(src LabelSource) *GuidelineIndex {
	known := make(map[string]bool)
	for name := range src.DescriptionOf(types.GuidelineKey) {
		known[name] = true
	}
	for _, name := range src.ValuesOccurring(types.GuidelineKey) {
		known[name] = true
	}
	return &GuidelineIndex{src: src, known: known}
}

// IsGuideline reports whether name is a known guideline.
func (g *GuidelineIndex) IsGuideline(name string) bool {
	return g.known[name]
}

// isGuidelineKey reports whether facts under key name a guideline or one of
// its rules.
func (g *GuidelineIndex) isGuidelineKey(key types.LabelKey) bool {
	if key.Kind() == types.KeyGuideline {
		return true
	}
	return !key.IsReserved() && g.IsGuideline(key.Name())
}

// Matches reports whether the checker has a guideline or rule fact whose
// value was requested.
func (g *GuidelineIndex) Matches(checker string, requested Selection) bool {
	for _, l := range g.src.LabelsOf(checker) {
		if g.isGuidelineKey(l.Key) && requested.Has(l.Value) {
			return true
		}
	}
	return false
}

// CoverageOf maps each guideline to the rule IDs the checker covers, in
// declaration order without duplicates.
func (g *GuidelineIndex) CoverageOf(checker string) types.GuidelineCoverage {
	cov := make(types.GuidelineCoverage)
	for _, l := range g.src.LabelsOf(checker) {
		if l.Key.IsReserved() || !g.IsGuideline(l.Key.Name()) {
			continue
		}
		name := l.Key.Name()
		if !containsString(cov[name], l.Value) {
			cov[name] = append(cov[name], l.Value)
		}
	}
	return cov
}

// AllGuidelinesAndRules maps every known guideline to its sorted rule IDs.
// A guideline without observed rules maps to an empty slice.
func (g *GuidelineIndex) AllGuidelinesAndRules() map[string][]string {
	out := make(map[string][]string, len(g.known))
	for name := range g.known {
		rules := g.src.ValuesOccurring(types.CustomKey(name))
		if rules == nil {
			rules = []string{}
		}
		out[name] = rules
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
