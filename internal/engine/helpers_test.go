package engine

import (
	"context"
	"errors"

	"github.com/ancients-collective/checkers/internal/analyzers"
	"github.com/ancients-collective/checkers/internal/labels"
	"github.com/ancients-collective/checkers/internal/types"
)

// scenarioStore holds checkers A (default, HIGH), B (strict) and
// C (default, sei-cert arr30-c).
func scenarioStore() *labels.Store {
	return labels.NewStore(
		map[string][]types.Label{
			"A": {
				{Key: types.ProfileKey, Value: "default"},
				{Key: types.SeverityKey, Value: "HIGH"},
			},
			"B": {
				{Key: types.ProfileKey, Value: "strict"},
			},
			"C": {
				{Key: types.ProfileKey, Value: "default"},
				{Key: types.GuidelineKey, Value: "sei-cert"},
				{Key: types.CustomKey("sei-cert"), Value: "arr30-c"},
			},
			"clang-diagnostic-format": {
				{Key: types.GuidelineKey, Value: "sei-cert"},
				{Key: types.CustomKey("sei-cert"), Value: "fio47-c"},
			},
		},
		map[string]map[string]string{
			"profile": {
				"default": "Default checkers",
				"strict":  "Strict checkers",
				"empty":   "Profile nobody uses",
			},
			"guideline": {
				"sei-cert":   "SEI CERT",
				"cwe-top-25": "CWE Top 25",
			},
		},
	)
}

func scenarioCatalog() []CatalogEntry {
	return []CatalogEntry{
		{Name: "A", Description: "checker a", Analyzer: "fake"},
		{Name: "B", Description: "checker b", Analyzer: "fake"},
		{Name: "C", Description: "checker c", Analyzer: "fake"},
	}
}

// fakeAnalyzer is an in-memory analyzers.Analyzer.
type fakeAnalyzer struct {
	name       string
	checkers   []types.CheckerInfo
	options    []types.ConfigOption
	checkerErr error
	optionErr  error
}

func (f *fakeAnalyzer) Name() string { return f.name }

func (f *fakeAnalyzer) Checkers(context.Context) ([]types.CheckerInfo, error) {
	return f.checkers, f.checkerErr
}

func (f *fakeAnalyzer) ConfigOptions(context.Context) ([]types.ConfigOption, error) {
	return f.options, f.optionErr
}

// fakeResolver resolves names against a fixed set of analyzers.
type fakeResolver struct {
	analyzers []*fakeAnalyzer
	requested []string
}

func (r *fakeResolver) Resolve(_ context.Context, names []string) ([]analyzers.Analyzer, []analyzers.Failure) {
	r.requested = names
	var working []analyzers.Analyzer
	var failed []analyzers.Failure
	if len(names) == 0 {
		for _, a := range r.analyzers {
			working = append(working, a)
		}
		return working, nil
	}
	for _, name := range names {
		found := false
		for _, a := range r.analyzers {
			if a.name == name {
				working = append(working, a)
				found = true
			}
		}
		if !found {
			failed = append(failed, analyzers.Failure{Name: name, Err: analyzers.ErrUnknownAnalyzer})
		}
	}
	return working, failed
}

type fakeWarnings []string

func (w fakeWarnings) Warnings(context.Context) []string { return w }

func scenarioEngine(warnings WarningLister) (*Engine, *fakeResolver) {
	res := &fakeResolver{analyzers: []*fakeAnalyzer{{
		name: "fake",
		checkers: []types.CheckerInfo{
			{Name: "A", Description: "checker a"},
			{Name: "B", Description: "checker b"},
			{Name: "C", Description: "checker c"},
		},
		options: []types.ConfigOption{{Name: "A.Strict", Description: "be strict"}},
	}}}
	return New(scenarioStore(), res, warnings, nil), res
}

// column extracts one column of a table.
func column(t *types.Table, i int) []any {
	out := make([]any, 0, t.Len())
	for _, row := range t.Rows {
		out = append(out, row[i])
	}
	return out
}

var errBoom = errors.New("boom")
