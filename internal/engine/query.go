package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/ancients-collective/checkers/internal/analyzers"
	"github.com/ancients-collective/checkers/internal/types"
)

// WarningPrefix namespaces compiler warning rows.
const WarningPrefix = "clang-diagnostic-"

// Placeholder cells of compiler warning rows.
const (
	warningAnalyzer    = "-"
	warningDescription = "-"
	warningSeverity    = types.SeverityMedium
)

// Column names of the listing tables.
var (
	CheckerHeader        = []string{"Name"}
	CheckerDetailsHeader = []string{"Enabled", "Name", "Analyzer", "Severity", "Guideline", "Description"}
	ProfileHeader        = []string{"Profile name"}
	ProfileDetailsHeader = []string{"Profile name", "Description"}
	GuidelineHeader      = []string{"Guideline", "Rules"}
	OptionHeader         = []string{"Option"}
	OptionDetailsHeader  = []string{"Option", "Description"}
)

var (
	// ErrUnknownProfile is returned when a requested profile is not described.
	ErrUnknownProfile = errors.New("checker profile does not exist")
	// ErrConflictingFilters is returned when a profile is combined with a state filter.
	ErrConflictingFilters = errors.New("profile selection cannot be combined with only-enabled or only-disabled")
	// ErrNoCheckerConfig is returned when no analyzer could report config options.
	ErrNoCheckerConfig = errors.New("no analyzer could report checker configuration options")
)

// ProfileError reports an unknown profile and the profiles that do exist.
type ProfileError struct {
	Profile string
	Known   []string
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("checker profile %q does not exist", e.Profile)
}

func (e *ProfileError) Unwrap() error { return ErrUnknownProfile }

// Resolver turns analyzer names into usable analyzers.
// *analyzers.Registry implements it.
type Resolver interface {
	Resolve(ctx context.Context, names []string) ([]analyzers.Analyzer, []analyzers.Failure)
}

// WarningLister lists compiler warning names. *analyzers.Diagtool implements it.
type WarningLister interface {
	Warnings(ctx context.Context) []string
}

// CheckerQuery selects and shapes a checker listing.
type CheckerQuery struct {
	// Analyzers restricts the listing; empty means every supported analyzer.
	Analyzers []string

	// Profile lists only the checkers this profile enables.
	Profile string

	// State is the only-enabled/only-disabled switch. Must be AnyState when
	// Profile is set.
	State StateFilter

	// Guidelines keeps checkers covering any of these guidelines or rules.
	Guidelines Selection

	// Details selects the detailed column set.
	Details bool

	// Warnings appends compiler warning rows.
	Warnings bool
}

// Report collects per-analyzer failures of a query. They never abort the
// query and are surfaced after the output.
type Report struct {
	// Errored lists analyzers that could not be resolved or listed.
	Errored []analyzers.Failure

	// Unsupported lists analyzers that could not report config options.
	Unsupported []string
}

// HasProblems reports whether any analyzer failed.
func (r *Report) HasProblems() bool {
	return len(r.Errored) > 0 || len(r.Unsupported) > 0
}

// Engine answers listing queries over a label source and the analyzer backends.
type Engine struct {
	labels    LabelSource
	analyzers Resolver
	warnings  WarningLister
	index     *GuidelineIndex
	logger    *slog.Logger
}

// New creates an Engine. warnings may be nil when warning listing is
// unavailable; a nil logger falls back to slog.Default().
func New(src LabelSource, res Resolver, warnings WarningLister, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		labels:    src,
		analyzers: res,
		warnings:  warnings,
		index:     NewGuidelineIndex(src),
		logger:    logger,
	}
}

// ListCheckers lists the checkers of the requested analyzers in analyzer
// order, then catalog order. An unknown profile aborts the query before any
// analyzer runs; analyzers that fail are recorded in the report. When no
// analyzer could be listed the error wraps analyzers.ErrNoAnalyzers.
func (e *Engine) ListCheckers(ctx context.Context, q CheckerQuery) (*types.Table, *Report, error) {
	report := &Report{}

	if q.Profile != "" {
		if q.State != AnyState {
			return nil, report, ErrConflictingFilters
		}
		if !e.labels.HasProfile(q.Profile) {
			return nil, report, &ProfileError{Profile: q.Profile, Known: e.labels.Profiles()}
		}
	}

	table := types.NewTable(CheckerHeader...)
	if q.Details {
		table = types.NewTable(CheckerDetailsHeader...)
	}

	filter := Filter{
		ProfileSelected: q.Profile != "",
		State:           q.State,
		Guidelines:      q.Guidelines,
		Index:           e.index,
	}
	directives := profileDirectives(q.Profile)

	working, failed := e.analyzers.Resolve(ctx, q.Analyzers)
	report.Errored = append(report.Errored, failed...)

	listed := 0
	for _, a := range working {
		infos, err := a.Checkers(ctx)
		if err != nil {
			e.logger.Debug("Failed to list checkers", slog.String("analyzer", a.Name()), slog.String("error", err.Error()))
			report.Errored = append(report.Errored, analyzers.Failure{Name: a.Name(), Err: err})
			continue
		}
		listed++

		catalog := make([]CatalogEntry, 0, len(infos))
		for _, info := range infos {
			catalog = append(catalog, CatalogEntry{Name: info.Name, Description: info.Description, Analyzer: a.Name()})
		}

		for _, r := range ResolveStates(catalog, e.labels, directives) {
			if skip, reason := ShouldSkip(r, filter); skip {
				e.logger.Debug("Checker filtered", slog.String("checker", r.Name), slog.String("reason", reason))
				continue
			}
			e.appendChecker(table, r, q.Details)
		}
	}

	if listed == 0 {
		return table, report, fmt.Errorf("%w: %s", analyzers.ErrNoAnalyzers, joinFailures(report.Errored))
	}

	if q.Warnings && e.warnings != nil {
		e.appendWarnings(ctx, table, q)
	}

	return table, report, nil
}

func (e *Engine) appendChecker(t *types.Table, r Resolution, details bool) {
	if !details {
		t.Append(r.Name)
		return
	}
	t.Append(r.State, r.Name, r.Analyzer, e.labels.Severity(r.Name), e.index.CoverageOf(r.Name), r.Description)
}

// appendWarnings adds one row per compiler warning. Warning rows have no
// state, so only the guideline filter applies to them.
func (e *Engine) appendWarnings(ctx context.Context, t *types.Table, q CheckerQuery) {
	for _, w := range e.warnings.Warnings(ctx) {
		name := WarningPrefix + w
		if skip, _ := skipByGuideline(name, Filter{Guidelines: q.Guidelines, Index: e.index}); skip {
			continue
		}
		if !q.Details {
			t.Append(name)
			continue
		}
		t.Append(types.StateNone, name, warningAnalyzer, warningSeverity, e.index.CoverageOf(name), warningDescription)
	}
}

// ListProfiles lists the described profiles sorted by name.
func (e *Engine) ListProfiles(details bool) *types.Table {
	if !details {
		t := types.NewTable(ProfileHeader...)
		for _, name := range e.labels.Profiles() {
			t.Append(name)
		}
		return t
	}

	desc := e.labels.DescriptionOf(types.ProfileKey)
	t := types.NewTable(ProfileDetailsHeader...)
	for _, name := range e.labels.Profiles() {
		t.Append(name, desc[name])
	}
	return t
}

// ListGuidelines lists every known guideline with its sorted rule IDs.
func (e *Engine) ListGuidelines() *types.Table {
	all := e.index.AllGuidelinesAndRules()
	names := make([]string, 0, len(all))
	for name := range all {
		names = append(names, name)
	}
	sort.Strings(names)

	t := types.NewTable(GuidelineHeader...)
	for _, name := range names {
		t.Append(name, all[name])
	}
	return t
}

// ListCheckerConfig lists the configuration options of the requested
// analyzers as "<analyzer>:<option>". Analyzers that cannot report options
// are recorded as unsupported. The error wraps ErrNoCheckerConfig when no
// analyzer reported any option.
func (e *Engine) ListCheckerConfig(ctx context.Context, names []string, details bool) (*types.Table, *Report, error) {
	report := &Report{}
	table := types.NewTable(OptionHeader...)
	if details {
		table = types.NewTable(OptionDetailsHeader...)
	}

	working, failed := e.analyzers.Resolve(ctx, names)
	report.Errored = append(report.Errored, failed...)

	for _, a := range working {
		opts, err := a.ConfigOptions(ctx)
		if err != nil || len(opts) == 0 {
			if err != nil {
				e.logger.Debug("Checker config unavailable", slog.String("analyzer", a.Name()), slog.String("error", err.Error()))
			}
			report.Unsupported = append(report.Unsupported, a.Name())
			continue
		}
		for _, o := range opts {
			name := a.Name() + ":" + o.Name
			if details {
				table.Append(name, o.Description)
			} else {
				table.Append(name)
			}
		}
	}

	if table.Len() == 0 {
		return table, report, ErrNoCheckerConfig
	}
	return table, report, nil
}

func joinFailures(failures []analyzers.Failure) string {
	if len(failures) == 0 {
		return "no analyzer requested"
	}
	parts := make([]string, 0, len(failures))
	for _, f := range failures {
		parts = append(parts, f.Error())
	}
	return strings.Join(parts, "; ")
}
