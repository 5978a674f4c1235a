package analyzers

import (
	"context"
	"flag"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/appends"
	"golang.org/x/tools/go/analysis/passes/asmdecl"
	"golang.org/x/tools/go/analysis/passes/assign"
	"golang.org/x/tools/go/analysis/passes/atomic"
	"golang.org/x/tools/go/analysis/passes/bools"
	"golang.org/x/tools/go/analysis/passes/buildtag"
	"golang.org/x/tools/go/analysis/passes/cgocall"
	"golang.org/x/tools/go/analysis/passes/composite"
	"golang.org/x/tools/go/analysis/passes/copylock"
	"golang.org/x/tools/go/analysis/passes/defers"
	"golang.org/x/tools/go/analysis/passes/directive"
	"golang.org/x/tools/go/analysis/passes/errorsas"
	"golang.org/x/tools/go/analysis/passes/fieldalignment"
	"golang.org/x/tools/go/analysis/passes/httpresponse"
	"golang.org/x/tools/go/analysis/passes/ifaceassert"
	"golang.org/x/tools/go/analysis/passes/loopclosure"
	"golang.org/x/tools/go/analysis/passes/lostcancel"
	"golang.org/x/tools/go/analysis/passes/nilfunc"
	"golang.org/x/tools/go/analysis/passes/nilness"
	"golang.org/x/tools/go/analysis/passes/printf"
	"golang.org/x/tools/go/analysis/passes/shadow"
	"golang.org/x/tools/go/analysis/passes/shift"
	"golang.org/x/tools/go/analysis/passes/sigchanyzer"
	"golang.org/x/tools/go/analysis/passes/slog"
	"golang.org/x/tools/go/analysis/passes/stdmethods"
	"golang.org/x/tools/go/analysis/passes/stringintconv"
	"golang.org/x/tools/go/analysis/passes/structtag"
	"golang.org/x/tools/go/analysis/passes/testinggoroutine"
	"golang.org/x/tools/go/analysis/passes/tests"
	"golang.org/x/tools/go/analysis/passes/timeformat"
	"golang.org/x/tools/go/analysis/passes/unmarshal"
	"golang.org/x/tools/go/analysis/passes/unreachable"
	"golang.org/x/tools/go/analysis/passes/unsafeptr"
	"golang.org/x/tools/go/analysis/passes/unusedresult"
	"golang.org/x/tools/go/analysis/passes/unusedwrite"

	"github.com/ancients-collective/checkers/internal/types"
)

// GovetName is the analyzer name of the in-process Go vet backend.
const GovetName = "govet"

// govetPrefix namespaces govet checker names.
const govetPrefix = GovetName + "-"

// vetPasses is the govet catalog, in the order it is reported.
var vetPasses = []*analysis.Analyzer{
	appends.Analyzer,
	asmdecl.Analyzer,
	assign.Analyzer,
	atomic.Analyzer,
	bools.Analyzer,
	buildtag.Analyzer,
	cgocall.Analyzer,
	composite.Analyzer,
	copylock.Analyzer,
	defers.Analyzer,
	directive.Analyzer,
	errorsas.Analyzer,
	fieldalignment.Analyzer,
	httpresponse.Analyzer,
	ifaceassert.Analyzer,
	loopclosure.Analyzer,
	lostcancel.Analyzer,
	nilfunc.Analyzer,
	nilness.Analyzer,
	printf.Analyzer,
	shadow.Analyzer,
	shift.Analyzer,
	sigchanyzer.Analyzer,
	slog.Analyzer,
	stdmethods.Analyzer,
	stringintconv.Analyzer,
	structtag.Analyzer,
	testinggoroutine.Analyzer,
	tests.Analyzer,
	timeformat.Analyzer,
	unmarshal.Analyzer,
	unreachable.Analyzer,
	unsafeptr.Analyzer,
	unusedresult.Analyzer,
	unusedwrite.Analyzer,
}

// Govet reports the Go vet analysis passes linked into this binary.
type Govet struct {
	passes []*analysis.Analyzer
}

// NewGovet builds the govet backend. It needs no external binary.
func NewGovet(_ Options) Backend {
	return &Govet{passes: vetPasses}
}

// Name implements Analyzer.
func (g *Govet) Name() string { return GovetName }

// Available implements Backend. The passes are compiled in, so govet is
// always available.
func (g *Govet) Available(context.Context) error { return nil }

// Checkers returns one checker per pass, named govet-<pass>.
func (g *Govet) Checkers(ctx context.Context) ([]types.CheckerInfo, error) {
	out := make([]types.CheckerInfo, 0, len(g.passes))
	for _, a := range g.passes {
		out = append(out, types.CheckerInfo{
			Name:        govetPrefix + a.Name,
			Description: docSummary(a),
		})
	}
	return out, ctx.Err()
}

// ConfigOptions returns every pass flag as <pass>.<flag>, described by its
// usage text.
func (g *Govet) ConfigOptions(ctx context.Context) ([]types.ConfigOption, error) {
	var out []types.ConfigOption
	for _, a := range g.passes {
		a.Flags.VisitAll(func(f *flag.Flag) {
			desc := f.Usage
			if f.DefValue != "" {
				desc += " (default " + f.DefValue + ")"
			}
			out = append(out, types.ConfigOption{
				Name:        a.Name + "." + f.Name,
				Description: desc,
			})
		})
	}
	if len(out) == 0 {
		return nil, ErrUnsupported
	}
	return out, ctx.Err()
}

// docSummary returns the first non-empty line of a pass's documentation with
// any leading "name: " stripped.
func docSummary(a *analysis.Analyzer) string {
	for _, line := range strings.Split(a.Doc, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		return strings.TrimPrefix(line, a.Name+": ")
	}
	return ""
}
