// Package analyzers adapts static-analysis backends into checker catalogs.
//
// Every backend reports its checkers (name and description) and, where the
// backend version supports it, its configurable options. Backends that
// depend on external binaries run them through an allowlisted Runner.
package analyzers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/ancients-collective/checkers/internal/hostenv"
	"github.com/ancients-collective/checkers/internal/types"
)

var (
	// ErrUnknownAnalyzer is returned for analyzer names with no registered backend.
	ErrUnknownAnalyzer = errors.New("unknown analyzer")
	// ErrUnavailable is returned when a backend's binary cannot be found or run.
	ErrUnavailable = errors.New("analyzer unavailable")
	// ErrUnsupported is returned when a backend cannot report config options.
	ErrUnsupported = errors.New("checker configuration not supported by this analyzer version")
	// ErrNoAnalyzers is returned when none of the requested analyzers resolved.
	ErrNoAnalyzers = errors.New("no analyzer could be resolved")
)

// Analyzer is a resolved backend able to report its catalog.
type Analyzer interface {
	// Name returns the stable short analyzer name.
	Name() string

	// Checkers returns the backend's checkers in catalog order.
	Checkers(ctx context.Context) ([]types.CheckerInfo, error)

	// ConfigOptions returns the backend's configurable options. An empty
	// result or ErrUnsupported means the backend version cannot report them.
	ConfigOptions(ctx context.Context) ([]types.ConfigOption, error)
}

// Backend is an Analyzer that must be checked for availability before use.
type Backend interface {
	Analyzer

	// Available reports why the backend cannot be used, or nil.
	Available(ctx context.Context) error
}

// Failure records an analyzer excluded from a query and why.
type Failure struct {
	Name string
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Name, f.Err)
}

// Binaries holds explicit binary paths. Empty entries are resolved from PATH.
type Binaries struct {
	Clang     string
	ClangTidy string
	Diagtool  string
}

// Options configure every backend built by a Registry.
type Options struct {
	Env      hostenv.Environment
	Binaries Binaries
	Runner   CommandRunner
	Timeout  time.Duration
	Logger   *slog.Logger
}

// Factory builds a backend from shared options.
type Factory func(opts Options) Backend

// Registry maps analyzer names to backend factories.
type Registry struct {
	factories map[string]Factory
	order     []string
	opts      Options
}

// NewRegistry creates a registry with the built-in backends registered.
// A nil Runner gets the default allowlisted runner.
func NewRegistry(opts Options) *Registry {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Runner == nil {
		opts.Runner = NewAllowlistRunner(opts.Env, opts.Timeout)
	}

	r := &Registry{
		factories: make(map[string]Factory),
		opts:      opts,
	}
	r.Register(ClangSAName, NewClangSA)
	r.Register(ClangTidyName, NewClangTidy)
	r.Register(GovetName, NewGovet)
	return r
}

// Register adds or replaces a backend factory. Registration order is the
// default analyzer order.
func (r *Registry) Register(name string, f Factory) {
	if _, exists := r.factories[name]; !exists {
		r.order = append(r.order, name)
	}
	r.factories[name] = f
}

// Supported returns every registered analyzer name in registration order.
func (r *Registry) Supported() []string {
	return append([]string(nil), r.order...)
}

// IsSupported reports whether name has a registered backend.
func (r *Registry) IsSupported(name string) bool {
	_, ok := r.factories[name]
	return ok
}

// Resolve builds and checks the requested analyzers in request order. An
// empty request means every supported analyzer. Duplicate names are resolved
// once. Analyzers that cannot be used are returned as failures and never
// abort resolution of the others.
func (r *Registry) Resolve(ctx context.Context, names []string) ([]Analyzer, []Failure) {
	if len(names) == 0 {
		names = r.order
	}

	var working []Analyzer
	var failed []Failure
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		factory, ok := r.factories[name]
		if !ok {
			failed = append(failed, Failure{Name: name, Err: fmt.Errorf("%w (supported: %v)", ErrUnknownAnalyzer, sortedNames(r.order))})
			continue
		}

		backend := factory(r.opts)
		if err := backend.Available(ctx); err != nil {
			r.opts.Logger.Debug("Analyzer unavailable", slog.String("analyzer", name), slog.String("error", err.Error()))
			failed = append(failed, Failure{Name: name, Err: err})
			continue
		}
		working = append(working, backend)
	}
	return working, failed
}

// Diagtool returns the diagnostics-listing helper configured like the backends.
func (r *Registry) Diagtool() *Diagtool {
	return NewDiagtool(r.opts)
}

func sortedNames(names []string) []string {
	out := append([]string(nil), names...)
	sort.Strings(out)
	return out
}
