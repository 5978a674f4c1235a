package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ancients-collective/checkers/internal/analyzers"
	"github.com/ancients-collective/checkers/internal/config"
	"github.com/ancients-collective/checkers/internal/engine"
	"github.com/ancients-collective/checkers/internal/hostenv"
	"github.com/ancients-collective/checkers/internal/labels"
	"github.com/ancients-collective/checkers/internal/output"
	"github.com/ancients-collective/checkers/internal/types"
)

// run executes one listing with the given configuration and returns an exit code.
func run(cfg *Config, stdout, stderr io.Writer) int {
	if code := validateFlags(cfg, stderr); code >= 0 {
		return code
	}

	level, _ := parseLevel(cfg.Verbose)
	logger := newLogger(level, stderr)
	setupColor(cfg.NoColor, stdout)
	ctx := context.Background()

	settings, err := config.NewLoader(logger).Load(cfg.ConfigFile)
	if err != nil {
		fmt.Fprintf(stderr, "  %s %v\n", iconError(), err)
		return 1
	}
	applyFlags(cfg, settings)

	formatter, err := output.New(output.Format(settings.Output))
	if err != nil {
		fmt.Fprintf(stderr, "  %s %v\n", iconError(), err)
		return 1
	}

	store := loadLabels(settings.LabelsDir, logger, stderr)

	env := hostenv.FromOS().Extend(settings.Env.PathExtra, settings.Env.LDLibraryPathExtra)
	if logger.Enabled(ctx, slog.LevelDebug) {
		host, _ := hostenv.Detect(hostenv.NewDetector())
		logger.Debug("Host detected", slog.String("platform", host.String()), slog.String("path", env.Get("PATH")))
	}

	registry := analyzers.NewRegistry(analyzers.Options{
		Env: env,
		Binaries: analyzers.Binaries{
			Clang:     settings.Binaries.Clang,
			ClangTidy: settings.Binaries.ClangTidy,
			Diagtool:  settings.Binaries.Diagtool,
		},
		Timeout: settings.Timeout(),
		Logger:  logger,
	})
	eng := engine.New(store, registry, registry.Diagtool(), logger)

	selection := engine.NewSelection(append(append([]string{}, cfg.Guidelines...), cfg.Args...)...)

	switch {
	case cfg.Profile == profileList:
		fmt.Fprintf(stderr, "  %s --profile list is deprecated and will be removed in a future release\n", iconWarn())
		return writeTable(formatter, eng.ListProfiles(cfg.Details), stdout, stderr)

	case cfg.CheckerConfig:
		return listCheckerConfig(ctx, eng, registry, settings.Analyzers, cfg.Details, formatter, stdout, stderr)

	case cfg.GuidelineSet && len(selection) == 0:
		if rows, ok := formatter.(*output.RowsFormatter); ok {
			rows.Compact = true
		}
		return writeTable(formatter, eng.ListGuidelines(), stdout, stderr)
	}

	query := engine.CheckerQuery{
		Analyzers:  settings.Analyzers,
		Profile:    cfg.Profile,
		State:      stateFilter(cfg),
		Guidelines: selection,
		Details:    cfg.Details,
		Warnings:   cfg.Warnings,
	}
	table, report, err := eng.ListCheckers(ctx, query)
	if err != nil {
		var perr *engine.ProfileError
		if errors.As(err, &perr) {
			printUnknownProfile(stderr, perr)
			return 1
		}
		if errors.Is(err, analyzers.ErrNoAnalyzers) {
			printReport(stderr, report, registry)
			err = analyzers.ErrNoAnalyzers
		}
		fmt.Fprintf(stderr, "  %s %v\n", iconError(), err)
		return 1
	}

	code := writeTable(formatter, table, stdout, stderr)
	printReport(stderr, report, registry)
	return code
}

// applyFlags lets explicitly given flags override the loaded configuration.
func applyFlags(cfg *Config, settings *config.Config) {
	if cfg.OutputSet {
		settings.Output = cfg.Output
	}
	if cfg.AnalyzersSet {
		settings.Analyzers = cfg.Analyzers
	}
	if cfg.LabelsSet {
		settings.LabelsDir = cfg.LabelsDir
	}
}

// loadLabels loads the label directory, or the built-in labels when dir is
// empty. Files that fail to load are reported and skipped.
func loadLabels(dir string, logger *slog.Logger, stderr io.Writer) *labels.Store {
	ldr := labels.NewLoader(logger)

	var store *labels.Store
	var errs []error
	if dir == "" {
		store, errs = ldr.LoadFS(labels.Defaults())
	} else {
		store, errs = ldr.LoadDirectory(dir)
	}
	for _, e := range errs {
		fmt.Fprintf(stderr, "    %s Label error: %v\n", iconWarn(), e)
	}
	logger.Debug("Labels loaded", slog.Int("checkers", len(store.Checkers())), slog.Any("profiles", store.Profiles()))
	return store
}

func stateFilter(cfg *Config) engine.StateFilter {
	switch {
	case cfg.OnlyEnabled:
		return engine.OnlyEnabled
	case cfg.OnlyDisabled:
		return engine.OnlyDisabled
	}
	return engine.AnyState
}

// listCheckerConfig prints the checker configuration options. It fails only
// when no analyzer could report any option.
func listCheckerConfig(ctx context.Context, eng *engine.Engine, registry *analyzers.Registry, names []string,
	details bool, formatter output.Formatter, stdout, stderr io.Writer,
) int {
	table, report, err := eng.ListCheckerConfig(ctx, names, details)
	code := 0
	if err == nil {
		code = writeTable(formatter, table, stdout, stderr)
	}

	printReport(stderr, report, registry)
	if len(report.Unsupported) > 0 {
		fmt.Fprintf(stderr, "  %s Failed to get checker configuration options for '%s' analyzer(s)! "+
			"Please try to upgrade your analyzer version to use this feature.\n",
			iconWarn(), strings.Join(report.Unsupported, ", "))
	}
	if err != nil {
		fmt.Fprintf(stderr, "  %s %v\n", iconError(), err)
		return 1
	}
	return code
}

func writeTable(formatter output.Formatter, table *types.Table, stdout, stderr io.Writer) int {
	if err := formatter.Write(stdout, table); err != nil {
		fmt.Fprintf(stderr, "  %s Failed to write output: %v\n", iconError(), err)
		return 1
	}
	return 0
}

// printUnknownProfile reports an unknown --profile with close matches.
func printUnknownProfile(stderr io.Writer, perr *engine.ProfileError) {
	fmt.Fprintf(stderr, "  %s Checker profile %q does not exist!\n", iconError(), perr.Profile)
	if suggestions := suggest(perr.Profile, perr.Known); len(suggestions) > 0 {
		fmt.Fprintf(stderr, "\n  Did you mean:\n")
		for _, s := range suggestions {
			fmt.Fprintf(stderr, "    • %s\n", s)
		}
	}
	fmt.Fprintf(stderr, "\n  To list available profiles, use '--profile list'.\n")
}

// printReport lists analyzers that could not be used, with close matches
// for names that are not analyzers at all.
func printReport(stderr io.Writer, report *engine.Report, registry *analyzers.Registry) {
	if report == nil || !report.HasProblems() {
		return
	}
	for _, f := range report.Errored {
		fmt.Fprintf(stderr, "  %s Failed to get checkers for '%s' analyzer: %v\n", iconWarn(), f.Name, f.Err)
		if !registry.IsSupported(f.Name) {
			if suggestions := suggest(f.Name, registry.Supported()); len(suggestions) > 0 {
				fmt.Fprintf(stderr, "      Did you mean: %s\n", strings.Join(suggestions, ", "))
			}
		}
	}
}
