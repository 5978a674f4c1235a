// Package main is the entry point for checkers, which lists the checkers of
// the supported static analyzers and their labels.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ancients-collective/checkers/internal/output"
)

// version is set at build time via -ldflags.
var version = "0.1.0"

// profileList is the --profile value that lists profiles instead of selecting one.
const profileList = "list"

// Config holds all parsed CLI flag values.
type Config struct {
	Analyzers     []string
	Details       bool
	Profile       string
	Guidelines    []string
	CheckerConfig bool
	Warnings      bool
	OnlyEnabled   bool
	OnlyDisabled  bool
	Output        string
	LabelsDir     string
	ConfigFile    string
	Verbose       string
	NoColor       bool

	// Args are positional arguments; they extend Guidelines when --guideline is given.
	Args []string

	// Set* record flags given explicitly, so they override config files.
	GuidelineSet bool
	OutputSet    bool
	AnalyzersSet bool
	LabelsSet    bool
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute runs the command line and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	code := 0
	cmd := newRootCmd(stdout, stderr, &code)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "  %s %v\n", iconError(), err)
		return 1
	}
	return code
}

func newRootCmd(stdout, stderr io.Writer, code *int) *cobra.Command {
	cfg := &Config{}

	cmd := &cobra.Command{
		Use:   "checkers",
		Short: "List the checkers of the supported analyzers",
		Long: `List the checkers available in the specified (or all supported) analyzers
alongside their description or enabled status in various formats.

The list of checkers enabled by default is controlled by the "profile:default"
labels in the label directory.`,
		Example: `  checkers --details
  checkers --analyzers govet --only-enabled -o json
  checkers --profile security
  checkers --guideline sei-cert
  checkers --guideline
  checkers --checker-config --analyzers clang-tidy`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			cfg.Args = args
			cfg.GuidelineSet = flags.Changed("guideline")
			cfg.OutputSet = flags.Changed("output")
			cfg.AnalyzersSet = flags.Changed("analyzers")
			cfg.LabelsSet = flags.Changed("labels")
			*code = run(cfg, stdout, stderr)
			return nil
		},
	}
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	f := cmd.Flags()
	f.StringSliceVar(&cfg.Analyzers, "analyzers", nil, "Analyzers to list checkers of, comma separated (default: all supported)")
	f.BoolVar(&cfg.Details, "details", false, "Show details about the checkers, not just their names")
	f.StringVar(&cfg.Profile, "profile", "", `List checkers enabled by the selected profile; "list" lists the profiles`)
	f.StringSliceVar(&cfg.Guidelines, "guideline", nil, "List checkers covering these guidelines or rules; without values, list guidelines and their rules")
	// A bare --guideline lists guidelines; the blank default is dropped by engine.NewSelection.
	f.Lookup("guideline").NoOptDefVal = " "
	f.BoolVar(&cfg.CheckerConfig, "checker-config", false, "Show the checker configuration options of the analyzers")
	f.BoolVarP(&cfg.Warnings, "warnings", "w", false, "Show available compiler warning flags")
	f.BoolVar(&cfg.OnlyEnabled, "only-enabled", false, "Show only the checkers enabled by default")
	f.BoolVar(&cfg.OnlyDisabled, "only-disabled", false, "Show only the checkers disabled by default")
	f.StringVarP(&cfg.Output, "output", "o", "rows", "Output format: rows, table, csv, json")
	f.StringVar(&cfg.LabelsDir, "labels", "", "Label directory (default: built-in labels)")
	f.StringVar(&cfg.ConfigFile, "config", "", "Config file (default: checkers.toml in this or a parent directory)")
	f.StringVar(&cfg.Verbose, "verbose", "warn", "Log level: debug, info, warn, error")
	f.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")
	cmd.MarkFlagsMutuallyExclusive("only-enabled", "only-disabled")

	cmd.AddCommand(newVersionCmd(stdout, stderr, code))
	return cmd
}

// validateFlags checks flag combinations and values.
// Returns -1 if valid, or an exit code (1) if invalid.
func validateFlags(cfg *Config, stderr io.Writer) int {
	if cfg.OnlyEnabled && cfg.OnlyDisabled {
		fmt.Fprintf(stderr, "  %s --only-enabled and --only-disabled cannot be used together\n", iconError())
		return 1
	}
	if cfg.Profile != "" && cfg.Profile != profileList && (cfg.OnlyEnabled || cfg.OnlyDisabled) {
		fmt.Fprintf(stderr, "  %s --profile cannot be combined with --only-enabled or --only-disabled\n", iconError())
		return 1
	}
	if len(cfg.Args) > 0 && !cfg.GuidelineSet {
		fmt.Fprintf(stderr, "  %s Unexpected arguments: %s\n", iconError(), strings.Join(cfg.Args, " "))
		return 1
	}
	if cfg.OutputSet {
		if _, err := output.ParseFormat(cfg.Output); err != nil {
			fmt.Fprintf(stderr, "  %s Invalid --output value: %v\n", iconError(), err)
			return 1
		}
	}
	if _, err := parseLevel(cfg.Verbose); err != nil {
		fmt.Fprintf(stderr, "  %s Invalid --verbose value: %v\n", iconError(), err)
		return 1
	}
	return -1
}

// parseLevel maps a --verbose value to a log level.
func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("%q (must be debug, info, warn, or error)", s)
}

// newLogger builds the stderr logger.
func newLogger(level slog.Level, stderr io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
}

// setupColor disables colors for --no-color, dumb terminals and non-terminal
// output.
func setupColor(noColor bool, stdout io.Writer) {
	if noColor || isDumbTerm() || !isTerminal(stdout) {
		color.NoColor = true
	}
}

// isDumbTerm returns true when the terminal doesn't support Unicode.
func isDumbTerm() bool {
	return os.Getenv("TERM") == "dumb"
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

var (
	cRed    = color.New(color.FgRed).SprintFunc()
	cYellow = color.New(color.FgYellow).SprintFunc()
)

// iconError returns the error icon, plain ASCII on dumb terminals.
func iconError() string {
	if isDumbTerm() {
		return "x"
	}
	return cRed("✗")
}

// iconWarn returns the warning icon, plain ASCII on dumb terminals.
func iconWarn() string {
	if isDumbTerm() {
		return "!"
	}
	return cYellow("⚠")
}
