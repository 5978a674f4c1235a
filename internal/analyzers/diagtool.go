package analyzers

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// warningFlagPrefix marks warning names in diagtool's tree output.
const warningFlagPrefix = "-W"

// Diagtool lists the compiler warning flags known to the clang installation.
// Every failure degrades to an empty list.
type Diagtool struct {
	opts Options
}

// NewDiagtool returns the diagnostics-listing helper for the given options.
func NewDiagtool(opts Options) *Diagtool {
	return &Diagtool{opts: opts}
}

// Warnings returns the warning names reported by "diagtool tree", without
// the -W prefix and deduplicated in first-seen order. It returns nil when
// diagtool cannot be found or run.
func (d *Diagtool) Warnings(ctx context.Context) []string {
	logger := d.opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	path, ok := d.path()
	if !ok {
		logger.Debug("diagtool not found, no warnings listed")
		return nil
	}
	if err := checkAllowed(d.opts.Runner, path); err != nil {
		logger.Debug("diagtool rejected, no warnings listed", slog.String("error", err.Error()))
		return nil
	}

	out, err := d.opts.Runner.Run(ctx, path, "tree")
	if err != nil {
		logger.Debug("diagtool failed, no warnings listed", slog.String("error", err.Error()))
		return nil
	}
	return parseWarnings(string(out))
}

// path resolves diagtool: an explicit setting first, otherwise the diagtool
// that sits next to the real clang binary.
func (d *Diagtool) path() (string, bool) {
	if d.opts.Binaries.Diagtool != "" {
		p, err := d.opts.Env.LookPath(d.opts.Binaries.Diagtool)
		return p, err == nil
	}

	clang, err := locate(d.opts.Env, d.opts.Binaries.Clang, "clang")
	if err != nil {
		return "", false
	}
	if real, err := filepath.EvalSymlinks(clang); err == nil {
		clang = real
	}

	candidate := filepath.Join(filepath.Dir(clang), "diagtool")
	if info, err := os.Stat(candidate); err != nil || info.IsDir() {
		return "", false
	}
	return candidate, true
}

func parseWarnings(out string) []string {
	var warnings []string
	seen := make(map[string]bool)
	for _, tok := range strings.Fields(out) {
		name, ok := strings.CutPrefix(tok, warningFlagPrefix)
		if !ok || name == "" || seen[name] {
			continue
		}
		seen[name] = true
		warnings = append(warnings, name)
	}
	return warnings
}
