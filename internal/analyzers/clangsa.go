package analyzers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ancients-collective/checkers/internal/types"
)

// ClangSAName is the analyzer name of the Clang Static Analyzer backend.
const ClangSAName = "clangsa"

// ClangSA lists checkers and options of the Clang Static Analyzer through
// clang's -cc1 help pages.
type ClangSA struct {
	opts Options
	path string
}

// NewClangSA builds the clangsa backend.
func NewClangSA(opts Options) Backend {
	return &ClangSA{opts: opts}
}

// Name implements Analyzer.
func (c *ClangSA) Name() string { return ClangSAName }

// Available resolves the clang binary.
func (c *ClangSA) Available(context.Context) error {
	path, err := locate(c.opts.Env, c.opts.Binaries.Clang, "clang")
	if err != nil {
		return err
	}
	if err := checkAllowed(c.opts.Runner, path); err != nil {
		return err
	}
	c.path = path
	return nil
}

// Checkers runs clang -cc1 -analyzer-checker-help and parses its CHECKERS
// section.
func (c *ClangSA) Checkers(ctx context.Context) ([]types.CheckerInfo, error) {
	if c.path == "" {
		if err := c.Available(ctx); err != nil {
			return nil, err
		}
	}

	out, err := c.opts.Runner.Run(ctx, c.path, "-cc1", "-analyzer-checker-help")
	if err != nil {
		return nil, fmt.Errorf("failed to list checkers: %w", err)
	}

	entries := parseHelpPage(out, "CHECKERS:")
	checkers := make([]types.CheckerInfo, 0, len(entries))
	for _, e := range entries {
		checkers = append(checkers, types.CheckerInfo{Name: e.Name, Description: e.Description})
	}
	c.logger().Debug("Listed clangsa checkers", slog.String("clang", c.path), slog.Int("count", len(checkers)))
	return checkers, nil
}

// ConfigOptions runs clang -cc1 -analyzer-checker-option-help. Clang releases
// without that flag fail the call, which is reported as ErrUnsupported.
func (c *ClangSA) ConfigOptions(ctx context.Context) ([]types.ConfigOption, error) {
	if c.path == "" {
		if err := c.Available(ctx); err != nil {
			return nil, err
		}
	}

	out, err := c.opts.Runner.Run(ctx, c.path, "-cc1", "-analyzer-checker-option-help")
	if err != nil {
		c.logger().Debug("Checker option help failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	entries := parseHelpPage(out, "OPTIONS:")
	if len(entries) == 0 {
		return nil, ErrUnsupported
	}
	options := make([]types.ConfigOption, 0, len(entries))
	for _, e := range entries {
		options = append(options, types.ConfigOption{Name: e.Name, Description: e.Description})
	}
	return options, nil
}

func (c *ClangSA) logger() *slog.Logger {
	if c.opts.Logger == nil {
		return slog.Default()
	}
	return c.opts.Logger
}
