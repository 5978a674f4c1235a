package analyzers

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ancients-collective/checkers/internal/types"
)

// ClangTidyName is the analyzer name of the clang-tidy backend.
const ClangTidyName = "clang-tidy"

// ClangTidy lists clang-tidy checks and their options.
type ClangTidy struct {
	opts Options
	path string
}

// NewClangTidy builds the clang-tidy backend.
func NewClangTidy(opts Options) Backend {
	return &ClangTidy{opts: opts}
}

// Name implements Analyzer.
func (c *ClangTidy) Name() string { return ClangTidyName }

// Available resolves the clang-tidy binary.
func (c *ClangTidy) Available(context.Context) error {
	path, err := locate(c.opts.Env, c.opts.Binaries.ClangTidy, "clang-tidy")
	if err != nil {
		return err
	}
	if err := checkAllowed(c.opts.Runner, path); err != nil {
		return err
	}
	c.path = path
	return nil
}

// Checkers runs clang-tidy -list-checks -checks=*. clang-tidy reports names
// only, so descriptions are empty.
func (c *ClangTidy) Checkers(ctx context.Context) ([]types.CheckerInfo, error) {
	if c.path == "" {
		if err := c.Available(ctx); err != nil {
			return nil, err
		}
	}

	out, err := c.opts.Runner.Run(ctx, c.path, "-list-checks", "-checks=*")
	if err != nil {
		return nil, fmt.Errorf("failed to list checks: %w", err)
	}
	return parseTidyChecks(out), nil
}

// ConfigOptions runs clang-tidy -dump-config -checks=* and reports the
// CheckOptions entries, described by their default value.
func (c *ClangTidy) ConfigOptions(ctx context.Context) ([]types.ConfigOption, error) {
	if c.path == "" {
		if err := c.Available(ctx); err != nil {
			return nil, err
		}
	}

	out, err := c.opts.Runner.Run(ctx, c.path, "-dump-config", "-checks=*")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	options, err := parseTidyConfig(out)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if len(options) == 0 {
		return nil, ErrUnsupported
	}
	return options, nil
}

// parseTidyChecks reads the indented check names following the
// "Enabled checks:" header.
func parseTidyChecks(out []byte) []types.CheckerInfo {
	var checks []types.CheckerInfo
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		name := strings.TrimSpace(line)
		if name == "" || name == line {
			continue
		}
		checks = append(checks, types.CheckerInfo{Name: name})
	}
	return checks
}

// parseTidyConfig extracts CheckOptions from a -dump-config document. Older
// clang-tidy releases write a list of key/value pairs, newer ones a mapping;
// both keep document order.
func parseTidyConfig(out []byte) ([]types.ConfigOption, error) {
	var doc struct {
		CheckOptions yaml.Node `yaml:"CheckOptions"`
	}
	if err := yaml.Unmarshal(out, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse clang-tidy config: %w", err)
	}

	node := doc.CheckOptions
	var options []types.ConfigOption
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			options = append(options, types.ConfigOption{
				Name:        node.Content[i].Value,
				Description: node.Content[i+1].Value,
			})
		}
	case yaml.SequenceNode:
		for _, item := range node.Content {
			var kv struct {
				Key   string `yaml:"key"`
				Value string `yaml:"value"`
			}
			if err := item.Decode(&kv); err != nil {
				return nil, fmt.Errorf("invalid CheckOptions entry: %w", err)
			}
			options = append(options, types.ConfigOption{Name: kv.Key, Description: kv.Value})
		}
	default:
		return nil, fmt.Errorf("unexpected CheckOptions layout at line %d", node.Line)
	}
	return options, nil
}
