package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ancients-collective/checkers/internal/analyzers"
	"github.com/ancients-collective/checkers/internal/engine"
)

// runCLI executes the command line in an isolated environment: no user
// config, an empty explicit project config and a stable terminal type.
func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TERM", "xterm")

	cfgPath := filepath.Join(home, "checkers.toml")
	require.NoError(t, os.WriteFile(cfgPath, nil, 0o644))

	var out, errOut bytes.Buffer
	code = execute(append([]string{"--config", cfgPath}, args...), &out, &errOut)
	return code, out.String(), errOut.String()
}

func decodeJSON(t *testing.T, s string) []map[string]any {
	t.Helper()
	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &rows), s)
	return rows
}

func names(rows []map[string]any) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r["name"].(string))
	}
	return out
}

func TestCLI_ListGovetCheckers(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--analyzers", "govet", "-o", "json")

	require.Equal(t, 0, code, stderr)
	list := names(decodeJSON(t, stdout))
	assert.Contains(t, list, "govet-printf")
	assert.Contains(t, list, "govet-shadow")
	assert.NotContains(t, stderr, "Label error")
}

func TestCLI_OnlyEnabledAndDisabledPartition(t *testing.T) {
	_, all, _ := runCLI(t, "--analyzers", "govet", "-o", "json")
	_, enabled, _ := runCLI(t, "--analyzers", "govet", "-o", "json", "--only-enabled")
	_, disabled, _ := runCLI(t, "--analyzers", "govet", "-o", "json", "--only-disabled")

	on := names(decodeJSON(t, enabled))
	off := names(decodeJSON(t, disabled))

	assert.Contains(t, on, "govet-printf")
	assert.Contains(t, off, "govet-shadow")
	assert.Len(t, decodeJSON(t, all), len(on)+len(off))
	for _, n := range on {
		assert.NotContains(t, off, n)
	}
}

func TestCLI_OnlyEnabledWithOnlyDisabled(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--only-enabled", "--only-disabled")

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "only-enabled")
}

func TestCLI_Profile(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--analyzers", "govet", "--profile", "sensitive", "-o", "json", "--details")

	require.Equal(t, 0, code, stderr)
	rows := decodeJSON(t, stdout)
	list := names(rows)
	assert.Contains(t, list, "govet-shadow")
	assert.NotContains(t, list, "govet-printf")
	for _, r := range rows {
		assert.Equal(t, true, r["enabled"], r["name"])
	}
}

func TestCLI_UnknownProfile(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--analyzers", "govet", "--profile", "securty")

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, `Checker profile "securty" does not exist!`)
	assert.Contains(t, stderr, "Did you mean")
	assert.Contains(t, stderr, "security")
	assert.Contains(t, stderr, "--profile list")
}

func TestCLI_ProfileWithStateFilter(t *testing.T) {
	code, _, stderr := runCLI(t, "--profile", "security", "--only-enabled")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "--profile cannot be combined")
}

func TestCLI_ProfileList(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--profile", "list", "--details", "-o", "csv")

	require.Equal(t, 0, code)
	assert.Contains(t, stderr, "deprecated")
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Equal(t, "profile_name,description", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "default,"))
}

func TestCLI_GuidelineListing(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--guideline", "-o", "json")

	require.Equal(t, 0, code, stderr)
	rows := decodeJSON(t, stdout)
	require.NotEmpty(t, rows)
	byName := make(map[string]any)
	for _, r := range rows {
		byName[r["guideline"].(string)] = r["rules"]
	}
	assert.Contains(t, byName["sei-cert"], "fio47-c")
}

func TestCLI_GuidelineRowsFormat(t *testing.T) {
	code, stdout, _ := runCLI(t, "--guideline", "-o", "rows")

	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Guideline: sei-cert\nRules: ")
	assert.NotContains(t, stdout, "\n\n", "guideline entries are not separated by blank lines")
	assert.True(t, strings.HasPrefix(stdout, "Guideline: cwe-top-25\nRules: "))
	assert.Contains(t, stdout, "\nGuideline: sei-cert\n")
}

func TestCLI_DefaultOutputIsRows(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--analyzers", "govet", "--only-enabled")

	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Name: govet-printf\n")
}

func TestCLI_GuidelineFilter(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"positional", []string{"--guideline", "cwe-134"}},
		{"inline", []string{"--guideline=cwe-134"}},
		{"comma", []string{"--guideline=cwe-134,no-such-rule"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"--analyzers", "govet", "-o", "json"}, tt.args...)
			code, stdout, stderr := runCLI(t, args...)

			require.Equal(t, 0, code, stderr)
			assert.Equal(t, []string{"govet-printf"}, names(decodeJSON(t, stdout)))
		})
	}
}

func TestCLI_UnexpectedArguments(t *testing.T) {
	code, _, stderr := runCLI(t, "govet")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Unexpected arguments")
}

func TestCLI_CheckerConfig(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--checker-config", "--analyzers", "govet", "--details", "-o", "csv")

	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "option,description\n")
	assert.Contains(t, stdout, "govet:printf.funcs,")
}

func TestCLI_UnknownAnalyzer(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--analyzers", "gevet")

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Failed to get checkers for 'gevet' analyzer")
	assert.Contains(t, stderr, "Did you mean: govet")
}

func TestCLI_PartialAnalyzerFailure(t *testing.T) {
	code, stdout, stderr := runCLI(t, "--analyzers", "govet,nosuch", "-o", "json")

	assert.Equal(t, 0, code)
	assert.NotEmpty(t, decodeJSON(t, stdout))
	assert.Contains(t, stderr, "'nosuch'")
}

func TestCLI_InvalidOutput(t *testing.T) {
	code, stdout, stderr := runCLI(t, "-o", "xml")

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Invalid --output value")
}

func TestCLI_LabelsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "analyzers"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "descriptions.yaml"), []byte("profile:\n  default: d\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "analyzers", "govet.yaml"), []byte(
		"analyzer: govet\nlabels:\n  govet-shadow:\n    - profile:default\n"), 0o644))

	code, stdout, stderr := runCLI(t, "--labels", dir, "--analyzers", "govet", "--only-enabled", "-o", "json")

	require.Equal(t, 0, code, stderr)
	assert.Equal(t, []string{"govet-shadow"}, names(decodeJSON(t, stdout)))
}

func TestCLI_ConfigFileDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfgPath := filepath.Join(home, "custom.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("output = \"csv\"\nanalyzers = [\"govet\"]\n"), 0o644))

	var out, errOut bytes.Buffer
	code := execute([]string{"--config", cfgPath, "--only-enabled"}, &out, &errOut)

	require.Equal(t, 0, code, errOut.String())
	assert.True(t, strings.HasPrefix(out.String(), "name\n"))
	assert.Contains(t, out.String(), "govet-printf\n")
}

func TestPrintReport(t *testing.T) {
	registry := analyzers.NewRegistry(analyzers.Options{})
	report := &engine.Report{Errored: []analyzers.Failure{
		{Name: "clangsa", Err: analyzers.ErrUnavailable},
		{Name: "govett", Err: analyzers.ErrUnknownAnalyzer},
	}}

	var stderr bytes.Buffer
	printReport(&stderr, report, registry)

	out := stderr.String()
	assert.Contains(t, out, "Failed to get checkers for 'clangsa' analyzer")
	assert.Equal(t, 1, strings.Count(out, "Did you mean"), "only names that are not analyzers get suggestions")
	assert.Contains(t, out, "Did you mean: govet")

	stderr.Reset()
	printReport(&stderr, &engine.Report{}, registry)
	assert.Empty(t, stderr.String())
}

func TestValidateFlags(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want int
	}{
		{"defaults", Config{Verbose: "warn"}, -1},
		{"profile list with state", Config{Profile: "list", OnlyEnabled: true}, -1},
		{"both state filters", Config{OnlyEnabled: true, OnlyDisabled: true}, 1},
		{"profile with state", Config{Profile: "x", OnlyDisabled: true}, 1},
		{"args without guideline", Config{Args: []string{"a"}}, 1},
		{"args with guideline", Config{Args: []string{"a"}, GuidelineSet: true}, -1},
		{"bad output", Config{Output: "xml", OutputSet: true}, 1},
		{"bad verbose", Config{Verbose: "loud"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stderr bytes.Buffer
			assert.Equal(t, tt.want, validateFlags(&tt.cfg, &stderr))
		})
	}
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runCLIVersion(t, "pretty")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "checkers version "+version)
	assert.Contains(t, stdout, "Host:")

	code, stdout, _ = runCLIVersion(t, "json")
	require.Equal(t, 0, code)
	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, version, info["version"])
	assert.Contains(t, info, "host")

	code, _, stderr := runCLIVersion(t, "yaml")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Invalid --format")
}

func runCLIVersion(t *testing.T, format string) (int, string, string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := execute([]string{"version", "--format", format}, &out, &errOut)
	return code, out.String(), errOut.String()
}
