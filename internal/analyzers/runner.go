package analyzers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/ancients-collective/checkers/internal/hostenv"
)

// DefaultTimeout bounds every analyzer subprocess unless configured otherwise.
const DefaultTimeout = 10 * time.Second

// CommandRunner runs an external analyzer binary and returns its stdout.
type CommandRunner interface {
	Run(ctx context.Context, path string, args ...string) ([]byte, error)
}

// allowChecker is implemented by runners that only execute known binaries.
type allowChecker interface {
	IsAllowed(path string) bool
}

// checkAllowed rejects a binary the runner would refuse to execute, so a
// misconfigured path is reported when the analyzer is resolved.
func checkAllowed(runner CommandRunner, path string) error {
	if ac, ok := runner.(allowChecker); ok && !ac.IsAllowed(path) {
		return fmt.Errorf("%w: %s is not an allowed analyzer binary", ErrUnavailable, path)
	}
	return nil
}

// CommandSpec defines the constraints for an allowlisted command.
type CommandSpec struct {
	// AllowedFlags are the flags that can be passed, matched exactly.
	AllowedFlags []string

	// AllowedArgs are the permitted positional arguments (subcommands).
	AllowedArgs []string
}

// AllowlistRunner executes only pre-approved analyzer binaries with validated
// arguments. Binaries are identified by base name, so versioned installs such
// as clang-17 are accepted as clang. It never invokes a shell.
type AllowlistRunner struct {
	allowlist map[string]CommandSpec
	env       hostenv.Environment
	timeout   time.Duration
}

// NewAllowlistRunner creates a runner with the analyzer allowlist. Every
// subprocess receives env and is killed after timeout.
func NewAllowlistRunner(env hostenv.Environment, timeout time.Duration) *AllowlistRunner {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &AllowlistRunner{
		allowlist: map[string]CommandSpec{
			"clang": {AllowedFlags: []string{
				"-cc1",
				"--version",
				"-analyzer-checker-help",
				"-analyzer-checker-help-alpha",
				"-analyzer-checker-help-developer",
				"-analyzer-checker-option-help",
				"-analyzer-checker-option-help-alpha",
			}},
			"clang-tidy": {AllowedFlags: []string{
				"--version",
				"-list-checks",
				"-dump-config",
				"-checks=*",
			}},
			"diagtool": {AllowedArgs: []string{"tree"}},
		},
		env:     env,
		timeout: timeout,
	}
}

// IsAllowed checks whether the binary at path is in the allowlist.
func (r *AllowlistRunner) IsAllowed(path string) bool {
	_, ok := r.allowlist[commandName(path)]
	return ok
}

// Run executes an allowlisted binary. On a non-zero exit the error carries
// the first line of stderr.
func (r *AllowlistRunner) Run(ctx context.Context, path string, args ...string) ([]byte, error) {
	name := commandName(path)
	spec, ok := r.allowlist[name]
	if !ok {
		return nil, fmt.Errorf("command %q not in allowlist", path)
	}
	if err := validateArgs(spec, args); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, path, args...)
	if env := r.env.Environ(); len(env) > 0 {
		cmd.Env = env
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("command %q timed out after %v", name, r.timeout)
	}
	if err != nil {
		if msg := firstLine(stderr.String()); msg != "" {
			return output, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return output, fmt.Errorf("%s: %w", name, err)
	}
	return output, nil
}

// commandName maps a binary path to its allowlist key: "/usr/bin/clang-17"
// becomes "clang", "clang-tidy-17.exe" becomes "clang-tidy".
func commandName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), ".exe")
	if i := strings.LastIndexByte(base, '-'); i > 0 && isVersion(base[i+1:]) {
		base = base[:i]
	}
	return base
}

func isVersion(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && c != '.' {
			return false
		}
	}
	return true
}

// validateArgs checks that all arguments comply with the CommandSpec constraints.
func validateArgs(spec CommandSpec, args []string) error {
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			if !slices.Contains(spec.AllowedFlags, arg) {
				return fmt.Errorf("flag %q not allowed for this command (allowed: %s)",
					arg, strings.Join(spec.AllowedFlags, ", "))
			}
			continue
		}
		if !slices.Contains(spec.AllowedArgs, arg) {
			return fmt.Errorf("argument %q not allowed for this command", arg)
		}
	}
	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(line)
}
