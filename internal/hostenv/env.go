// Package hostenv builds the environment analyzer subprocesses run in and
// detects the host platform.
package hostenv

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrNotFound is returned by LookPath when no executable matches.
var ErrNotFound = errors.New("executable file not found in PATH")

// Environment is an immutable list of KEY=VALUE pairs passed to analyzer
// subprocesses.
type Environment struct {
	vars []string
}

// FromOS captures the current process environment.
func FromOS() Environment {
	return New(os.Environ())
}

// New wraps the given KEY=VALUE pairs. The slice is copied.
func New(vars []string) Environment {
	return Environment{vars: append([]string(nil), vars...)}
}

// Get returns the value of key, or "" when unset.
func (e Environment) Get(key string) string {
	prefix := key + "="
	for i := len(e.vars) - 1; i >= 0; i-- {
		if strings.HasPrefix(e.vars[i], prefix) {
			return strings.TrimPrefix(e.vars[i], prefix)
		}
	}
	return ""
}

// Set returns a copy of the environment with key set to value.
func (e Environment) Set(key, value string) Environment {
	prefix := key + "="
	out := make([]string, 0, len(e.vars)+1)
	for _, kv := range e.vars {
		if !strings.HasPrefix(kv, prefix) {
			out = append(out, kv)
		}
	}
	out = append(out, prefix+value)
	return Environment{vars: out}
}

// Extend returns a copy with pathExtra prepended to PATH and ldExtra
// prepended to LD_LIBRARY_PATH. Empty entries are ignored.
func (e Environment) Extend(pathExtra, ldExtra []string) Environment {
	out := e
	if p := joinNonEmpty(pathExtra); p != "" {
		out = out.Set("PATH", prependList(p, out.Get("PATH")))
	}
	if p := joinNonEmpty(ldExtra); p != "" {
		out = out.Set("LD_LIBRARY_PATH", prependList(p, out.Get("LD_LIBRARY_PATH")))
	}
	return out
}

// Environ returns the KEY=VALUE pairs.
func (e Environment) Environ() []string {
	return append([]string(nil), e.vars...)
}

// LookPath searches this environment's PATH (not the process PATH) for an
// executable named name. Names containing a path separator are checked as-is.
func (e Environment) LookPath(name string) (string, error) {
	if name == "" {
		return "", ErrNotFound
	}
	if strings.ContainsRune(name, os.PathSeparator) {
		if isExecutable(name) {
			return name, nil
		}
		return "", &fs.PathError{Op: "lookpath", Path: name, Err: ErrNotFound}
	}

	for _, dir := range filepath.SplitList(e.Get("PATH")) {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if runtime.GOOS == "windows" && filepath.Ext(candidate) == "" {
			candidate += ".exe"
		}
		if isExecutable(candidate) {
			return candidate, nil
		}
	}
	return "", &fs.PathError{Op: "lookpath", Path: name, Err: ErrNotFound}
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0o111 != 0
}

func joinNonEmpty(parts []string) string {
	var kept []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, string(os.PathListSeparator))
}

func prependList(head, tail string) string {
	if tail == "" {
		return head
	}
	return head + string(os.PathListSeparator) + tail
}
