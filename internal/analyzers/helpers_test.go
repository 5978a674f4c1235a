package analyzers

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ancients-collective/checkers/internal/hostenv"
)

// fakeRunner returns canned output keyed by "<command> <args...>".
type fakeRunner struct {
	outputs map[string]string
	errs    map[string]error
	calls   []string
}

func (f *fakeRunner) Run(_ context.Context, path string, args ...string) ([]byte, error) {
	key := strings.Join(append([]string{commandName(path)}, args...), " ")
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	out, ok := f.outputs[key]
	if !ok {
		return nil, errors.New("unexpected command: " + key)
	}
	return []byte(out), nil
}

// binDir creates a directory holding empty executables with the given names
// and returns an environment whose PATH is that directory.
func binDir(t *testing.T, names ...string) (string, hostenv.Environment) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("executable lookup differs on windows")
	}
	dir := t.TempDir()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"), 0o755))
	}
	return dir, hostenv.New([]string{"PATH=" + dir})
}
