package hostenv

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironment_GetSet(t *testing.T) {
	env := New([]string{"PATH=/usr/bin", "HOME=/root"})

	assert.Equal(t, "/usr/bin", env.Get("PATH"))
	assert.Equal(t, "", env.Get("MISSING"))

	updated := env.Set("PATH", "/opt/bin")
	assert.Equal(t, "/opt/bin", updated.Get("PATH"))
	assert.Equal(t, "/usr/bin", env.Get("PATH"), "Set must not mutate the receiver")
	assert.Len(t, updated.Environ(), 2)
}

func TestEnvironment_Extend(t *testing.T) {
	sep := string(os.PathListSeparator)
	env := New([]string{"PATH=/usr/bin"})

	ext := env.Extend([]string{"/opt/llvm/bin", " "}, []string{"/opt/llvm/lib"})

	assert.Equal(t, "/opt/llvm/bin"+sep+"/usr/bin", ext.Get("PATH"))
	assert.Equal(t, "/opt/llvm/lib", ext.Get("LD_LIBRARY_PATH"))
}

func TestEnvironment_ExtendNothing(t *testing.T) {
	env := New([]string{"PATH=/usr/bin"})

	ext := env.Extend(nil, []string{""})

	assert.Equal(t, env.Environ(), ext.Environ())
}

func TestEnvironment_LookPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("executable bit semantics differ on windows")
	}
	dir := t.TempDir()
	bin := filepath.Join(dir, "clang")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notexec"), []byte("x"), 0o644))

	env := New([]string{"PATH=" + dir})

	got, err := env.LookPath("clang")
	require.NoError(t, err)
	assert.Equal(t, bin, got)

	got, err = env.LookPath(bin)
	require.NoError(t, err)
	assert.Equal(t, bin, got)

	_, err = env.LookPath("notexec")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.LookPath("")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEnvironment_FromOS(t *testing.T) {
	env := FromOS()
	assert.True(t, strings.Contains(strings.Join(env.Environ(), "\n"), "="))
}
