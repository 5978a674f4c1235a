package hostenv

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockDetector is a configurable Detector for testing the fallback logic.
type mockDetector struct {
	info HostInfo
	err  error
}

func (m *mockDetector) DetectHost() (HostInfo, error) { return m.info, m.err }

func TestDetect_Success(t *testing.T) {
	d := &mockDetector{info: HostInfo{
		OS: "linux", Arch: "amd64", Platform: "ubuntu", PlatformVersion: "22.04", Family: "debian",
	}}

	info, warnings := Detect(d)

	assert.Empty(t, warnings)
	assert.Equal(t, "ubuntu", info.Platform)
	assert.Equal(t, "linux/amd64 ubuntu 22.04 (debian)", info.String())
}

func TestDetect_FailureFallsBackToRuntime(t *testing.T) {
	d := &mockDetector{err: errors.New("boom")}

	info, warnings := Detect(d)

	assert.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "boom")
	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, runtime.GOARCH, info.Arch)
}

func TestDetect_FillsMissingOSArch(t *testing.T) {
	info, _ := Detect(&mockDetector{info: HostInfo{Platform: "alpine"}})

	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, runtime.GOARCH, info.Arch)
}

func TestHostInfo_String(t *testing.T) {
	tests := []struct {
		info HostInfo
		want string
	}{
		{HostInfo{OS: "darwin", Arch: "arm64"}, "darwin/arm64"},
		{HostInfo{OS: "linux", Arch: "amd64", Platform: "alpine", Family: "alpine"}, "linux/amd64 alpine"},
		{HostInfo{OS: "linux", Arch: "amd64", Platform: "rocky", PlatformVersion: "9", Family: "rhel"}, "linux/amd64 rocky 9 (rhel)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.String())
		})
	}
}

func TestGopsutilDetector_DoesNotPanic(t *testing.T) {
	info, _ := Detect(NewDetector())
	assert.NotEmpty(t, info.OS)
}
