package hostenv

import (
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// HostInfo describes the machine the analyzers run on.
type HostInfo struct {
	// OS is the operating system identifier (e.g., "linux", "darwin").
	OS string `json:"os"`

	// Arch is the CPU architecture (e.g., "amd64", "arm64").
	Arch string `json:"arch"`

	// Platform is the distribution or product name (e.g., "ubuntu").
	Platform string `json:"platform,omitempty"`

	// PlatformVersion is the distribution version (e.g., "22.04").
	PlatformVersion string `json:"platform_version,omitempty"`

	// Family is the platform family (e.g., "debian", "rhel").
	Family string `json:"family,omitempty"`

	// KernelVersion is the kernel release string.
	KernelVersion string `json:"kernel_version,omitempty"`

	// Hostname is the system hostname.
	Hostname string `json:"hostname,omitempty"`
}

// Detector abstracts host detection so callers can substitute a fake.
type Detector interface {
	DetectHost() (HostInfo, error)
}

// GopsutilDetector reads host information through gopsutil.
type GopsutilDetector struct{}

// NewDetector returns the gopsutil-backed detector.
func NewDetector() Detector {
	return &GopsutilDetector{}
}

// DetectHost returns the host platform as reported by gopsutil.
func (d *GopsutilDetector) DetectHost() (HostInfo, error) {
	info, err := host.Info()
	if err != nil {
		return HostInfo{}, err
	}
	return HostInfo{
		OS:              runtime.GOOS,
		Arch:            runtime.GOARCH,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		Family:          info.PlatformFamily,
		KernelVersion:   info.KernelVersion,
		Hostname:        info.Hostname,
	}, nil
}

// Detect runs the detector and never fails: when detection errors, the
// runtime OS/arch are returned along with a warning.
func Detect(d Detector) (HostInfo, []string) {
	info, err := d.DetectHost()
	if err != nil {
		fallback := HostInfo{OS: runtime.GOOS, Arch: runtime.GOARCH}
		if h, herr := os.Hostname(); herr == nil {
			fallback.Hostname = h
		}
		return fallback, []string{fmt.Sprintf("host detection failed: %v", err)}
	}
	if info.OS == "" {
		info.OS = runtime.GOOS
	}
	if info.Arch == "" {
		info.Arch = runtime.GOARCH
	}
	return info, nil
}

// String renders a one-line platform summary, e.g. "linux/amd64 ubuntu 22.04 (debian)".
func (h HostInfo) String() string {
	s := h.OS + "/" + h.Arch
	if h.Platform != "" {
		s += " " + h.Platform
		if h.PlatformVersion != "" {
			s += " " + h.PlatformVersion
		}
	}
	if h.Family != "" && h.Family != h.Platform {
		s += " (" + h.Family + ")"
	}
	return s
}
