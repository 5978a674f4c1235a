package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ancients-collective/checkers/internal/hostenv"
)

// versionInfo is the payload of "checkers version --format json".
type versionInfo struct {
	Version string           `json:"version"`
	Go      string           `json:"go"`
	Host    hostenv.HostInfo `json:"host"`
}

func newVersionCmd(stdout, stderr io.Writer, code *int) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version and host platform information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			*code = printVersion(format, hostenv.NewDetector(), stdout, stderr)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", "pretty", "Output format: pretty, json")
	return cmd
}

// printVersion writes the version report and returns an exit code.
func printVersion(format string, detector hostenv.Detector, stdout, stderr io.Writer) int {
	if format != "pretty" && format != "json" {
		fmt.Fprintf(stderr, "  %s Invalid --format value %q (must be pretty or json)\n", iconError(), format)
		return 1
	}

	host, warnings := hostenv.Detect(detector)
	for _, w := range warnings {
		fmt.Fprintf(stderr, "  %s %s\n", iconWarn(), w)
	}
	info := versionInfo{Version: version, Go: runtime.Version(), Host: host}

	if format == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(info); err != nil {
			fmt.Fprintf(stderr, "  %s Failed to write output: %v\n", iconError(), err)
			return 1
		}
		return 0
	}

	fmt.Fprintf(stdout, "checkers version %s\n", info.Version)
	fmt.Fprintf(stdout, "  Go:   %s\n", info.Go)
	fmt.Fprintf(stdout, "  Host: %s\n", info.Host)
	if info.Host.KernelVersion != "" {
		fmt.Fprintf(stdout, "  Kernel: %s\n", info.Host.KernelVersion)
	}
	return 0
}
