// Package output provides formatters that render listing tables in different formats.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ancients-collective/checkers/internal/types"
)

// Format names an output format.
type Format string

// Supported formats.
const (
	FormatRows  Format = "rows"
	FormatTable Format = "table"
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
)

// Formats lists every supported format in help order.
var Formats = []Format{FormatRows, FormatTable, FormatCSV, FormatJSON}

// Formatter writes a table to the given writer.
type Formatter interface {
	Write(w io.Writer, t *types.Table) error
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid output format %q (valid: %s)", s, formatList())
}

// New returns the formatter for f.
func New(f Format) (Formatter, error) {
	switch f {
	case FormatRows:
		return &RowsFormatter{}, nil
	case FormatTable:
		return &TableFormatter{}, nil
	case FormatCSV:
		return &CSVFormatter{}, nil
	case FormatJSON:
		return &JSONFormatter{}, nil
	}
	return nil, fmt.Errorf("invalid output format %q (valid: %s)", f, formatList())
}

// NormalizeHeader lower-cases column names and replaces each run of spaces
// with a single underscore, e.g. "Profile name" becomes "profile_name".
// Normalizing an already normalized header is a no-op.
func NormalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		out[i] = strings.Join(strings.Fields(strings.ToLower(h)), "_")
	}
	return out
}

// CellString renders a cell for the text-based formats. Checker states
// become "+" or "-", rows without a state stay empty.
func CellString(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case types.CheckerState:
		switch c {
		case types.StateEnabled:
			return "+"
		case types.StateDisabled:
			return "-"
		}
		return ""
	case types.Severity:
		return string(c)
	case types.GuidelineCoverage:
		return c.String()
	case []string:
		return strings.Join(c, ", ")
	case fmt.Stringer:
		return c.String()
	}
	return fmt.Sprint(v)
}

func formatList() string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
