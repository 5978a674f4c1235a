package analyzers

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/ancients-collective/checkers/internal/hostenv"
)

// helpEntry is one name/description pair from a clang help listing.
type helpEntry struct {
	Name        string
	Description string
}

// parseHelpPage extracts the two-column listing following the section
// header (e.g. "CHECKERS:" or "OPTIONS:"). Entries are indented by two
// spaces; a name too long for the first column puts its description on the
// following, deeper-indented lines, which are joined with single spaces.
func parseHelpPage(out []byte, section string) []helpEntry {
	var entries []helpEntry
	inSection := false

	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if !inSection {
			inSection = strings.TrimSpace(line) == section
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}

		indent := len(line) - len(strings.TrimLeft(line, " \t"))
		switch {
		case indent == 0:
			// Next top-level header ends the section.
			return entries
		case indent <= 2:
			fields := strings.Fields(line)
			entry := helpEntry{Name: fields[0]}
			if len(fields) > 1 {
				entry.Description = strings.Join(fields[1:], " ")
			}
			entries = append(entries, entry)
		case len(entries) > 0:
			last := &entries[len(entries)-1]
			text := strings.Join(strings.Fields(line), " ")
			if last.Description == "" {
				last.Description = text
			} else {
				last.Description += " " + text
			}
		}
	}
	return entries
}

// locate resolves an analyzer binary. An explicit path or name wins over the
// default name; both are searched in the analyzer environment's PATH.
func locate(env hostenv.Environment, explicit, name string) (string, error) {
	target := name
	if explicit != "" {
		target = explicit
	}
	path, err := env.LookPath(target)
	if err != nil {
		return "", fmt.Errorf("%w: %s not found: %v", ErrUnavailable, target, err)
	}
	return path, nil
}
