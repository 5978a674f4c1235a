// Package labels holds the declarative checker label facts and the
// human-readable descriptions of well-known label values.
package labels

import (
	"sort"

	"github.com/ancients-collective/checkers/internal/types"
)

// DefaultProfile is the profile whose members are enabled out of the box.
const DefaultProfile = "default"

// Store is a read-only index of (checker, key, value) facts. It is built once
// at process start and never mutated afterwards.
type Store struct {
	labels       map[string][]types.Label
	descriptions map[string]map[string]string
	occurring    map[string]map[string]struct{}
}

// NewStore indexes the given facts and descriptions. The inputs are copied.
// Descriptions are keyed by label key name, then by value.
func NewStore(labels map[string][]types.Label, descriptions map[string]map[string]string) *Store {
	s := &Store{
		labels:       make(map[string][]types.Label, len(labels)),
		descriptions: make(map[string]map[string]string, len(descriptions)),
		occurring:    make(map[string]map[string]struct{}),
	}

	for checker, facts := range labels {
		s.labels[checker] = append([]types.Label(nil), facts...)
		for _, l := range facts {
			values, ok := s.occurring[l.Key.Name()]
			if !ok {
				values = make(map[string]struct{})
				s.occurring[l.Key.Name()] = values
			}
			values[l.Value] = struct{}{}
		}
	}

	for key, values := range descriptions {
		m := make(map[string]string, len(values))
		for v, text := range values {
			m[v] = text
		}
		s.descriptions[key] = m
	}

	return s
}

// LabelsOf returns the checker's facts in declaration order. A checker
// without facts yields an empty slice.
func (s *Store) LabelsOf(checker string) []types.Label {
	facts := s.labels[checker]
	if len(facts) == 0 {
		return []types.Label{}
	}
	return append([]types.Label(nil), facts...)
}

// DescriptionOf returns value → description for the key. Unknown keys yield
// an empty map.
func (s *Store) DescriptionOf(key types.LabelKey) map[string]string {
	src := s.descriptions[key.Name()]
	out := make(map[string]string, len(src))
	for v, text := range src {
		out[v] = text
	}
	return out
}

// ValuesOccurring returns the sorted set of values actually present for the
// key across all checkers.
func (s *Store) ValuesOccurring(key types.LabelKey) []string {
	values := s.occurring[key.Name()]
	out := make([]string, 0, len(values))
	for v := range values {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// HasValue reports whether the checker carries the fact key=value.
func (s *Store) HasValue(checker string, key types.LabelKey, value string) bool {
	for _, l := range s.labels[checker] {
		if l.Key == key && l.Value == value {
			return true
		}
	}
	return false
}

// Severity returns the checker's severity, or UNSPECIFIED when it has no
// valid severity label. The first severity label wins.
func (s *Store) Severity(checker string) types.Severity {
	for _, l := range s.labels[checker] {
		if l.Key == types.SeverityKey {
			if sev, ok := types.ParseSeverity(l.Value); ok {
				return sev
			}
		}
	}
	return types.SeverityUnspecified
}

// Profiles returns the described profile names in sorted order.
func (s *Store) Profiles() []string {
	return sortedKeys(s.descriptions[types.ProfileKey.Name()])
}

// HasProfile reports whether name is a described profile.
func (s *Store) HasProfile(name string) bool {
	_, ok := s.descriptions[types.ProfileKey.Name()][name]
	return ok
}

// Checkers returns every checker that has at least one fact, sorted.
func (s *Store) Checkers() []string {
	names := make([]string, 0, len(s.labels))
	for name := range s.labels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
