// Package types defines shared type definitions used across all checkers packages.
package types

import (
	"fmt"
	"strings"
)

// KeyKind discriminates reserved label keys from custom ones.
type KeyKind uint8

const (
	// KeyCustom is any key without built-in meaning. A custom key whose name is
	// a guideline name carries rule IDs of that guideline.
	KeyCustom KeyKind = iota
	// KeyProfile assigns a checker to a named profile.
	KeyProfile
	// KeyGuideline declares coverage of a guideline as a whole.
	KeyGuideline
	// KeySeverity carries the checker's severity.
	KeySeverity
)

// LabelKey is the key half of a label fact: either one of the reserved keys
// or a custom key with an arbitrary name.
type LabelKey struct {
	kind KeyKind
	name string
}

// Reserved label keys.
var (
	ProfileKey   = LabelKey{kind: KeyProfile, name: "profile"}
	GuidelineKey = LabelKey{kind: KeyGuideline, name: "guideline"}
	SeverityKey  = LabelKey{kind: KeySeverity, name: "severity"}
)

var reservedKeys = map[string]LabelKey{
	ProfileKey.name:   ProfileKey,
	GuidelineKey.name: GuidelineKey,
	SeverityKey.name:  SeverityKey,
}

// CustomKey returns a custom label key. Reserved names yield the reserved key
// so that the same text never produces two distinct keys.
func CustomKey(name string) LabelKey {
	if k, ok := reservedKeys[name]; ok {
		return k
	}
	return LabelKey{kind: KeyCustom, name: name}
}

// ParseLabelKey maps a key name to its LabelKey.
func ParseLabelKey(name string) LabelKey {
	return CustomKey(name)
}

// Kind returns the key's kind.
func (k LabelKey) Kind() KeyKind { return k.kind }

// Name returns the key text as written in label files.
func (k LabelKey) Name() string { return k.name }

// IsReserved reports whether the key has built-in meaning.
func (k LabelKey) IsReserved() bool { return k.kind != KeyCustom }

func (k LabelKey) String() string { return k.name }

// Label is a single (key, value) fact attached to a checker.
type Label struct {
	Key   LabelKey
	Value string
}

func (l Label) String() string {
	return l.Key.name + ":" + l.Value
}

// ParseLabel parses "key:value". The string is split at the first colon, so
// values may themselves contain colons.
func ParseLabel(s string) (Label, error) {
	key, value, ok := strings.Cut(s, ":")
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if !ok || key == "" || value == "" {
		return Label{}, fmt.Errorf("invalid label %q (expected key:value)", s)
	}
	return Label{Key: ParseLabelKey(key), Value: value}, nil
}
