package labels

import (
	"testing"
)

// FuzzParseLabelFile exercises the label file parser with random bytes to
// ensure it never panics and never returns facts alongside an error.
func FuzzParseLabelFile(f *testing.F) {
	f.Add([]byte(validGovetLabels))
	f.Add([]byte{})
	f.Add([]byte(`{{{invalid yaml---`))
	f.Add([]byte("analyzer: govet\nlabels:\n  x:\n    - severity:\n"))
	f.Add([]byte("analyzer: govet\nlabels:\n  x:\n    - a:b:c\n"))

	l := NewLoader(nil)

	f.Fuzz(func(t *testing.T, data []byte) {
		facts, err := l.parse(data)
		if err != nil && facts != nil {
			t.Errorf("parse returned facts and error %v", err)
		}
		for checker, labels := range facts {
			if len(labels) == 0 {
				t.Errorf("checker %q loaded with no labels", checker)
			}
		}
	})
}
