package output

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/ancients-collective/checkers/internal/types"
)

// JSONFormatter writes the table as a JSON array of objects keyed by the
// normalized header, keys in column order.
type JSONFormatter struct{}

// record is one row whose keys keep column order when marshaled.
type record struct {
	keys   []string
	values []any
}

func (r record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Write renders the table as pretty-printed JSON. Checker states become
// booleans, rows without a state get null.
func (f *JSONFormatter) Write(w io.Writer, t *types.Table) error {
	keys := NormalizeHeader(t.Header)
	records := make([]record, 0, len(t.Rows))
	for _, row := range t.Rows {
		values := make([]any, len(row))
		for i, c := range row {
			values[i] = jsonValue(c)
		}
		records = append(records, record{keys: keys[:min(len(keys), len(values))], values: values})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(records)
}

func jsonValue(v any) any {
	switch c := v.(type) {
	case types.CheckerState:
		if c == types.StateNone {
			return nil
		}
		return c.Enabled()
	case types.Severity:
		return string(c)
	case types.GuidelineCoverage:
		m := make(map[string][]string, len(c))
		for k, rules := range c {
			m[k] = append([]string{}, rules...)
		}
		return m
	case []string:
		if c == nil {
			return []string{}
		}
		return c
	}
	return v
}
