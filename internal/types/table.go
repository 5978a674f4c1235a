package types

// Table is a query result ready for rendering: ordered column names plus rows.
//
// Cells hold typed values so each output format can choose its own
// representation. Supported cell types are string, CheckerState, Severity,
// GuidelineCoverage and []string.
type Table struct {
	Header []string
	Rows   [][]any
}

// NewTable returns an empty table with the given header.
func NewTable(header ...string) *Table {
	return &Table{Header: header, Rows: [][]any{}}
}

// Append adds a row. The number of cells must match the header.
func (t *Table) Append(cells ...any) {
	t.Rows = append(t.Rows, cells)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}
