package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/ancients-collective/checkers/internal/types"
)

var cBold = color.New(color.Bold).SprintFunc()

// RowsFormatter writes one "Column: value" block per row, blocks separated
// by a blank line unless Compact is set.
type RowsFormatter struct {
	Compact bool
}

// Write renders the table as key/value blocks.
func (f *RowsFormatter) Write(w io.Writer, t *types.Table) error {
	for i, row := range t.Rows {
		if i > 0 && !f.Compact {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		for j, cell := range row {
			name := ""
			if j < len(t.Header) {
				name = t.Header[j]
			}
			if _, err := fmt.Fprintf(w, "%s %s\n", cBold(name+":"), CellString(cell)); err != nil {
				return err
			}
		}
	}
	return nil
}
