package output

import (
	"encoding/csv"
	"io"

	"github.com/ancients-collective/checkers/internal/types"
)

// CSVFormatter writes RFC 4180 CSV with a normalized header line.
type CSVFormatter struct{}

// Write renders the table as CSV.
func (f *CSVFormatter) Write(w io.Writer, t *types.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(NormalizeHeader(t.Header)); err != nil {
		return err
	}
	for _, row := range t.Rows {
		record := make([]string, len(row))
		for i, c := range row {
			record[i] = CellString(c)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
