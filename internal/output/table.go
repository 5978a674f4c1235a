package output

import (
	"bufio"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ancients-collective/checkers/internal/types"
)

// columnGap separates table columns.
const columnGap = "  "

// TableFormatter writes aligned columns framed by dashed rules.
type TableFormatter struct{}

// Write renders the header, a rule, the rows and a closing rule. Column
// widths are measured in terminal cells so wide characters stay aligned.
func (f *TableFormatter) Write(w io.Writer, t *types.Table) error {
	cells := make([][]string, 0, len(t.Rows)+1)
	cells = append(cells, t.Header)
	for _, row := range t.Rows {
		line := make([]string, len(row))
		for i, c := range row {
			line[i] = CellString(c)
		}
		cells = append(cells, line)
	}

	widths := columnWidths(cells)
	total := 0
	for i, wd := range widths {
		if i > 0 {
			total += len(columnGap)
		}
		total += wd
	}
	rule := strings.Repeat("-", total)

	bw := bufio.NewWriter(w)
	writeLine(bw, cells[0], widths)
	bw.WriteString(rule + "\n")
	for _, line := range cells[1:] {
		writeLine(bw, line, widths)
	}
	bw.WriteString(rule + "\n")
	return bw.Flush()
}

func columnWidths(cells [][]string) []int {
	var widths []int
	for _, line := range cells {
		for i, c := range line {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			if wd := runewidth.StringWidth(c); wd > widths[i] {
				widths[i] = wd
			}
		}
	}
	return widths
}

func writeLine(bw *bufio.Writer, line []string, widths []int) {
	var sb strings.Builder
	for i, c := range line {
		if i > 0 {
			sb.WriteString(columnGap)
		}
		sb.WriteString(runewidth.FillRight(c, widths[i]))
	}
	bw.WriteString(strings.TrimRight(sb.String(), " ") + "\n")
}
