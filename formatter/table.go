package formatter

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/gnoswap-labs/boolex/internal/table"
)

// RenderTable writes t as a grid: one column per input bit, then one per
// header, row 0 first.
func RenderTable(w io.Writer, t *table.Table) error {
	grid := tablewriter.NewTable(w, tablewriter.WithHeaderAutoFormat(tw.Off))

	head := make([]string, 0, len(t.Inputs)+len(t.Headers))
	head = append(head, t.Inputs...)
	head = append(head, t.Headers...)
	grid.Header(head)

	for i, row := range t.Rows {
		cells := make([]string, 0, len(head))
		for _, bit := range row {
			cells = append(cells, string(bit))
		}
		for _, v := range t.Output[i] {
			cells = append(cells, string(rune('0'+v)))
		}
		if err := grid.Append(cells); err != nil {
			return err
		}
	}
	return grid.Render()
}
