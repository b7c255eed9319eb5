package tui

import (
	"fmt"
	"strconv"

	table "github.com/charmbracelet/bubbles/table"

	"chartui/internal/chart"
)

// dataTable lays out chart data with one row per value index and one column
// per group. Point groups contribute their y value.
func dataTable(d *chart.Data, f chart.Formatter) ([]string, [][]string) {
	if d == nil || len(d.Groups) == 0 {
		return nil, nil
	}
	cols := []string{"label"}
	n := 0
	for i, g := range d.Groups {
		name := g.GroupName
		if name == "" {
			name = "group " + strconv.Itoa(i+1)
		}
		cols = append(cols, name)
		n = max(n, g.Len())
	}
	labels := d.AxisLabels(0)
	rows := make([][]string, 0, n)
	for i := range n {
		label := strconv.Itoa(i + 1)
		if i < len(labels) && labels[i] != "" {
			label = labels[i]
		}
		row := []string{label}
		for _, g := range d.Groups {
			switch {
			case i >= g.Len():
				row = append(row, "")
			case len(g.Points) > 0:
				p := g.Points[i]
				row = append(row, fmt.Sprintf("(%s, %s)", f.Format(p.X), f.Format(p.Y)))
			default:
				row = append(row, f.Format(g.Values[i]))
			}
		}
		rows = append(rows, row)
	}
	return cols, rows
}

// refreshTable rebuilds the table from the loaded chart.
func (m *Model) refreshTable() {
	cols, rows := dataTable(m.chart.Data(), m.chart.Context().Format)
	if len(cols) == 0 || len(rows) == 0 {
		m.showData = false
		m.status = "no data for current chart"
		return
	}
	tcols := make([]table.Column, 0, len(cols)+1)
	tcols = append(tcols, table.Column{Title: "#", Width: 4})
	for _, c := range cols {
		tcols = append(tcols, table.Column{Title: c, Width: min(len(c)+6, 24)})
	}
	trows := make([]table.Row, 0, len(rows))
	for i, r := range rows {
		trows = append(trows, table.Row(append([]string{strconv.Itoa(i + 1)}, r...)))
	}
	// columns and rows must agree in width while either is being replaced
	m.tbl.SetRows(nil)
	m.tbl.SetColumns(tcols)
	m.tbl.SetRows(trows)
}
