package report

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/x4tools/shipqueue/internal/assemble"
)

// PreviewEquipment renders one category's rows as a terminal table.
// limit <= 0 means all rows.
func PreviewEquipment(w io.Writer, category string, rows []assemble.EquipmentRow, limit int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle(category)
	t.AppendHeader(table.Row{"Source", "ID", "Name", "Race", "Size", "Mk", "Avg Price", "Build Time"})

	shown := rows
	if limit > 0 && len(rows) > limit {
		shown = rows[:limit]
	}
	for _, r := range shown {
		t.AppendRow(table.Row{
			r.Source, r.ID, r.Name, r.Race, r.Size, r.Mark,
			r.PriceAvg, fmt.Sprintf("%.0fs", r.BuildTime),
		})
	}
	t.Render()
	if len(shown) < len(rows) {
		_, _ = fmt.Fprintf(w, "(%d of %d rows)\n", len(shown), len(rows))
	} else {
		_, _ = fmt.Fprintf(w, "(%d rows)\n", len(rows))
	}
}

// PreviewHulls renders hull rows as a terminal table.
func PreviewHulls(w io.Writer, rows []assemble.HullRow, limit int) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.SetTitle("Hulls")
	t.AppendHeader(table.Row{"Source", "Name", "Faction", "Size", "Role", "Variant", "Crew", "Hull", "Avg Price"})

	shown := rows
	if limit > 0 && len(rows) > limit {
		shown = rows[:limit]
	}
	for _, r := range shown {
		t.AppendRow(table.Row{
			r.Source, r.Name, r.Faction, r.Size, r.Role, r.Variant,
			r.Crew, r.HullPoints, r.PriceAvg,
		})
	}
	t.Render()
	if len(shown) < len(rows) {
		_, _ = fmt.Fprintf(w, "(%d of %d rows)\n", len(shown), len(rows))
	} else {
		_, _ = fmt.Fprintf(w, "(%d rows)\n", len(rows))
	}
}
