package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/x4tools/shipqueue/internal/assemble"
)

// WorkbookOptions controls optional workbook content.
type WorkbookOptions struct {
	// IncludeAllEquipment adds an All_Equipment sheet with every
	// category concatenated under the widest (Weapons) schema.
	IncludeAllEquipment bool
}

// WriteWorkbook writes the full report workbook: one sheet per
// equipment category, the optional combined sheet, then Hulls.
func WriteWorkbook(
	path string,
	equipment map[string][]assemble.EquipmentRow,
	hulls []assemble.HullRow,
	opts WorkbookOptions,
) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for _, category := range assemble.Categories {
		if err := writeEquipmentSheet(f, category, category, equipment[category]); err != nil {
			return err
		}
	}

	if opts.IncludeAllEquipment {
		var all []assemble.EquipmentRow
		for _, category := range assemble.Categories {
			all = append(all, equipment[category]...)
		}
		// The combined sheet borrows the Weapons schema: it is the
		// widest and covers every material the other categories use.
		if err := writeEquipmentSheet(f, "All_Equipment", "Weapons", all); err != nil {
			return err
		}
	}

	if err := writeHullSheet(f, hulls); err != nil {
		return err
	}

	// Drop the workbook's default sheet last; a workbook must always
	// hold at least one sheet.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

func writeEquipmentSheet(f *excelize.File, sheet, schemaKey string, rows []assemble.EquipmentRow) error {
	materials, ok := MaterialSchemas[schemaKey]
	if !ok {
		return fmt.Errorf("no material schema for %q", schemaKey)
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	headers := append([]string{
		"Source", "Equipment ID", "Equipment Name", "Race", "Size", "Mk",
	}, materials...)
	if err := writeRow(f, sheet, 1, toCells(headers)); err != nil {
		return err
	}

	for i, r := range rows {
		cells := []any{r.Source, r.ID, r.Name, r.Race, r.Size, r.Mark}
		comp := componentMap(r.Components)
		for _, mat := range materials {
			if amount, ok := comp[mat]; ok {
				cells = append(cells, amount)
			} else {
				cells = append(cells, "")
			}
		}
		if err := writeRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}

	return finishSheet(f, sheet, len(headers), len(rows)+1, headers, rows)
}

func writeHullSheet(f *excelize.File, rows []assemble.HullRow) error {
	const sheet = "Hulls"
	materials := MaterialSchemas[sheet]
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", sheet, err)
	}

	headers := append([]string{
		"Source", "macro_id", "Hull ID", "Hull Name", "Faction", "Size",
		"Role", "Variant", "Crew", "Hull Points",
		"Engines", "Shields", "Weapons", "Turrets M", "Turrets L",
		"Price Min", "Price Avg", "Price Max", "Build Time",
	}, materials...)
	if err := writeRow(f, sheet, 1, toCells(headers)); err != nil {
		return err
	}

	for i, r := range rows {
		cells := []any{
			r.Source, r.MacroID, r.ShipID, r.Name, r.Faction, r.Size,
			r.Role, r.Variant, r.Crew, r.HullPoints,
			r.Slots.Engines, r.Slots.Shields, r.Slots.Weapons,
			r.Slots.TurretM, r.Slots.TurretL,
			r.PriceMin, r.PriceAvg, r.PriceMax, r.BuildTime,
		}
		comp := componentMap(r.Components)
		for _, mat := range materials {
			if amount, ok := comp[mat]; ok {
				cells = append(cells, amount)
			} else {
				cells = append(cells, "")
			}
		}
		if err := writeRow(f, sheet, i+2, cells); err != nil {
			return err
		}
	}

	return finishHullSheet(f, sheet, headers, rows)
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// finishSheet applies the shared sheet chrome: frozen header row,
// autofilter over the used range, approximate column auto-fit.
func finishSheet(f *excelize.File, sheet string, cols, usedRows int, headers []string, rows []assemble.EquipmentRow) error {
	widths := headerWidths(headers)
	for _, r := range rows {
		fitWidth(widths, 0, r.Source)
		fitWidth(widths, 1, r.ID)
		fitWidth(widths, 2, r.Name)
	}
	return applyChrome(f, sheet, cols, usedRows, widths)
}

func finishHullSheet(f *excelize.File, sheet string, headers []string, rows []assemble.HullRow) error {
	widths := headerWidths(headers)
	for _, r := range rows {
		fitWidth(widths, 0, r.Source)
		fitWidth(widths, 1, r.MacroID)
		fitWidth(widths, 2, r.ShipID)
		fitWidth(widths, 3, r.Name)
	}
	return applyChrome(f, sheet, len(headers), len(rows)+1, widths)
}

func headerWidths(headers []string) []float64 {
	widths := make([]float64, len(headers))
	for i, h := range headers {
		widths[i] = float64(len(h))
	}
	return widths
}

func fitWidth(widths []float64, col int, value string) {
	if w := float64(len(value)); w > widths[col] {
		widths[col] = w
	}
}

func applyChrome(f *excelize.File, sheet string, cols, usedRows int, widths []float64) error {
	if err := f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header on %s: %w", sheet, err)
	}

	last, err := excelize.CoordinatesToCellName(cols, usedRows)
	if err != nil {
		return err
	}
	if err := f.AutoFilter(sheet, "A1:"+last, nil); err != nil {
		return fmt.Errorf("autofilter on %s: %w", sheet, err)
	}

	for i, w := range widths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, name, name, w+2); err != nil {
			return fmt.Errorf("column width on %s: %w", sheet, err)
		}
	}
	return nil
}
