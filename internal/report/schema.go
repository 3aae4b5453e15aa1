// Package report renders assembled rows: an xlsx workbook for the
// spreadsheet output and go-pretty tables for terminal previews.
package report

import "github.com/x4tools/shipqueue/internal/assemble"

// MaterialSchemas fixes the material columns per sheet. These are
// display labels, not ware ids; rows carry labeled components and any
// material outside the sheet's schema is simply not shown there.
var MaterialSchemas = map[string][]string{
	"Engines": {
		"Energy Cells",
		"Engine Parts",
		"Antimatter Converters",
		"Computronic Substrate",
		"Metallic Microlattice",
		"Silicon Carbide",
	},
	"Thrusters": {
		"Energy Cells",
		"Engine Parts",
		"Antimatter Converters",
		"Computronic Substrate",
		"Metallic Microlattice",
		"Silicon Carbide",
	},
	"Shields": {
		"Energy Cells",
		"Shield Components",
		"Antimatter Converters",
		"Field Coils",
		"Computronic Substrate",
		"Metallic Microlattice",
		"Silicon Carbide",
	},
	"Weapons": {
		"Energy Cells",
		"Weapon Components",
		"Advanced Electronics",
		"Advanced Composites",
		"Computronic Substrate",
		"Metallic Microlattice",
		"Silicon Carbide",
		"Ore",
		"Silicon",
	},
	"Turrets": {
		"Energy Cells",
		"Turret Components",
		"Advanced Electronics",
		"Advanced Composites",
		"Computronic Substrate",
		"Metallic Microlattice",
		"Silicon Carbide",
		"Ore",
		"Silicon",
	},
	"Hulls": {
		"Energy Cells",
		"Hull Parts",
		"Computronic Substrate",
		"Metallic Microlattice",
		"Silicon Carbide",
		"Ore",
		"Silicon",
	},
}

// componentMap flattens a labeled component list into a summed lookup.
func componentMap(components []assemble.LabeledComponent) map[string]int {
	out := make(map[string]int, len(components))
	for _, c := range components {
		out[c.Label] += c.Amount
	}
	return out
}
