// Package assemble joins matched records into output rows: hull rows
// from (archetype, macro, production) triples and equipment rows from
// (ware, production) pairs.
package assemble

import (
	"github.com/x4tools/shipqueue/internal/economy"
)

// materialLabels maps material ware ids to report column labels.
// Unknown ids pass through as their raw identifier.
var materialLabels = map[string]string{
	"energycells":          "Energy Cells",
	"hullparts":            "Hull Parts",
	"engineparts":          "Engine Parts",
	"antimatterconverters": "Antimatter Converters",
	"shieldcomponents":     "Shield Components",
	"fieldcoils":           "Field Coils",
	"weaponcomponents":     "Weapon Components",
	"turretcomponents":     "Turret Components",
	"advancedelectronics":  "Advanced Electronics",
	"advancedcomposites":   "Advanced Composites",
	"computronicsubstrate": "Computronic Substrate",
	"metallicmicrolattice": "Metallic Microlattice",
	"siliconcarbide":       "Silicon Carbide",
	"ore":                  "Ore",
	"silicon":              "Silicon",
}

// MaterialLabel resolves a material ware id to its display label.
func MaterialLabel(wareID string) string {
	if label, ok := materialLabels[wareID]; ok {
		return label
	}
	return wareID
}

// LabeledComponent is one material requirement with its display label.
type LabeledComponent struct {
	Label  string
	Amount int
}

// labelComponents converts a production component list, merging any
// materials that map to the same label.
func labelComponents(components []economy.Component) []LabeledComponent {
	index := make(map[string]int, len(components))
	var out []LabeledComponent
	for _, c := range components {
		label := MaterialLabel(c.Ware)
		if i, ok := index[label]; ok {
			out[i].Amount += c.Amount
			continue
		}
		index[label] = len(out)
		out = append(out, LabeledComponent{Label: label, Amount: c.Amount})
	}
	return out
}

// sizeRank orders size classes S < M < L < XL; unknown sizes sort last.
func sizeRank(size string) int {
	switch size {
	case "S":
		return 0
	case "M":
		return 1
	case "L":
		return 2
	case "XL":
		return 3
	}
	return 99
}

// sourceRank orders provenance: base before any named overlay.
func sourceRank(source string) int {
	if source == "base" {
		return 0
	}
	return 1
}
