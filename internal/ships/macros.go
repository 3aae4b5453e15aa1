package ships

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/x4tools/shipqueue/internal/gamedata"
	"github.com/x4tools/shipqueue/internal/match"
)

// SlotCounts are the hardpoint totals derived from a hull's component
// connection points.
type SlotCounts struct {
	Engines int
	Shields int
	Weapons int
	TurretM int
	TurretL int
}

// HullMacro is one physical ship hull definition.
type HullMacro struct {
	Source         string
	MacroID        string
	DisplayNameRaw string // human string or an unresolved "{page,id}" reference
	Crew           int
	HullPoints     int
	Slots          SlotCounts
}

// Tokens returns the macro's normalized token set.
func (m *HullMacro) Tokens() match.Set {
	return match.Normalize(match.Tokenize(m.MacroID))
}

// nonHullMarkers exclude macros that start with the ship_ prefix but are
// not buildable hulls: drones, deployables, storage shells, sub-objects.
var nonHullMarkers = []string{
	"drone",
	"terraform",
	"drop",
	"accelerator",
	"amplifier",
	"storage",
	"_ark_",
	"xs",
}

// IsHullMacro reports whether a macro id denotes a real ship hull.
func IsHullMacro(macroID string) bool {
	mid := strings.ToLower(macroID)
	if !strings.HasPrefix(mid, "ship_") {
		return false
	}
	for _, marker := range nonHullMarkers {
		if marker == "xs" {
			// Size marker, matched as a token rather than substring so
			// it cannot fire inside unrelated words.
			if match.Tokenize(mid).Has("xs") {
				return false
			}
			continue
		}
		if strings.Contains(mid, marker) {
			return false
		}
	}
	return true
}

// VariantLabel derives the hull-variant label from the macro naming
// convention: first variants come in a/b trims, second variants in an E
// line.
func VariantLabel(macroID string) string {
	m := strings.ToLower(macroID)
	switch {
	case strings.Contains(m, "_01_a_") || strings.HasSuffix(m, "_01_a_macro"):
		return "Vanguard"
	case strings.Contains(m, "_01_b_") || strings.HasSuffix(m, "_01_b_macro"):
		return "Sentinel"
	case strings.Contains(m, "_02_"):
		return "E"
	}
	return ""
}

// ExtractHullMacros parses every ship macro file under the data root.
// Files that fail to parse, lack a usable macro id, or denote non-hull
// objects are skipped; none of that aborts the run.
func ExtractHullMacros(root string, log *slog.Logger) []*HullMacro {
	var macros []*HullMacro

	for _, path := range gamedata.FindShipMacroFiles(root) {
		doc, err := gamedata.LoadXML(path)
		if err != nil {
			log.Warn("skipping malformed macro file", "path", path, "error", err)
			continue
		}

		node := doc
		macroID := doc.Attr("name")
		// Some files wrap <macro> inside an index root.
		if macroID == "" {
			if inner := doc.Find("macro"); inner != nil {
				node = inner
				macroID = inner.Attr("name")
			}
		}
		if macroID == "" || !IsHullMacro(macroID) {
			continue
		}

		crew, hullPoints := parseMacroProperties(node)
		macros = append(macros, &HullMacro{
			Source:         gamedata.SourceFromPath(path),
			MacroID:        macroID,
			DisplayNameRaw: identificationName(node),
			Crew:           crew,
			HullPoints:     hullPoints,
			Slots:          resolveSlots(node, path),
		})
	}

	log.Debug("hull macros extracted", "count", len(macros))
	return macros
}

// identificationName returns the raw in-game name reference for a hull,
// usually "{page,id}". Resolution happens later, against the
// translation table.
func identificationName(node *gamedata.Element) string {
	if ident := node.Find("identification"); ident != nil {
		if raw := ident.Attr("name"); raw != "" {
			return raw
		}
	}
	return node.Attr("name")
}

// parseMacroProperties returns (crew capacity, hull points), 0 when
// absent.
func parseMacroProperties(node *gamedata.Element) (int, int) {
	props := node.Find("properties")
	if props == nil {
		return 0, 0
	}

	crew := 0
	if people := props.Find("people"); people != nil {
		crew = gamedata.SafeInt(people.Attr("capacity"), 0)
	}

	hullPoints := 0
	if hull := props.Find("hull"); hull != nil {
		for _, attr := range []string{"max", "value", "hull"} {
			if v := hull.Attr(attr); v != "" {
				hullPoints = gamedata.SafeInt(v, 0)
				break
			}
		}
	}
	return crew, hullPoints
}

// resolveSlots loads the component file a macro references and counts
// its hardpoints. A missing or unparseable component file yields zero
// slots, not an error.
func resolveSlots(node *gamedata.Element, macroPath string) SlotCounts {
	comp := node.Find("component")
	if comp == nil {
		return SlotCounts{}
	}
	ref := comp.Attr("ref")
	if ref == "" {
		return SlotCounts{}
	}

	// Component files live beside the macros directory, one level up.
	sizeDir := filepath.Dir(filepath.Dir(macroPath))
	compDoc, err := gamedata.LoadXML(filepath.Join(sizeDir, ref+".xml"))
	if err != nil {
		return SlotCounts{}
	}
	return CountSlots(compDoc)
}

// CountSlots keyword-matches connection-point names and tags in a
// component document.
func CountSlots(compDoc *gamedata.Element) SlotCounts {
	var slots SlotCounts
	for _, conn := range compDoc.FindAll("connection") {
		name := strings.ToLower(conn.Attr("name"))
		tags := strings.ToLower(conn.Attr("tags"))
		blob := name + " " + tags

		switch {
		case strings.Contains(blob, "engine"):
			slots.Engines++
		case strings.Contains(name, "shieldgen") || strings.Contains(" "+tags, " shield"):
			slots.Shields++
		case strings.Contains(blob, "turret"):
			if strings.Contains(" "+tags, " large") || strings.Contains(name, "_l_") {
				slots.TurretL++
			} else {
				slots.TurretM++
			}
		case strings.Contains(blob, "weapon"):
			slots.Weapons++
		}
	}
	return slots
}
