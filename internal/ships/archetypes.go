// Package ships extracts ship archetypes (ships.xml) and physical hull
// macro definitions (unit macro files) from the asset tree.
package ships

import (
	"log/slog"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/x4tools/shipqueue/internal/gamedata"
	"github.com/x4tools/shipqueue/internal/match"
)

// Archetype is one abstract ship definition from a ships.xml-equivalent
// source. It has no direct key to a hull macro; the match package joins
// the two.
type Archetype struct {
	Source  string
	ShipID  string
	Faction string // canonical 3-letter code, sub-factions preserved (ANT, HOP, MIN)
	Race    string // family grouping of the faction (ANT -> ARG, MIN -> TEL)
	Size    string // "S" | "M" | "L" | "XL", "" when undetermined
	Role    string // best-effort label, "Unknown" when none applies
}

// Tokens returns the archetype's normalized token set, recomputed from
// the ship id with faction-synonym expansion.
func (a *Archetype) Tokens() match.Set {
	return match.Normalize(match.Tokenize(a.ShipID))
}

var titleCaser = cases.Title(language.English)

// roleRule maps one tag to its display label. Evaluated strictly in
// order; the first tag present wins.
type roleRule struct {
	tag   string
	label string
}

// roleTable is the priority-ordered role vocabulary.
var roleTable = []roleRule{
	{"carrier", "Carrier"},
	{"destroyer", "Destroyer"},
	{"battleship", "Battleship"},
	{"frigate", "Frigate"},
	{"corvette", "Corvette"},
	{"bomber", "Bomber"},
	{"heavyfighter", "HeavyFighter"},
	{"fighter", "Fighter"},
	{"scout", "Scout"},
	{"miner", "Miner"},
	{"trader", "Trader"},
	{"freighter", "Freighter"},
	{"transport", "Transport"},
	{"builder", "Builder"},
	{"resupply", "Resupplier"},
	{"gunboat", "Gunboat"},
	{"yacht", "Yacht"},
	{"luxury", "Luxury"},
	{"envoy", "Envoy"},
}

// roleNoise tags carry no role information.
var roleNoise = match.NewSet(
	"military", "civilian", "mission",
	"small", "medium", "large", "xl",
	"ship",
)

// InferRole picks a single role label from a ship's category tags.
func InferRole(tagsAttr string) string {
	var tags []string
	for _, t := range gamedata.ParseListAttr(tagsAttr) {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" && !roleNoise.Has(t) {
			tags = append(tags, t)
		}
	}

	tagSet := match.NewSet(tags...)
	for _, rule := range roleTable {
		if tagSet.Has(rule.tag) {
			return rule.label
		}
	}
	if len(tags) > 0 {
		return titleCaser.String(tags[0])
	}
	return "Unknown"
}

// NormalizeSize maps a ships.xml size attribute ("ship_l") to the size
// class. Unknown values yield "".
func NormalizeSize(sizeAttr string) string {
	s := strings.ToLower(strings.TrimSpace(sizeAttr))
	switch {
	case strings.HasSuffix(s, "_xl"):
		return "XL"
	case strings.HasSuffix(s, "_l"):
		return "L"
	case strings.HasSuffix(s, "_m"):
		return "M"
	case strings.HasSuffix(s, "_s"):
		return "S"
	}
	return ""
}

// InferFaction derives the faction and race codes for a ship. The
// ship-id prefix is the most reliable signal, and the only one that
// distinguishes sub-factions like HOP/MIN/ZYA; the XML-declared
// faction list is the fallback, then a bare 3-letter uppercase prefix.
// The race is the faction's family grouping.
func InferFaction(shipID string, xmlFactions []string) (faction, race string) {
	segs := match.RawSegments(shipID)
	if len(segs) > 0 {
		if code := match.FactionCode(segs[0]); code != "" {
			return code, match.FamilyCode(segs[0])
		}
	}
	for _, f := range xmlFactions {
		t := strings.ToLower(strings.TrimSpace(f))
		if code := match.FactionCode(t); code != "" {
			return code, match.FamilyCode(t)
		}
	}
	if len(segs) > 0 {
		prefix := segs[0]
		if len(prefix) > 3 {
			prefix = prefix[:3]
		}
		up := strings.ToUpper(prefix)
		return up, up
	}
	return "", ""
}

// ExtractArchetypes reads every ships.xml across the data root and
// returns archetypes keyed by ship id. First definition across overlays
// wins; later overlays may not redefine an existing key. Malformed
// files are skipped with a log entry.
func ExtractArchetypes(root string, log *slog.Logger) map[string]*Archetype {
	archetypes := make(map[string]*Archetype)

	for _, path := range gamedata.FindLibraryFiles(root, "ships.xml") {
		source := gamedata.SourceFromPath(path)
		doc, err := gamedata.LoadXML(path)
		if err != nil {
			log.Warn("skipping malformed ships file", "path", path, "error", err)
			continue
		}

		for _, ship := range doc.FindAll("ship") {
			shipID := ship.Attr("id")
			if shipID == "" {
				continue
			}
			// Mass traffic is ambient scenery, never buildable.
			if strings.HasPrefix(strings.ToLower(shipID), "masstraffic_") {
				continue
			}
			if _, exists := archetypes[shipID]; exists {
				continue
			}

			var tagsAttr, factionAttr, sizeAttr string
			if cat := ship.Child("category"); cat != nil {
				tagsAttr = cat.Attr("tags")
				factionAttr = cat.Attr("faction")
				sizeAttr = cat.Attr("size")
			}

			faction, race := InferFaction(shipID, gamedata.ParseListAttr(factionAttr))
			archetypes[shipID] = &Archetype{
				Source:  source,
				ShipID:  shipID,
				Faction: faction,
				Race:    race,
				Size:    NormalizeSize(sizeAttr),
				Role:    InferRole(tagsAttr),
			}
		}
	}

	log.Debug("archetypes extracted", "count", len(archetypes))
	return archetypes
}
