// Package economy extracts ware definitions and production recipes from
// wares.xml across the base game and all extension overlays.
package economy

import (
	"log/slog"

	"github.com/x4tools/shipqueue/internal/gamedata"
)

// Transport classifies which downstream collection consumes a ware.
type Transport string

const (
	TransportShip      Transport = "ship"
	TransportEquipment Transport = "equipment"
)

// Component is one material input of a production recipe.
type Component struct {
	Ware   string
	Amount int
}

// Production is the build recipe and price data for one producible ware.
type Production struct {
	Source     string
	WareID     string
	MacroID    string // <component ref>, empty when the ware has no physical macro
	Transport  Transport
	PriceMin   int
	PriceAvg   int
	PriceMax   int
	BuildTime  float64 // seconds
	Components []Component
}

// Ledger holds all production records, keyed two ways: by ware id and,
// where a macro reference exists, by macro id.
type Ledger struct {
	ByWare  map[string]*Production
	ByMacro map[string]*Production
}

// ExtractProduction reads every wares.xml and returns the production
// ledger. Wares without both a price and a production block are not
// buildable and are dropped here; that is expected, not an error.
// Malformed files are skipped with a log entry.
func ExtractProduction(root string, log *slog.Logger) *Ledger {
	ledger := &Ledger{
		ByWare:  make(map[string]*Production),
		ByMacro: make(map[string]*Production),
	}

	for _, path := range gamedata.FindLibraryFiles(root, "wares.xml") {
		source := gamedata.SourceFromPath(path)
		doc, err := gamedata.LoadXML(path)
		if err != nil {
			log.Warn("skipping malformed wares file", "path", path, "error", err)
			continue
		}

		for _, ware := range doc.FindAll("ware") {
			prod := parseProduction(ware, source)
			if prod == nil {
				continue
			}
			ledger.ByWare[prod.WareID] = prod
			if prod.MacroID != "" {
				ledger.ByMacro[prod.MacroID] = prod
			}
		}
	}

	log.Debug("production ledger built",
		"wares", len(ledger.ByWare), "macros", len(ledger.ByMacro))
	return ledger
}

// parseProduction builds one Production record, or nil when the ware is
// not a buildable ship/equipment item.
func parseProduction(ware *gamedata.Element, source string) *Production {
	wareID := ware.Attr("id")
	transport := Transport(ware.Attr("transport"))
	if wareID == "" || (transport != TransportShip && transport != TransportEquipment) {
		return nil
	}

	price := ware.Child("price")
	production := ware.Child("production")
	if price == nil || production == nil {
		return nil
	}

	macroID := ""
	if comp := ware.Child("component"); comp != nil {
		macroID = comp.Attr("ref")
	}

	return &Production{
		Source:     source,
		WareID:     wareID,
		MacroID:    macroID,
		Transport:  transport,
		PriceMin:   gamedata.SafeInt(price.Attr("min"), 0),
		PriceAvg:   gamedata.SafeInt(price.Attr("average"), 0),
		PriceMax:   gamedata.SafeInt(price.Attr("max"), 0),
		BuildTime:  gamedata.SafeFloat(production.Attr("time"), 0),
		Components: parseComponents(production),
	}
}

// parseComponents reads the primary resource list. A material listed
// more than once has its amounts summed, never overwritten; first
// occurrence keeps its position.
func parseComponents(production *gamedata.Element) []Component {
	primary := production.Child("primary")
	if primary == nil {
		return nil
	}

	index := make(map[string]int)
	var out []Component
	for _, w := range primary.FindAll("ware") {
		matID := w.Attr("ware")
		amount := gamedata.SafeInt(w.Attr("amount"), 0)
		if matID == "" || amount == 0 {
			continue
		}
		if i, ok := index[matID]; ok {
			out[i].Amount += amount
			continue
		}
		index[matID] = len(out)
		out = append(out, Component{Ware: matID, Amount: amount})
	}
	return out
}
