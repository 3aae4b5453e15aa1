// Package catalogue builds a canonical ware catalogue from every
// wares.xml in the asset tree. Unlike the tolerant extraction path,
// this builder is strict: structural surprises are errors, because the
// catalogue is the artifact other tooling trusts.
package catalogue

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/x4tools/shipqueue/internal/gamedata"
)

// ProductionMethod is one way of producing a ware.
type ProductionMethod struct {
	Time      int            `json:"time"`
	Amount    int            `json:"amount"`
	Name      string         `json:"name,omitempty"`
	Tags      []string       `json:"tags,omitempty"`
	Resources map[string]int `json:"resources"`
}

// Price is a ware's credit price range.
type Price struct {
	Min     int `json:"min"`
	Average int `json:"average"`
	Max     int `json:"max"`
}

// Details carries the transport-block attributes of a ware.
type Details struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Group       string   `json:"group,omitempty"`
	Volume      int      `json:"volume"`
	Tags        []string `json:"tags,omitempty"`
	Component   string   `json:"component,omitempty"`
	Licence     string   `json:"licence,omitempty"`
	Owners      []string `json:"owners,omitempty"`
}

// Entry is one catalogue record. Every ware has exactly one transport
// class; wares without production methods are valid (research-only).
type Entry struct {
	Transport         string                      `json:"transport"`
	Details           Details                     `json:"details"`
	Price             *Price                      `json:"price,omitempty"`
	ProductionMethods map[string]ProductionMethod `json:"productionMethods"`
}

// Catalogue maps ware id to its entry.
type Catalogue map[string]*Entry

// Build runs the full multi-pass catalogue build over the asset tree.
func Build(root string, log *slog.Logger) (Catalogue, error) {
	var docs []*gamedata.Element
	for _, path := range gamedata.FindLibraryFiles(root, "wares.xml") {
		doc, err := gamedata.LoadXML(path)
		if err != nil {
			log.Debug("skipping unparsable wares file", "path", path, "error", err)
			continue
		}
		docs = append(docs, doc)
	}
	log.Info("parsed wares files", "count", len(docs))

	cat := baseWares(docs)
	log.Info("base wares collected", "count", len(cat))

	if err := inlineProduction(docs, cat); err != nil {
		return nil, err
	}
	if err := injectedProduction(docs, cat, log); err != nil {
		return nil, err
	}
	if err := validate(cat, log); err != nil {
		return nil, err
	}
	return cat, nil
}

// baseWares is the first pass: collect ware definitions, first
// definition wins across all sources.
func baseWares(docs []*gamedata.Element) Catalogue {
	cat := make(Catalogue)
	for _, doc := range docs {
		for _, ware := range doc.FindAll("ware") {
			id := ware.Attr("id")
			if id == "" {
				continue
			}
			if _, exists := cat[id]; exists {
				continue
			}

			transport := ware.Attr("transport")
			if transport == "" {
				transport = "other"
			}
			entry := &Entry{
				Transport: transport,
				Details: Details{
					Name:        ware.Attr("name"),
					Description: ware.Attr("description"),
					Group:       ware.Attr("group"),
					Volume:      gamedata.SafeInt(ware.Attr("volume"), 0),
					Tags:        gamedata.ParseListAttr(ware.Attr("tags")),
				},
				ProductionMethods: make(map[string]ProductionMethod),
			}

			if price := ware.Child("price"); price != nil {
				entry.Price = &Price{
					Min:     gamedata.SafeInt(price.Attr("min"), 0),
					Average: gamedata.SafeInt(price.Attr("average"), 0),
					Max:     gamedata.SafeInt(price.Attr("max"), 0),
				}
			}
			if comp := ware.Child("component"); comp != nil {
				entry.Details.Component = comp.Attr("ref")
			}
			if restriction := ware.Child("restriction"); restriction != nil {
				entry.Details.Licence = restriction.Attr("licence")
			}
			for _, owner := range ware.FindAll("owner") {
				if f := owner.Attr("faction"); f != "" {
					entry.Details.Owners = append(entry.Details.Owners, f)
				}
			}

			cat[id] = entry
		}
	}
	return cat
}

// inlineProduction is the second pass: production blocks declared
// directly under a ware. A duplicate method for the same ware means the
// source data violates our model and the build must stop.
func inlineProduction(docs []*gamedata.Element, cat Catalogue) error {
	for _, doc := range docs {
		for _, ware := range doc.FindAll("ware") {
			id := ware.Attr("id")
			entry := cat[id]
			if id == "" || entry == nil {
				continue
			}
			for _, prod := range ware.FindAll("production") {
				method, pm := parseProductionMethod(prod)
				if _, dup := entry.ProductionMethods[method]; dup {
					return fmt.Errorf("duplicate inline production method %q for ware %q", method, id)
				}
				entry.ProductionMethods[method] = pm
			}
		}
	}
	return nil
}

// injectedProduction is the third pass: diff-style <add sel="..."> nodes
// that splice production methods into existing wares.
func injectedProduction(docs []*gamedata.Element, cat Catalogue, log *slog.Logger) error {
	for _, doc := range docs {
		for _, add := range doc.FindAll("add") {
			productions := add.FindAll("production")
			if len(productions) == 0 {
				continue
			}
			id := wareIDFromSelector(add.Attr("sel"))
			if id == "" {
				continue
			}
			entry := cat[id]
			if entry == nil {
				log.Warn("injected production for unknown ware", "ware", id)
				continue
			}
			for _, prod := range productions {
				method, pm := parseProductionMethod(prod)
				if _, dup := entry.ProductionMethods[method]; dup {
					return fmt.Errorf("injected production overrides existing method %q for ware %q", method, id)
				}
				entry.ProductionMethods[method] = pm
			}
		}
	}
	return nil
}

// wareIDFromSelector extracts the ware id from an XPath-ish selector
// like //wares/ware[@id='engine_arg_s_travel_01_mk1'].
func wareIDFromSelector(sel string) string {
	const marker = "[@id='"
	i := strings.Index(sel, marker)
	if i < 0 {
		return ""
	}
	rest := sel[i+len(marker):]
	j := strings.Index(rest, "']")
	if j < 0 {
		return ""
	}
	return rest[:j]
}

func parseProductionMethod(prod *gamedata.Element) (string, ProductionMethod) {
	method := prod.Attr("method")
	if method == "" {
		method = "default"
	}
	pm := ProductionMethod{
		Time:      gamedata.SafeInt(prod.Attr("time"), 0),
		Amount:    gamedata.SafeInt(prod.Attr("amount"), 1),
		Name:      prod.Attr("name"),
		Tags:      gamedata.ParseListAttr(prod.Attr("tags")),
		Resources: make(map[string]int),
	}
	if primary := prod.Child("primary"); primary != nil {
		for _, w := range primary.FindAll("ware") {
			if id := w.Attr("ware"); id != "" {
				pm.Resources[id] = gamedata.SafeInt(w.Attr("amount"), 0)
			}
		}
	}
	return method, pm
}

// validate is the fourth pass. Wares without production methods are
// fine (research-only); structural gaps are not.
func validate(cat Catalogue, log *slog.Logger) error {
	for id, entry := range cat {
		if entry.Transport == "" {
			return fmt.Errorf("ware %q has no transport class", id)
		}
		if entry.ProductionMethods == nil {
			return fmt.Errorf("ware %q missing production methods block", id)
		}
		if len(entry.ProductionMethods) == 0 {
			log.Debug("ware has no production methods, retained", "ware", id)
		}
	}
	return nil
}

// WriteJSON writes the catalogue as a deterministic JSON artifact.
// Map keys marshal in sorted order, which is the normalization the
// artifact consumers rely on.
func WriteJSON(path string, cat Catalogue) error {
	data, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalogue: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write catalogue: %w", err)
	}
	return nil
}
