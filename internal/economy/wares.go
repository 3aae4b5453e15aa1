package economy

import (
	"log/slog"

	"github.com/x4tools/shipqueue/internal/gamedata"
)

// Ware is a raw ware definition: name reference, grouping, transport
// class, and tags. Production data lives in the Ledger, not here.
type Ware struct {
	Source    string
	ID        string
	NameRaw   string // usually a "{page,id}" text reference
	Group     string
	Transport string
	Tags      []string
}

// ExtractWares reads ware definitions from every wares.xml and returns
// them keyed by ware id. Later overlays may only fill fields the first
// definition left empty; the original source label is preserved.
func ExtractWares(root string, log *slog.Logger) map[string]*Ware {
	all := make(map[string]*Ware)

	for _, path := range gamedata.FindLibraryFiles(root, "wares.xml") {
		source := gamedata.SourceFromPath(path)
		doc, err := gamedata.LoadXML(path)
		if err != nil {
			log.Warn("skipping malformed wares file", "path", path, "error", err)
			continue
		}

		for _, w := range doc.FindAll("ware") {
			id := w.Attr("id")
			if id == "" {
				continue
			}
			incoming := &Ware{
				Source:    source,
				ID:        id,
				NameRaw:   w.Attr("name"),
				Group:     w.Attr("group"),
				Transport: w.Attr("transport"),
				Tags:      parseTags(w),
			}
			mergeWare(all, incoming)
		}
	}
	return all
}

func parseTags(ware *gamedata.Element) []string {
	var tags []string
	for _, t := range ware.FindAll("tag") {
		if name := t.Attr("name"); name != "" {
			tags = append(tags, name)
		}
	}
	if tags != nil {
		return tags
	}
	return gamedata.ParseListAttr(ware.Attr("tags"))
}

// mergeWare applies overlay patch semantics: the first definition owns
// the record; later definitions only supply values it left empty.
func mergeWare(all map[string]*Ware, incoming *Ware) {
	existing, ok := all[incoming.ID]
	if !ok {
		all[incoming.ID] = incoming
		return
	}
	if existing.NameRaw == "" {
		existing.NameRaw = incoming.NameRaw
	}
	if existing.Group == "" {
		existing.Group = incoming.Group
	}
	if existing.Transport == "" {
		existing.Transport = incoming.Transport
	}
	if len(existing.Tags) == 0 {
		existing.Tags = incoming.Tags
	}
}
