package assemble

import (
	"log/slog"
	"sort"

	"github.com/x4tools/shipqueue/internal/economy"
	"github.com/x4tools/shipqueue/internal/match"
	"github.com/x4tools/shipqueue/internal/ships"
	"github.com/x4tools/shipqueue/internal/translation"
)

// HullRow is one buildable hull in the final report.
type HullRow struct {
	Source     string
	ShipID     string
	MacroID    string
	Name       string
	Faction    string
	Race       string
	Size       string
	Role       string
	Variant    string
	Crew       int
	HullPoints int
	Slots      ships.SlotCounts
	PriceMin   int
	PriceAvg   int
	PriceMax   int
	BuildTime  float64
	Components []LabeledComponent
}

// HullStats summarises what the hull assembly kept and dropped.
type HullStats struct {
	Unmatched       []match.Unmatched
	Rejections      map[match.Reason]int
	NotBuildable    int
	NoProduction    int
	UnresolvedNames int
}

// AssembleHulls reconciles ship archetypes against hull macros and joins
// the winners with their production records. Archetypes that fail the
// buildability filter never enter matching; matched macros without a
// ship-transport production record are dropped.
func AssembleHulls(
	archetypes map[string]*ships.Archetype,
	macros []*ships.HullMacro,
	ledger *economy.Ledger,
	table translation.Table,
	log *slog.Logger,
) ([]HullRow, HullStats) {
	stats := HullStats{}

	macroIndex := make(map[string]*ships.HullMacro, len(macros))
	matchMacros := make([]match.Macro, 0, len(macros))
	for _, m := range macros {
		macroIndex[m.MacroID] = m
		matchMacros = append(matchMacros, match.Macro{MacroID: m.MacroID, Tokens: m.Tokens()})
	}

	var matchArchetypes []match.Archetype
	for _, a := range archetypes {
		tokens := a.Tokens()
		if !match.Buildable(tokens) {
			stats.NotBuildable++
			continue
		}
		matchArchetypes = append(matchArchetypes, match.Archetype{
			ShipID:    a.ShipID,
			Source:    a.Source,
			SizeClass: a.Size,
			Tokens:    tokens,
		})
	}

	outcome := match.Reconcile(matchArchetypes, matchMacros)
	stats.Unmatched = outcome.Unmatched
	stats.Rejections = outcome.Rejections

	var rows []HullRow
	for _, p := range outcome.Pairings {
		macro := macroIndex[p.MacroID]
		arch := archetypes[p.ShipID]
		if macro == nil || arch == nil {
			continue
		}
		prod := ledger.ByMacro[p.MacroID]
		if prod == nil || prod.Transport != economy.TransportShip {
			stats.NoProduction++
			log.Debug("hull without ship production record", "macro", p.MacroID)
			continue
		}

		name := translation.Resolve(macro.DisplayNameRaw, table, macro.DisplayNameRaw)
		if name == "" {
			name = macro.MacroID
		}
		if translation.IsUnresolvedRef(name) {
			stats.UnresolvedNames++
		}

		variant := ""
		if p.MultiVariant {
			variant = ships.VariantLabel(macro.MacroID)
		}

		rows = append(rows, HullRow{
			Source:     macro.Source,
			ShipID:     arch.ShipID,
			MacroID:    macro.MacroID,
			Name:       name,
			Faction:    arch.Faction,
			Race:       arch.Race,
			Size:       arch.Size,
			Role:       arch.Role,
			Variant:    variant,
			Crew:       macro.Crew,
			HullPoints: macro.HullPoints,
			Slots:      macro.Slots,
			PriceMin:   prod.PriceMin,
			PriceAvg:   prod.PriceAvg,
			PriceMax:   prod.PriceMax,
			BuildTime:  prod.BuildTime,
			Components: labelComponents(prod.Components),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if ra, rb := sourceRank(a.Source), sourceRank(b.Source); ra != rb {
			return ra < rb
		}
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if ra, rb := sizeRank(a.Size), sizeRank(b.Size); ra != rb {
			return ra < rb
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.MacroID < b.MacroID
	})

	if stats.UnresolvedNames > 0 {
		log.Warn("hull names left unresolved", "count", stats.UnresolvedNames)
	}
	return rows, stats
}
