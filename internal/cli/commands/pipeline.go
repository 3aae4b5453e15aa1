package commands

import (
	"log/slog"

	"github.com/x4tools/shipqueue/internal/assemble"
	"github.com/x4tools/shipqueue/internal/cli/config"
	"github.com/x4tools/shipqueue/internal/economy"
	"github.com/x4tools/shipqueue/internal/ships"
	"github.com/x4tools/shipqueue/internal/translation"
)

// ExtractionResult bundles everything one pipeline pass produces.
type ExtractionResult struct {
	Hulls      []assemble.HullRow
	Equipment  map[string][]assemble.EquipmentRow
	HullStats  assemble.HullStats
	EquipStats assemble.EquipmentStats
}

// EquipmentCount sums rows across all categories.
func (r *ExtractionResult) EquipmentCount() int {
	n := 0
	for _, rows := range r.Equipment {
		n += len(rows)
	}
	return n
}

// UnresolvedCount sums hull and equipment names left as raw references.
func (r *ExtractionResult) UnresolvedCount() int {
	n := r.HullStats.UnresolvedNames
	for _, c := range r.EquipStats.Unresolved {
		n += c
	}
	return n
}

// runExtraction executes the full pipeline against the configured data
// root: translation table, economy, ships, then both assemblies.
func runExtraction(cfg *config.Config, log *slog.Logger) (*ExtractionResult, error) {
	if err := cfg.ValidateDataRoot(); err != nil {
		return nil, err
	}
	root := cfg.DataRoot

	table := translation.LoadTable(root, cfg.LanguageID, log)
	log.Info("translation table loaded", "entries", len(table), "language", cfg.LanguageID)

	ledger := economy.ExtractProduction(root, log)
	wares := economy.ExtractWares(root, log)
	log.Info("economy extracted", "production", len(ledger.ByWare), "wares", len(wares))

	archetypes := ships.ExtractArchetypes(root, log)
	macros := ships.ExtractHullMacros(root, log)
	log.Info("ships extracted", "archetypes", len(archetypes), "macros", len(macros))

	hulls, hullStats := assemble.AssembleHulls(archetypes, macros, ledger, table, log)
	equipment, equipStats := assemble.AssembleEquipment(wares, ledger, table, log)

	for _, u := range hullStats.Unmatched {
		log.Debug("unmatched archetype",
			"ship", u.ShipID, "source", u.Source, "nearest", u.Nearest)
	}
	log.Info("assembly finished",
		"hulls", len(hulls),
		"unmatched", len(hullStats.Unmatched),
		"not_buildable", hullStats.NotBuildable)

	return &ExtractionResult{
		Hulls:      hulls,
		Equipment:  equipment,
		HullStats:  hullStats,
		EquipStats: equipStats,
	}, nil
}
