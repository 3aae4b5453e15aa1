package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/x4tools/shipqueue/internal/cli/config"
	"github.com/x4tools/shipqueue/internal/report"
	"github.com/x4tools/shipqueue/internal/state"
)

// NewExtractCommand creates the extract command.
func NewExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract hulls and equipment into a spreadsheet",
		Long: `Run the full extraction pipeline against the configured data root and
write the report workbook. Each run is recorded in the run-history
database.`,
		Example: `  # Extract using the data root from shipqueue.yaml
  shipqueue extract

  # Extract a specific tree to a specific file
  shipqueue extract --data-root /data/x4 --out ships.xlsx

  # Include the combined All_Equipment sheet
  shipqueue extract --all-equipment`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExtract(cmd)
		},
	}

	cmd.Flags().String("out", "", "Output workbook path (default from config)")
	cmd.Flags().Bool("all-equipment", false, "Add a combined All_Equipment sheet")
	cmd.Flags().Bool("no-history", false, "Skip recording the run in the state database")

	return cmd
}

func runExtract(cmd *cobra.Command) error {
	cfg := ConfigFrom(cmd.Context())
	log := LoggerFrom(cmd.Context())

	outPath := cfg.OutputFile
	if v, _ := cmd.Flags().GetString("out"); v != "" {
		outPath = v
	}
	allEquipment := cfg.AllEquipment
	if cmd.Flags().Changed("all-equipment") {
		allEquipment, _ = cmd.Flags().GetBool("all-equipment")
	}
	noHistory, _ := cmd.Flags().GetBool("no-history")

	var store *state.SQLiteStore
	var run *state.Run
	if !noHistory {
		var err error
		store, run, err = beginRun(cfg, outPath)
		if err != nil {
			// History is a convenience; a broken state db must not block
			// the extraction itself.
			log.Warn("run history unavailable", "error", err)
			store = nil
		} else {
			defer func() { _ = store.Close() }()
		}
	}

	result, err := runExtraction(cfg, log)
	if err != nil {
		finishRun(store, run, state.RunStatusFailed, state.RunCounts{}, err)
		return err
	}

	if err := report.WriteWorkbook(outPath, result.Equipment, result.Hulls, report.WorkbookOptions{
		IncludeAllEquipment: allEquipment,
	}); err != nil {
		finishRun(store, run, state.RunStatusFailed, state.RunCounts{}, err)
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	counts := state.RunCounts{
		Hulls:      len(result.Hulls),
		Equipment:  result.EquipmentCount(),
		Unmatched:  len(result.HullStats.Unmatched),
		Unresolved: result.UnresolvedCount(),
	}
	finishRun(store, run, state.RunStatusCompleted, counts, nil)

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d hulls, %d equipment rows (%d unmatched, %d unresolved names)\n",
		outPath, counts.Hulls, counts.Equipment, counts.Unmatched, counts.Unresolved)
	return nil
}

// beginRun opens the state store and records the run start.
func beginRun(cfg *config.Config, outPath string) (*state.SQLiteStore, *state.Run, error) {
	path := cfg.StatePath
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create state dir: %w", err)
		}
	}

	store := state.NewSQLiteStore()
	if err := store.Open(path); err != nil {
		return nil, nil, err
	}
	if err := store.InitSchema(); err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	run, err := store.CreateRun(cfg.DataRoot, outPath)
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return store, run, nil
}

func finishRun(store *state.SQLiteStore, run *state.Run, status state.RunStatus, counts state.RunCounts, cause error) {
	if store == nil || run == nil {
		return
	}
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	_ = store.CompleteRun(run.ID, status, counts, msg)
}
