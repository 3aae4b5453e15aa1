package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/x4tools/shipqueue/internal/state"
)

// NewRunsCommand creates the runs command.
func NewRunsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show extraction run history",
		Long:  `List past extraction runs recorded in the state database, newest first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRuns(cmd)
		},
	}

	cmd.Flags().Int("limit", 10, "Maximum runs to show (0 = all)")

	return cmd
}

func runRuns(cmd *cobra.Command) error {
	cfg := ConfigFrom(cmd.Context())
	limit, _ := cmd.Flags().GetInt("limit")

	if _, err := os.Stat(cfg.StatePath); os.IsNotExist(err) {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}

	store := state.NewSQLiteStore()
	if err := store.Open(cfg.StatePath); err != nil {
		return fmt.Errorf("failed to open state database: %w", err)
	}
	defer func() { _ = store.Close() }()
	if err := store.InitSchema(); err != nil {
		return err
	}

	runs, err := store.ListRuns(limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Started", "Status", "Duration", "Hulls", "Equipment", "Unmatched", "Output"})

	for _, r := range runs {
		t.AppendRow(table.Row{
			r.StartedAt.Format(time.RFC3339),
			string(r.Status),
			formatDuration(r),
			r.Counts.Hulls,
			r.Counts.Equipment,
			r.Counts.Unmatched,
			r.OutputPath,
		})
	}
	t.Render()
	return nil
}

func formatDuration(r *state.Run) string {
	if r.CompletedAt == nil {
		return "-"
	}
	return r.CompletedAt.Sub(r.StartedAt).Round(time.Millisecond).String()
}
