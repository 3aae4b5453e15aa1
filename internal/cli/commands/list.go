package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/x4tools/shipqueue/internal/assemble"
	"github.com/x4tools/shipqueue/internal/report"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Preview extracted rows as terminal tables",
		Long: `Run the extraction pipeline and render the results as tables on
stdout instead of writing a workbook. Useful for checking what a data
root yields before exporting.`,
		Example: `  # Preview everything
  shipqueue list --data-root /data/x4

  # Only hulls, first 20 rows
  shipqueue list --category hulls --limit 20

  # One equipment category
  shipqueue list --category turrets`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd)
		},
	}

	cmd.Flags().String("category", "", "Restrict output: hulls, engines, thrusters, shields, weapons, turrets")
	cmd.Flags().Int("limit", 0, "Maximum rows per table (0 = all)")

	return cmd
}

func runList(cmd *cobra.Command) error {
	cfg := ConfigFrom(cmd.Context())
	log := LoggerFrom(cmd.Context())

	category, _ := cmd.Flags().GetString("category")
	limit, _ := cmd.Flags().GetInt("limit")

	result, err := runExtraction(cfg, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case category == "":
		for _, c := range assemble.Categories {
			report.PreviewEquipment(out, c, result.Equipment[c], limit)
			fmt.Fprintln(out)
		}
		report.PreviewHulls(out, result.Hulls, limit)
	case strings.EqualFold(category, "hulls"):
		report.PreviewHulls(out, result.Hulls, limit)
	default:
		name, ok := matchCategory(category)
		if !ok {
			return fmt.Errorf("unknown category %q (want hulls, engines, thrusters, shields, weapons or turrets)", category)
		}
		report.PreviewEquipment(out, name, result.Equipment[name], limit)
	}
	return nil
}

// matchCategory resolves a flag value to a canonical equipment
// category name, case-insensitively.
func matchCategory(flag string) (string, bool) {
	for _, c := range assemble.Categories {
		if strings.EqualFold(flag, c) {
			return c, true
		}
	}
	return "", false
}
