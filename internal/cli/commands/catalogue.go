package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/x4tools/shipqueue/internal/catalogue"
)

// NewCatalogueCommand creates the catalogue command.
func NewCatalogueCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalogue",
		Short: "Build the canonical ware catalogue artifact",
		Long: `Build a JSON catalogue of every ware across the base game and all
extensions. Unlike extract, this path is strict: duplicate production
methods or structural surprises abort the build.`,
		Example: `  shipqueue catalogue --data-root /data/x4 --out ware_catalogue.json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCatalogue(cmd)
		},
	}

	cmd.Flags().String("out", "ware_catalogue.json", "Output JSON path")

	return cmd
}

func runCatalogue(cmd *cobra.Command) error {
	cfg := ConfigFrom(cmd.Context())
	log := LoggerFrom(cmd.Context())

	if err := cfg.ValidateDataRoot(); err != nil {
		return err
	}
	outPath, _ := cmd.Flags().GetString("out")

	cat, err := catalogue.Build(cfg.DataRoot, log)
	if err != nil {
		return fmt.Errorf("catalogue build failed: %w", err)
	}
	if err := catalogue.WriteJSON(outPath, cat); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d wares\n", outPath, len(cat))
	return nil
}
