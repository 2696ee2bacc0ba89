package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	_ "github.com/richbibby/netbox-population-tool/internal/core/objects"
	"github.com/richbibby/netbox-population-tool/internal/extract"
)

func newExtractCmd() *cobra.Command {
	var (
		dsnFlag string
		outDir  string
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Dump object tables from a source NetBox database",
		Long:  "Connects to a source NetBox PostgreSQL database and writes one JSON\nfile per object type, plus the ID-to-name mappings the populate\ncommand uses to resolve references.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if dsnFlag != "" {
				cfg.Source.DSN = dsnFlag
			}
			if outDir == "" {
				outDir = cfg.Data.Dir
			}

			ex, err := extract.New(cmd.Context(), cfg.Source.DSN)
			if err != nil {
				return err
			}
			defer ex.Close()

			summary, err := ex.Run(cmd.Context(), outDir)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d records across %d tables to %s\n",
				summary.Records, summary.Tables, outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&dsnFlag, "dsn", "", "source database URL (overrides SOURCE_DATABASE_URL)")
	cmd.Flags().StringVar(&outDir, "out", "", "output directory (defaults to NETBOX_DATA_DIR)")
	return cmd
}
