package cli

import (
	"github.com/spf13/cobra"

	"github.com/richbibby/netbox-population-tool/internal/core"
	_ "github.com/richbibby/netbox-population-tool/internal/core/objects"
	"github.com/richbibby/netbox-population-tool/internal/netbox"
)

func newPopulateCmd() *cobra.Command {
	var (
		urlFlag   string
		tokenFlag string
		dataDir   string
		rulesFile string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "populate",
		Short: "Create extracted objects in the target NetBox",
		Long:  "Reads the extracted JSON files, filters excluded manufacturers and\nplatforms, and creates the remaining objects tier by tier. Safe to\nre-run: objects that already exist are detected and left alone.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if urlFlag != "" {
				cfg.NetBox.URL = urlFlag
			}
			if tokenFlag != "" {
				cfg.NetBox.Token = tokenFlag
			}
			if dataDir != "" {
				cfg.Data.Dir = dataDir
			}
			if rulesFile != "" {
				cfg.Data.RulesFile = rulesFile
			}

			if err := cfg.NetBox.ValidateToken(); err != nil {
				return err
			}

			rules := core.DefaultRules()
			if cfg.Data.RulesFile != "" {
				rules, err = core.LoadRules(cfg.Data.RulesFile)
				if err != nil {
					return err
				}
			}

			ds, err := core.LoadDataset(cfg.Data.Dir)
			if err != nil {
				return err
			}

			client, err := netbox.New(cfg.NetBox.URL, cfg.NetBox.Token,
				netbox.WithTimeout(cfg.NetBox.RequestTimeout),
				netbox.WithRetryPolicy(netbox.RetryPolicy{
					Retries:   cfg.NetBox.RetryMax,
					BaseDelay: cfg.NetBox.RetryBaseDelay,
					MaxDelay:  cfg.NetBox.RetryMaxDelay,
				}),
			)
			if err != nil {
				return err
			}

			printer := core.NewPrinter(cmd.OutOrStdout())
			engine := core.NewEngine(client, ds, rules, printer, dryRun)

			// Per-record failures are reported in the summary; only
			// setup errors fail the command.
			_, err = engine.Run(cmd.Context())
			return err
		},
	}

	cmd.Flags().StringVar(&urlFlag, "url", "", "target NetBox base URL (overrides NETBOX_URL)")
	cmd.Flags().StringVar(&tokenFlag, "token", "", "API token (overrides NETBOX_TOKEN)")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "directory of extracted JSON files (overrides NETBOX_DATA_DIR)")
	cmd.Flags().StringVar(&rulesFile, "rules", "", "YAML file overriding the built-in filter rules")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be created without writing")
	return cmd
}
