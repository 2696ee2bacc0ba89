// Package cli wires the command-line interface. Commands load their
// configuration from the environment first and apply flag overrides on
// top, so a .env file and CI variables both work without flags.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/richbibby/netbox-population-tool/internal/config"
	"github.com/richbibby/netbox-population-tool/internal/logging"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "netbox-populate",
		Short:         "Populate a NetBox instance from extracted JSON data",
		Long:          "Loads network infrastructure records extracted from a source NetBox,\napplies manufacturer and platform exclusion rules, and idempotently\ncreates the remaining objects in a target NetBox in dependency order.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newPopulateCmd())
	root.AddCommand(newExtractCmd())
	return root
}

// loadConfig reads the environment configuration and initializes logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	return cfg, nil
}
