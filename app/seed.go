package app

import (
	"github.com/spf13/cobra"

	"github.com/evination/backoffice/internal/config"
	"github.com/evination/backoffice/internal/daemon"
	"github.com/evination/backoffice/internal/logger"
)

func init() { //nolint: gochecknoinits
	seedCmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration directory")

	rootCmd.AddCommand(seedCmd)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with the initial organization, catalog and admin user",
	PreRun: func(_ *cobra.Command, _ []string) {
		if cfg, err = config.ReadConfig(configPath); err != nil {
			panic(err)
		}

		if err = logger.Init(cfg.Log); err != nil {
			panic(err)
		}
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return daemon.Seed(&cfg)
	},
}
