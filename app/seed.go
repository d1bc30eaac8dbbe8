package app

import (
	"github.com/spf13/cobra"

	"github.com/caraban-app/caraban-api/internal/config"
	"github.com/caraban-app/caraban-api/internal/daemon"
	"github.com/caraban-app/caraban-api/internal/logger"
)

func init() { //nolint: gochecknoinits
	seedCmd.Flags().StringVar(&configPath, "config", "", "Path to the configuration directory")

	rootCmd.AddCommand(seedCmd)
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load demo campsites and a demo host into the database",
	PreRun: func(_ *cobra.Command, _ []string) {
		if cfg, err = config.ReadConfig(configPath); err != nil {
			panic(err)
		}

		if err = logger.Init(cfg.Log); err != nil {
			panic(err)
		}
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		db, err := daemon.OpenDB(&cfg)
		if err != nil {
			return err
		}

		return daemon.SeedDemo(db)
	},
}
