package main

import (
	"github.com/spf13/cobra"

	"alfredoptarigan/interview-coach/internal/config"
	"alfredoptarigan/interview-coach/internal/logz"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		logz.Init(cfg.Log.Level, cfg.Server.Name)
		defer logz.Drop()

		db, err := config.InitDatabase(cfg)
		if err != nil {
			return err
		}
		return config.Migrate(db)
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
