package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/address-book/address-book/internal/db/database"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := database.Open(&cfg)
		if err != nil {
			return err
		}

		if err = database.Migrate(db); err != nil {
			return err
		}

		log.Info().Str("engine", cfg.DB.GormEngine).Msg("database migrated")

		return nil
	},
}
