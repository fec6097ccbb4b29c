// Package app implements the main application commands.
package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/address-book/address-book/internal/config"
	"github.com/address-book/address-book/internal/logger"
)

var (
	configPath string // directory holding main.toml

	rootCmd = &cobra.Command{
		Use:   "address-book",
		Short: "Address Book is a REST service for contacts and contact groups",
		Long: `Address Book is a REST service where every user manages their own
contacts and contact groups, and which contacts belong to which group.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
)

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "./etc/", "Directory of main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the configuration and initializes the global logger with it.
func loadConfig() (config.Config, error) {
	cfg, err := config.ReadConfig(configPath)
	if err != nil {
		return cfg, err
	}

	if err = logger.Init(cfg.Log); err != nil {
		return cfg, err
	}

	log.Debug().Str("path", configPath).Msg("configuration loaded")

	return cfg, nil
}
