package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/address-book/address-book/internal/auth"
	"github.com/address-book/address-book/internal/db/database"
)

func init() { //nolint: gochecknoinits
	tokenCreateCmd.Flags().StringVar(&tokenUsername, "username", "", "Owner of the token (required)")
	_ = tokenCreateCmd.MarkFlagRequired("username")

	tokenCmd.AddCommand(tokenCreateCmd)
	rootCmd.AddCommand(tokenCmd)
}

var (
	tokenUsername string

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Manage API tokens",
	}

	tokenCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Print the API token of a user, creating it if needed",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(&cfg)
			if err != nil {
				return err
			}

			authService := auth.NewService(db)

			user, err := authService.Local.GetUserByUsername(tokenUsername)
			if err != nil {
				return err
			}

			token, err := authService.IssueToken(user.ID)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), token.Key)

			return err
		},
	}
)
