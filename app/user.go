package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/address-book/address-book/internal/auth"
	"github.com/address-book/address-book/internal/db/database"
)

func init() { //nolint: gochecknoinits
	userCreateCmd.Flags().StringVar(&newUser.username, "username", "", "Login name (required)")
	userCreateCmd.Flags().StringVar(&newUser.email, "email", "", "Email address (required)")
	userCreateCmd.Flags().StringVar(&newUser.password, "password", "", "Password (required)")
	userCreateCmd.Flags().StringVar(&newUser.firstName, "first-name", "", "First name")
	userCreateCmd.Flags().StringVar(&newUser.lastName, "last-name", "", "Last name")

	for _, name := range []string{"username", "email", "password"} {
		_ = userCreateCmd.MarkFlagRequired(name)
	}

	userDeleteCmd.Flags().StringVar(&deleteUsername, "username", "", "Login name (required)")
	_ = userDeleteCmd.MarkFlagRequired("username")

	userCmd.AddCommand(userCreateCmd, userDeleteCmd)
	rootCmd.AddCommand(userCmd)
}

var (
	newUser struct {
		username, email, password, firstName, lastName string
	}

	deleteUsername string

	userCmd = &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	userCreateCmd = &cobra.Command{
		Use:   "create",
		Short: "Create an active user account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(&cfg)
			if err != nil {
				return err
			}

			user, err := auth.NewLocalProvider(db).CreateUser(
				newUser.username, newUser.email, newUser.password, newUser.firstName, newUser.lastName,
			)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "created user %q (id %d)\n", user.Username, user.ID)

			return err
		},
	}

	userDeleteCmd = &cobra.Command{
		Use:   "delete",
		Short: "Delete a user account with all its contacts and contact groups",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, err := database.Open(&cfg)
			if err != nil {
				return err
			}

			local := auth.NewLocalProvider(db)

			user, err := local.GetUserByUsername(deleteUsername)
			if err != nil {
				return err
			}

			if err = local.DeleteUser(user.ID); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted user %q\n", user.Username)

			return err
		},
	}
)
