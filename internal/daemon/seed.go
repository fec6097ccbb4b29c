package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/address-book/address-book/internal/auth"
)

const (
	seedUsername = "admin"
	seedEmail    = "admin@example.com"
	seedPassword = "changeme"
)

// seed creates the admin user with a token if the user table is empty.
func seed(db *gorm.DB) error {
	authService := auth.NewService(db)

	count, err := authService.Local.CountUsers()
	if err != nil || count > 0 {
		return err
	}

	user, err := authService.Local.CreateUser(seedUsername, seedEmail, seedPassword, "", "")
	if err != nil {
		return err
	}

	token, err := authService.IssueToken(user.ID)
	if err != nil {
		return err
	}

	log.Warn().
		Str("username", seedUsername).
		Str("password", seedPassword).
		Str("token", token.Key).
		Msg("dev mode: created default user, change the password")

	return nil
}
