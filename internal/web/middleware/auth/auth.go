package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/address-book/address-book/internal/auth"
	"github.com/address-book/address-book/internal/db/models"
	"github.com/address-book/address-book/internal/web/handler"
)

const (
	// LocalsUser is the fiber.Locals key of the authenticated *models.User.
	LocalsUser = "CurrentUser"

	// Scheme is the keyword in front of the token key.
	Scheme = "Token"

	msgNotProvided  = "Authentication credentials were not provided."
	msgInvalidToken = "Invalid token."
	msgBadHeader    = "Invalid token header. Token string should not contain spaces."
	msgInactive     = "User inactive or deleted."
)

// New returns a middleware rejecting requests without a valid token.
func New(authService *auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))

		scheme, key, _ := strings.Cut(header, " ")
		if header == "" || !strings.EqualFold(scheme, Scheme) {
			return handler.Detail(c, fiber.StatusForbidden, msgNotProvided)
		}

		key = strings.TrimSpace(key)
		if key == "" || strings.ContainsAny(key, " \t") {
			return handler.Detail(c, fiber.StatusForbidden, msgBadHeader)
		}

		user, err := authService.UserForToken(key)

		switch {
		case err == nil:
		case errors.Is(err, auth.ErrInvalidToken):
			return handler.Detail(c, fiber.StatusForbidden, msgInvalidToken)
		case errors.Is(err, auth.ErrUserAccountDisabled):
			return handler.Detail(c, fiber.StatusForbidden, msgInactive)
		default:
			log.Error().Err(err).Msg("failed to resolve token")

			return handler.Detail(c, fiber.StatusInternalServerError, handler.MsgServerError)
		}

		c.Locals(LocalsUser, user)

		return c.Next()
	}
}

// CurrentUser returns the user stored by the middleware, nil outside of it.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(LocalsUser).(*models.User)

	return user
}

// Username returns the name of the current user, "" if there is none.
// It fits the User hook of the access log middleware.
func Username(c *fiber.Ctx) string {
	if user := CurrentUser(c); user != nil {
		return user.Username
	}

	return ""
}
