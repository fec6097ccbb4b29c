// Package token exchanges username and password for the API token.
package token

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/address-book/address-book/internal/addressbook"
	"github.com/address-book/address-book/internal/auth"
	"github.com/address-book/address-book/internal/config"
	"github.com/address-book/address-book/internal/web/handler"
)

const (
	// Path is the path of the token endpoint.
	Path = "/auth-token"

	msgInvalidCredentials = "Unable to log in with provided credentials."
	msgRequired           = "This field is required."
)

// Request is the login body.
type Request struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Response carries the token key.
type Response struct {
	Token string `json:"token"`
}

// Service is the token handler service.
type Service struct {
	handler.Service
	authService *auth.Service
}

// Handler is the token handler.
var Handler = Service{}

// Init registers the token route.
func (s *Service) Init(router fiber.Router, cfg *config.Config, db *gorm.DB) error {
	if router == nil || cfg == nil || db == nil {
		return handler.ErrNilACD
	}

	s.authService = auth.NewService(db)

	router.Post(Path, s.Post)

	return nil
}

// Post answers valid credentials with the token of the user.
func (s *Service) Post(c *fiber.Ctx) error {
	var req Request
	if ok, err := handler.Bind(c, &req); !ok {
		return err
	}

	verr := addressbook.NewValidationError()
	if req.Username == "" {
		verr.Add("username", msgRequired)
	}

	if req.Password == "" {
		verr.Add("password", msgRequired)
	}

	if !verr.Empty() {
		return c.Status(fiber.StatusBadRequest).JSON(verr.Fields)
	}

	token, err := s.authService.Login(req.Username, req.Password)

	switch {
	case err == nil:
		return c.JSON(Response{Token: token.Key})
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, auth.ErrInvalidPassword),
		errors.Is(err, auth.ErrUserAccountDisabled):
		log.Warn().Err(err).Str("username", req.Username).Msg("login failed")

		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			addressbook.NonFieldErrors: []string{msgInvalidCredentials},
		})
	default:
		return handler.Error(c, err)
	}
}
