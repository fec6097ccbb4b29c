// Package user serves the account of the authenticated user.
package user

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/address-book/address-book/internal/config"
	"github.com/address-book/address-book/internal/db/models"
	"github.com/address-book/address-book/internal/web/handler"
	authmiddleware "github.com/address-book/address-book/internal/web/middleware/auth"
)

const (
	// Path is the path of the users collection.
	Path = "/users"

	mePath        = "/me"
	usernameParam = "username"
)

// Response is the API representation of a user.
type Response struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	URL      string `json:"url"`
}

// Service is the user handler service.
type Service struct {
	handler.Service
	cfg *config.Config
}

// Handler is the user handler.
var Handler = Service{}

// Init registers the user routes.
func (s *Service) Init(router fiber.Router, cfg *config.Config, db *gorm.DB) error {
	if router == nil || cfg == nil || db == nil {
		return handler.ErrNilACD
	}

	s.cfg = cfg

	router.Route(Path, func(r fiber.Router) {
		r.Get(handler.RootPath, s.List)
		r.Get(mePath, s.Me)
		r.Get("/:"+usernameParam, s.Get)
	})

	return nil
}

func (s *Service) response(u *models.User) Response {
	return Response{
		Username: u.Username,
		Name:     u.Name(),
		URL:      strings.TrimSuffix(s.cfg.Webserver.URL, "/") + "/api" + Path + "/" + u.Username + "/",
	}
}

// List returns the users visible to the caller, which is only the caller.
func (s *Service) List(c *fiber.Ctx) error {
	return c.JSON([]Response{s.response(authmiddleware.CurrentUser(c))})
}

// Me returns the caller.
func (s *Service) Me(c *fiber.Ctx) error {
	return c.JSON(s.response(authmiddleware.CurrentUser(c)))
}

// Get returns the caller if username names them, 404 for everybody else.
func (s *Service) Get(c *fiber.Ctx) error {
	user := authmiddleware.CurrentUser(c)
	if c.Params(usernameParam) != user.Username {
		return handler.Detail(c, fiber.StatusNotFound, handler.MsgNotFound)
	}

	return c.JSON(s.response(user))
}
