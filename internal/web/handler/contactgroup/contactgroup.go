// Package contactgroup serves the contact groups of the authenticated user,
// including the search by name.
package contactgroup

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/address-book/address-book/internal/addressbook"
	"github.com/address-book/address-book/internal/config"
	"github.com/address-book/address-book/internal/web/handler"
	authmiddleware "github.com/address-book/address-book/internal/web/middleware/auth"
)

const (
	// Path is the path of the contact groups collection.
	Path = "/contact_groups"

	// SearchPath is the search endpoint below Path.
	SearchPath = "/search"

	// SearchQuery is the query parameter holding the name to search for.
	SearchQuery = "name"
)

// Service is the contact group handler service.
type Service struct {
	handler.Service
	groups *addressbook.GroupService
	search *addressbook.SearchService
}

// Handler is the contact group handler.
var Handler = Service{}

// Init registers the contact group routes.
func (s *Service) Init(router fiber.Router, cfg *config.Config, db *gorm.DB) error {
	if router == nil || cfg == nil || db == nil {
		return handler.ErrNilACD
	}

	s.groups = addressbook.NewGroupService(db)
	s.search = addressbook.NewSearchService(db)

	router.Route(Path, func(r fiber.Router) {
		r.Get(handler.RootPath, s.List)
		r.Post(handler.RootPath, s.Create)
		// before /:uuid, "search" is not a UUID
		r.Get(SearchPath, s.Search)
		r.Get("/:"+handler.UUIDParam, s.Get)
		r.Delete("/:"+handler.UUIDParam, s.Delete)
	})

	return nil
}

// List returns all groups of the user.
func (s *Service) List(c *fiber.Ctx) error {
	user := authmiddleware.CurrentUser(c)

	groups, err := s.groups.List(c.UserContext(), user.ID)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(groups)
}

// Create stores a new group of the user.
func (s *Service) Create(c *fiber.Ctx) error {
	var in addressbook.ContactGroupInput
	if ok, err := handler.Bind(c, &in); !ok {
		return err
	}

	user := authmiddleware.CurrentUser(c)

	group, err := s.groups.Create(c.UserContext(), user.ID, in)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(group)
}

// Get returns a single group of the user.
func (s *Service) Get(c *fiber.Ctx) error {
	id, ok := handler.ParamUUID(c, handler.UUIDParam)
	if !ok {
		return handler.Detail(c, fiber.StatusNotFound, handler.MsgNotFound)
	}

	user := authmiddleware.CurrentUser(c)

	group, err := s.groups.Get(c.UserContext(), user.ID, id)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(group)
}

// Delete removes a group of the user, its contacts are kept.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok := handler.ParamUUID(c, handler.UUIDParam)
	if !ok {
		return handler.Detail(c, fiber.StatusNotFound, handler.MsgNotFound)
	}

	user := authmiddleware.CurrentUser(c)

	if err := s.groups.Delete(c.UserContext(), user.ID, id); err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Search returns the groups of the user whose name contains ?name=, ignoring case.
func (s *Service) Search(c *fiber.Ctx) error {
	user := authmiddleware.CurrentUser(c)

	groups, err := s.search.Search(c.UserContext(), user.ID, c.Query(SearchQuery))
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(groups)
}
