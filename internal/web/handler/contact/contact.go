// Package contact serves the contacts of the authenticated user.
package contact

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/address-book/address-book/internal/addressbook"
	"github.com/address-book/address-book/internal/config"
	"github.com/address-book/address-book/internal/web/handler"
	authmiddleware "github.com/address-book/address-book/internal/web/middleware/auth"
)

const (
	// Path is the path of the contacts collection.
	Path = "/contacts"
)

// Service is the contact handler service.
type Service struct {
	handler.Service
	contacts *addressbook.ContactService
}

// Handler is the contact handler.
var Handler = Service{}

// Init registers the contact routes.
func (s *Service) Init(router fiber.Router, cfg *config.Config, db *gorm.DB) error {
	if router == nil || cfg == nil || db == nil {
		return handler.ErrNilACD
	}

	s.contacts = addressbook.NewContactService(db)

	router.Route(Path, func(r fiber.Router) {
		r.Get(handler.RootPath, s.List)
		r.Post(handler.RootPath, s.Create)
		r.Get("/:"+handler.UUIDParam, s.Get)
		r.Delete("/:"+handler.UUIDParam, s.Delete)
	})

	return nil
}

// List returns all contacts of the user.
func (s *Service) List(c *fiber.Ctx) error {
	user := authmiddleware.CurrentUser(c)

	contacts, err := s.contacts.List(c.UserContext(), user.ID)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(contacts)
}

// Create stores a new contact of the user.
func (s *Service) Create(c *fiber.Ctx) error {
	var in addressbook.ContactInput
	if ok, err := handler.Bind(c, &in); !ok {
		return err
	}

	user := authmiddleware.CurrentUser(c)

	contact, err := s.contacts.Create(c.UserContext(), user.ID, in)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(contact)
}

// Get returns a single contact of the user.
func (s *Service) Get(c *fiber.Ctx) error {
	id, ok := handler.ParamUUID(c, handler.UUIDParam)
	if !ok {
		return handler.Detail(c, fiber.StatusNotFound, handler.MsgNotFound)
	}

	user := authmiddleware.CurrentUser(c)

	contact, err := s.contacts.Get(c.UserContext(), user.ID, id)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(contact)
}

// Delete removes a contact of the user.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok := handler.ParamUUID(c, handler.UUIDParam)
	if !ok {
		return handler.Detail(c, fiber.StatusNotFound, handler.MsgNotFound)
	}

	user := authmiddleware.CurrentUser(c)

	if err := s.contacts.Delete(c.UserContext(), user.ID, id); err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
