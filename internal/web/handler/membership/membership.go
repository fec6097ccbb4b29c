// Package membership serves the contacts of a contact group.
package membership

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/address-book/address-book/internal/addressbook"
	"github.com/address-book/address-book/internal/config"
	"github.com/address-book/address-book/internal/web/handler"
	authmiddleware "github.com/address-book/address-book/internal/web/middleware/auth"
)

const (
	groupParam   = "group"
	contactParam = "contact"

	// Path is the path of the contacts of a group.
	Path = "/contact_groups/:" + groupParam + "/contacts"
)

// Service is the membership handler service.
type Service struct {
	handler.Service
	memberships *addressbook.MembershipService
}

// Handler is the membership handler.
var Handler = Service{}

// Init registers the membership routes.
func (s *Service) Init(router fiber.Router, cfg *config.Config, db *gorm.DB) error {
	if router == nil || cfg == nil || db == nil {
		return handler.ErrNilACD
	}

	s.memberships = addressbook.NewMembershipService(db)

	router.Route(Path, func(r fiber.Router) {
		r.Get(handler.RootPath, s.List)
		r.Post(handler.RootPath, s.Add)
		r.Delete("/:"+contactParam, s.Remove)
	})

	return nil
}

// List returns the contacts in the group.
func (s *Service) List(c *fiber.Ctx) error {
	groupID, ok := handler.ParamUUID(c, groupParam)
	if !ok {
		return handler.Detail(c, fiber.StatusNotFound, handler.MsgNotFound)
	}

	user := authmiddleware.CurrentUser(c)

	contacts, err := s.memberships.Contacts(c.UserContext(), user.ID, groupID)
	if err != nil {
		return handler.Error(c, err)
	}

	return c.JSON(contacts)
}

// Add puts the contact {"uuid": ...} into the group.
// It answers 200 if the contact was added and 303 if it was a member already,
// both with the contact as body.
func (s *Service) Add(c *fiber.Ctx) error {
	groupID, ok := handler.ParamUUID(c, groupParam)
	if !ok {
		return handler.Detail(c, fiber.StatusNotFound, handler.MsgNotFound)
	}

	var in addressbook.MembershipInput
	if ok, err := handler.Bind(c, &in); !ok {
		return err
	}

	user := authmiddleware.CurrentUser(c)

	contact, result, err := s.memberships.Add(c.UserContext(), user.ID, groupID, in)
	if err != nil {
		return handler.Error(c, err)
	}

	status := fiber.StatusOK
	if result == addressbook.AlreadyMember {
		status = fiber.StatusSeeOther
	}

	return c.Status(status).JSON(contact)
}

// Remove takes the contact out of the group.
func (s *Service) Remove(c *fiber.Ctx) error {
	groupID, ok := handler.ParamUUID(c, groupParam)
	if !ok {
		return handler.Detail(c, fiber.StatusNotFound, handler.MsgNotFound)
	}

	contactID, ok := handler.ParamUUID(c, contactParam)
	if !ok {
		return handler.Detail(c, fiber.StatusNotFound, handler.MsgNotFound)
	}

	user := authmiddleware.CurrentUser(c)

	if err := s.memberships.Remove(c.UserContext(), user.ID, groupID, contactID); err != nil {
		return handler.Error(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
