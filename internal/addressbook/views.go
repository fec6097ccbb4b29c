package addressbook

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/address-book/address-book/internal/db/controller/contact"
	"github.com/address-book/address-book/internal/db/controller/contactgroup"
	"github.com/address-book/address-book/internal/db/models"
)

// Contact is the API representation of a contact.
type Contact struct {
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name"`
	Email         string      `json:"email"`
	PhoneNumber   string      `json:"phone_number"`
	ContactGroups []uuid.UUID `json:"contact_groups"`
	UUID          uuid.UUID   `json:"uuid"`
}

// ContactGroup is the API representation of a contact group.
type ContactGroup struct {
	Name     string      `json:"name"`
	Contacts []uuid.UUID `json:"contacts"`
	UUID     uuid.UUID   `json:"uuid"`
}

func contactViews(tx *gorm.DB, contacts []models.Contact) ([]Contact, error) {
	ids := make([]uint64, 0, len(contacts))
	for _, c := range contacts {
		ids = append(ids, c.ID)
	}

	groups, err := contact.GroupUUIDs(tx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		refs := groups[c.ID]
		if refs == nil {
			refs = []uuid.UUID{}
		}

		out = append(out, Contact{
			FirstName:     c.FirstName,
			LastName:      c.LastName,
			Email:         c.Email,
			PhoneNumber:   c.PhoneNumber,
			ContactGroups: refs,
			UUID:          c.UUID,
		})
	}

	return out, nil
}

func contactView(tx *gorm.DB, c *models.Contact) (*Contact, error) {
	views, err := contactViews(tx, []models.Contact{*c})
	if err != nil {
		return nil, err
	}

	return &views[0], nil
}

func groupViews(tx *gorm.DB, groups []models.ContactGroup) ([]ContactGroup, error) {
	ids := make([]uint64, 0, len(groups))
	for _, g := range groups {
		ids = append(ids, g.ID)
	}

	contacts, err := contactgroup.ContactUUIDs(tx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]ContactGroup, 0, len(groups))
	for _, g := range groups {
		refs := contacts[g.ID]
		if refs == nil {
			refs = []uuid.UUID{}
		}

		out = append(out, ContactGroup{
			Name:     g.Name,
			Contacts: refs,
			UUID:     g.UUID,
		})
	}

	return out, nil
}

func groupView(tx *gorm.DB, g *models.ContactGroup) (*ContactGroup, error) {
	views, err := groupViews(tx, []models.ContactGroup{*g})
	if err != nil {
		return nil, err
	}

	return &views[0], nil
}
