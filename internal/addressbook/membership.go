package addressbook

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/address-book/address-book/internal/db/controller/contact"
	"github.com/address-book/address-book/internal/db/controller/contactgroup"
	"github.com/address-book/address-book/internal/db/controller/membership"
	"github.com/address-book/address-book/internal/db/models"
	"github.com/address-book/address-book/internal/ownership"
)

// AddResult tells whether Add created a membership.
type AddResult int

const (
	// Added means the contact was put into the group.
	Added AddResult = iota
	// AlreadyMember means the contact was in the group before, nothing changed.
	AlreadyMember
)

func (r AddResult) String() string {
	if r == AlreadyMember {
		return "already member"
	}

	return "added"
}

// MembershipService manages which contacts are in which groups.
type MembershipService struct {
	db *gorm.DB
}

// NewMembershipService creates a MembershipService on top of db.
func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{db: db}
}

// ownedGroup resolves the group side of a membership.
func ownedGroup(tx *gorm.DB, userID uint64, id uuid.UUID) (*models.ContactGroup, error) {
	g, err := contactgroup.GetOwned(tx, userID, id)
	if errors.Is(err, contactgroup.ErrGroupNotFound) {
		return nil, &NotFoundError{Entity: EntityContactGroup, UUID: id}
	}

	return g, err
}

// Add puts the contact into the group of userID.
// The group is checked first, then the contact, the first failing side is
// named in the returned *NotFoundError.
func (s *MembershipService) Add(
	ctx context.Context, userID uint64, groupID uuid.UUID, in MembershipInput,
) (*Contact, AddResult, error) {
	contactID, err := in.validate()
	if err != nil {
		return nil, Added, err
	}

	var (
		out    *Contact
		result = Added
	)

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g, err := ownedGroup(tx, userID, groupID)
		if err != nil {
			return err
		}

		contacts, err := ownership.Contacts(tx, userID, []uuid.UUID{contactID})
		if err != nil {
			var oErr *ownership.Error
			if errors.As(err, &oErr) {
				return &NotFoundError{Entity: EntityContact, UUID: contactID}
			}

			return err
		}

		created, err := membership.Link(tx, g.ID, contacts[0].ID)
		if err != nil {
			return err
		}

		if !created {
			result = AlreadyMember
		}

		out, err = contactView(tx, &contacts[0])

		return err
	})
	if err != nil {
		return nil, Added, err
	}

	return out, result, nil
}

// Remove takes the contact out of the group of userID.
// Removing a contact that is not in the group succeeds.
func (s *MembershipService) Remove(ctx context.Context, userID uint64, groupID, contactID uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g, err := ownedGroup(tx, userID, groupID)
		if err != nil {
			return err
		}

		c, err := contact.GetOwned(tx, userID, contactID)
		if errors.Is(err, contact.ErrContactNotFound) {
			return &NotFoundError{Entity: EntityContact, UUID: contactID}
		}

		if err != nil {
			return err
		}

		_, err = membership.Unlink(tx, g.ID, c.ID)

		return err
	})
}

// Contacts lists the contacts in the group of userID.
func (s *MembershipService) Contacts(ctx context.Context, userID uint64, groupID uuid.UUID) ([]Contact, error) {
	db := s.db.WithContext(ctx)

	g, err := ownedGroup(db, userID, groupID)
	if err != nil {
		return nil, err
	}

	contacts, err := membership.Contacts(db, g.ID)
	if err != nil {
		return nil, err
	}

	return contactViews(db, contacts)
}
