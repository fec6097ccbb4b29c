package addressbook

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/address-book/address-book/internal/db/controller/contactgroup"
	"github.com/address-book/address-book/internal/db/controller/membership"
	"github.com/address-book/address-book/internal/db/models"
	"github.com/address-book/address-book/internal/ownership"
)

// GroupService manages the contact groups of a user.
type GroupService struct {
	db *gorm.DB
}

// NewGroupService creates a GroupService on top of db.
func NewGroupService(db *gorm.DB) *GroupService {
	return &GroupService{db: db}
}

// Create stores a new group of userID holding the referenced contacts.
// All contacts must belong to userID.
func (s *GroupService) Create(ctx context.Context, userID uint64, in ContactGroupInput) (*ContactGroup, error) {
	refs, err := in.validate()
	if err != nil {
		return nil, err
	}

	var out *ContactGroup

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contacts, err := ownership.Contacts(tx, userID, refs)
		if err != nil {
			return ownershipFailure(err, userID, MsgContactsNotOwned)
		}

		g := models.ContactGroup{UserID: userID, Name: in.Name}
		if err = contactgroup.Create(tx, &g); err != nil {
			return err
		}

		edges := make([]models.ContactGroupContact, 0, len(contacts))
		for _, c := range contacts {
			edges = append(edges, models.ContactGroupContact{ContactGroupID: g.ID, ContactID: c.ID})
		}

		if err = membership.LinkAll(tx, edges); err != nil {
			return err
		}

		out, err = groupView(tx, &g)

		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Get returns the group id of userID.
func (s *GroupService) Get(ctx context.Context, userID uint64, id uuid.UUID) (*ContactGroup, error) {
	db := s.db.WithContext(ctx)

	g, err := contactgroup.GetOwned(db, userID, id)
	if errors.Is(err, contactgroup.ErrGroupNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return groupView(db, g)
}

// List returns all groups of userID.
func (s *GroupService) List(ctx context.Context, userID uint64) ([]ContactGroup, error) {
	db := s.db.WithContext(ctx)

	groups, err := contactgroup.ListOwned(db, userID)
	if err != nil {
		return nil, err
	}

	return groupViews(db, groups)
}

// Delete removes the group id of userID and its memberships. Its contacts are kept.
func (s *GroupService) Delete(ctx context.Context, userID uint64, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		g, err := contactgroup.GetOwned(tx, userID, id)
		if errors.Is(err, contactgroup.ErrGroupNotFound) {
			return ErrNotFound
		}

		if err != nil {
			return err
		}

		err = contactgroup.Delete(tx, g)
		if errors.Is(err, contactgroup.ErrGroupNotFound) {
			return ErrNotFound
		}

		return err
	})
}
