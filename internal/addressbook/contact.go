package addressbook

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/address-book/address-book/internal/db/controller/contact"
	"github.com/address-book/address-book/internal/db/controller/membership"
	"github.com/address-book/address-book/internal/db/models"
	"github.com/address-book/address-book/internal/ownership"
)

// ContactService manages the contacts of a user.
type ContactService struct {
	db *gorm.DB
}

// NewContactService creates a ContactService on top of db.
func NewContactService(db *gorm.DB) *ContactService {
	return &ContactService{db: db}
}

// Create stores a new contact of userID and puts it into the referenced groups.
// All groups must belong to userID.
func (s *ContactService) Create(ctx context.Context, userID uint64, in ContactInput) (*Contact, error) {
	refs, err := in.validate()
	if err != nil {
		return nil, err
	}

	var out *Contact

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		groups, err := ownership.Groups(tx, userID, refs)
		if err != nil {
			return ownershipFailure(err, userID, MsgGroupsNotOwned)
		}

		c := models.Contact{
			UserID:      userID,
			FirstName:   in.FirstName,
			LastName:    in.LastName,
			Email:       in.Email,
			PhoneNumber: in.PhoneNumber,
		}

		if err = contact.Create(tx, &c); err != nil {
			return err
		}

		edges := make([]models.ContactGroupContact, 0, len(groups))
		for _, g := range groups {
			edges = append(edges, models.ContactGroupContact{ContactGroupID: g.ID, ContactID: c.ID})
		}

		if err = membership.LinkAll(tx, edges); err != nil {
			return err
		}

		out, err = contactView(tx, &c)

		return err
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// Get returns the contact id of userID.
func (s *ContactService) Get(ctx context.Context, userID uint64, id uuid.UUID) (*Contact, error) {
	db := s.db.WithContext(ctx)

	c, err := contact.GetOwned(db, userID, id)
	if errors.Is(err, contact.ErrContactNotFound) {
		return nil, ErrNotFound
	}

	if err != nil {
		return nil, err
	}

	return contactView(db, c)
}

// List returns all contacts of userID.
func (s *ContactService) List(ctx context.Context, userID uint64) ([]Contact, error) {
	db := s.db.WithContext(ctx)

	contacts, err := contact.ListOwned(db, userID)
	if err != nil {
		return nil, err
	}

	return contactViews(db, contacts)
}

// Delete removes the contact id of userID and its memberships. Its groups are kept.
func (s *ContactService) Delete(ctx context.Context, userID uint64, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := contact.GetOwned(tx, userID, id)
		if errors.Is(err, contact.ErrContactNotFound) {
			return ErrNotFound
		}

		if err != nil {
			return err
		}

		err = contact.Delete(tx, c)
		if errors.Is(err, contact.ErrContactNotFound) {
			return ErrNotFound
		}

		return err
	})
}

// ownershipFailure turns a rejected reference check into a validation error.
// Unknown and foreign references are reported the same way.
func ownershipFailure(err error, userID uint64, msg string) error {
	var oErr *ownership.Error
	if !errors.As(err, &oErr) {
		return err
	}

	log.Warn().Err(err).Uint64("user_id", userID).Msg("rejected references")

	verr := NewValidationError()
	verr.Add(NonFieldErrors, msg)

	return verr
}
