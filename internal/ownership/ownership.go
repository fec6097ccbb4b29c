// Package ownership checks that entities referenced by a request belong to
// the requesting user. It runs inside the transaction of the mutation it
// guards and either accepts all references or none.
package ownership

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/address-book/address-book/internal/db/controller/contact"
	"github.com/address-book/address-book/internal/db/controller/contactgroup"
	"github.com/address-book/address-book/internal/db/models"
)

var (
	// ErrReferenceNotFound is matched by an *Error holding a UUID that does not exist at all.
	ErrReferenceNotFound = errors.New("referenced entity does not exist")
	// ErrOwnershipMismatch is matched by an *Error holding a UUID that belongs to another user.
	ErrOwnershipMismatch = errors.New("referenced entity belongs to another user")
)

// Owned is implemented by every entity with an owner and a public UUID.
type Owned interface {
	OwnerID() uint64
	PublicID() uuid.UUID
}

// Rejected is a single reference that failed the check.
type Rejected struct {
	UUID   uuid.UUID
	Reason error // ErrReferenceNotFound or ErrOwnershipMismatch
}

// Error lists every rejected reference of a check.
// Both reasons are kept apart for logging, callers present them the same way.
type Error struct {
	Rejected []Rejected
}

func (e *Error) Error() string {
	parts := make([]string, 0, len(e.Rejected))
	for _, r := range e.Rejected {
		parts = append(parts, fmt.Sprintf("%s: %v", r.UUID, r.Reason))
	}

	return "rejected references: " + strings.Join(parts, ", ")
}

// Is matches the reason of any rejected reference.
func (e *Error) Is(target error) bool {
	for _, r := range e.Rejected {
		if errors.Is(r.Reason, target) {
			return true
		}
	}

	return false
}

// Dedupe drops repeated UUIDs and keeps the first occurrence order.
func Dedupe(refs []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(refs))
	out := make([]uuid.UUID, 0, len(refs))

	for _, id := range refs {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}

// Check matches refs against the entities found for them and returns those
// entities in ref order. It fails with *Error unless every ref was found and
// is owned by userID.
func Check[T Owned](userID uint64, refs []uuid.UUID, found []T) ([]T, error) {
	byUUID := make(map[uuid.UUID]T, len(found))
	for _, e := range found {
		byUUID[e.PublicID()] = e
	}

	var rejected []Rejected

	refs = Dedupe(refs)
	out := make([]T, 0, len(refs))

	for _, id := range refs {
		e, ok := byUUID[id]

		switch {
		case !ok:
			rejected = append(rejected, Rejected{UUID: id, Reason: ErrReferenceNotFound})
		case e.OwnerID() != userID:
			rejected = append(rejected, Rejected{UUID: id, Reason: ErrOwnershipMismatch})
		default:
			out = append(out, e)
		}
	}

	if len(rejected) > 0 {
		return nil, &Error{Rejected: rejected}
	}

	return out, nil
}

// Groups resolves group refs for userID.
func Groups(tx *gorm.DB, userID uint64, refs []uuid.UUID) ([]models.ContactGroup, error) {
	found, err := contactgroup.FindByUUIDs(tx, Dedupe(refs))
	if err != nil {
		return nil, err
	}

	return Check(userID, refs, found)
}

// Contacts resolves contact refs for userID.
func Contacts(tx *gorm.DB, userID uint64, refs []uuid.UUID) ([]models.Contact, error) {
	found, err := contact.FindByUUIDs(tx, Dedupe(refs))
	if err != nil {
		return nil, err
	}

	return Check(userID, refs, found)
}
