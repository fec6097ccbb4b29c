// Package contact provides the store operations for contacts.
// Lookups taking a user ID are scoped to that owner, foreign contacts behave
// as if they did not exist.
package contact

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/address-book/address-book/internal/db/models"
)

const (
	whereOwnedUUID = "user_id = ? AND uuid = ?"
	whereOwner     = "user_id = ?"
)

var (
	// ErrContactNotFound is returned when a contact is not found for the user.
	ErrContactNotFound = errors.New("contact not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetOwned retrieves the contact with the given UUID owned by userID.
func GetOwned(db *gorm.DB, userID uint64, id uuid.UUID) (*models.Contact, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var c models.Contact

	err := db.Where(whereOwnedUUID, userID, id).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContactNotFound
	}

	if err != nil {
		return nil, err
	}

	return &c, nil
}

// FindByUUIDs retrieves all contacts with one of the given UUIDs, regardless of their owner.
// Unknown UUIDs are silently skipped.
func FindByUUIDs(db *gorm.DB, ids []uuid.UUID) ([]models.Contact, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	contacts := []models.Contact{}
	if len(ids) == 0 {
		return contacts, nil
	}

	if err := db.Where("uuid IN ?", ids).Find(&contacts).Error; err != nil {
		return nil, err
	}

	return contacts, nil
}

// ListOwned returns all contacts of userID in creation order.
func ListOwned(db *gorm.DB, userID uint64) ([]models.Contact, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	contacts := []models.Contact{}
	if err := db.Where(whereOwner, userID).Order("id").Find(&contacts).Error; err != nil {
		return nil, err
	}

	return contacts, nil
}

// Create inserts c, a UUID is assigned if c has none.
func Create(db *gorm.DB, c *models.Contact) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Omit("User").Create(c).Error
}

// Delete removes c together with its memberships. Groups are kept.
func Delete(db *gorm.DB, c *models.Contact) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contact_id = ?", c.ID).Delete(&models.ContactGroupContact{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Contact{}, c.ID)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return ErrContactNotFound
		}

		return nil
	})
}

// GroupUUIDs returns the UUIDs of the groups each of the given contacts belongs to.
// Contacts without groups are missing from the map.
func GroupUUIDs(db *gorm.DB, contactIDs []uint64) (map[uint64][]uuid.UUID, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	out := make(map[uint64][]uuid.UUID, len(contactIDs))
	if len(contactIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		ContactID uint64
		UUID      uuid.UUID
	}

	err := db.Table("contact_group_contacts AS m").
		Select("m.contact_id AS contact_id, g.uuid AS uuid").
		Joins("JOIN contact_groups g ON g.id = m.contact_group_id").
		Where("m.contact_id IN ?", contactIDs).
		Order("g.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		out[r.ContactID] = append(out[r.ContactID], r.UUID)
	}

	return out, nil
}
