// Package membership provides the store operations for the edges between
// contacts and contact groups. Ownership is checked by the callers.
package membership

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/address-book/address-book/internal/db/models"
)

// ErrDBNil is returned when the database connection is nil.
var ErrDBNil = errors.New("database connection is nil")

const whereEdge = "contact_group_id = ? AND contact_id = ?"

// Link puts contactID into groupID.
// It reports false if the edge already existed; the unique key decides, so
// concurrent links of the same pair never fail.
func Link(db *gorm.DB, groupID, contactID uint64) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	edge := models.ContactGroupContact{ContactGroupID: groupID, ContactID: contactID}

	result := db.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&edge)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// LinkAll creates every given edge, existing edges are skipped.
func LinkAll(db *gorm.DB, edges []models.ContactGroupContact) error {
	if db == nil {
		return ErrDBNil
	}

	if len(edges) == 0 {
		return nil
	}

	return db.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(&edges).Error
}

// Unlink removes contactID from groupID. It reports false if there was no such edge.
func Unlink(db *gorm.DB, groupID, contactID uint64) (bool, error) {
	if db == nil {
		return false, ErrDBNil
	}

	result := db.Where(whereEdge, groupID, contactID).Delete(&models.ContactGroupContact{})
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

// Contacts returns the contacts of groupID in creation order.
func Contacts(db *gorm.DB, groupID uint64) ([]models.Contact, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	contacts := []models.Contact{}

	err := db.Joins("JOIN contact_group_contacts m ON m.contact_id = contacts.id").
		Where("m.contact_group_id = ?", groupID).
		Order("contacts.id").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}

	return contacts, nil
}
