// Package contactgroup provides the store operations for contact groups.
package contactgroup

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"gorm.io/gorm"

	"github.com/address-book/address-book/internal/db/models"
)

const (
	whereOwnedUUID = "user_id = ? AND uuid = ?"
	whereOwner     = "user_id = ?"
)

var (
	// ErrGroupNotFound is returned when a contact group is not found for the user.
	ErrGroupNotFound = errors.New("contact group not found")
	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)

// GetOwned retrieves the group with the given UUID owned by userID.
func GetOwned(db *gorm.DB, userID uint64, id uuid.UUID) (*models.ContactGroup, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	var g models.ContactGroup

	err := db.Where(whereOwnedUUID, userID, id).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGroupNotFound
	}

	if err != nil {
		return nil, err
	}

	return &g, nil
}

// FindByUUIDs retrieves all groups with one of the given UUIDs, regardless of their owner.
// Unknown UUIDs are silently skipped.
func FindByUUIDs(db *gorm.DB, ids []uuid.UUID) ([]models.ContactGroup, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	groups := []models.ContactGroup{}
	if len(ids) == 0 {
		return groups, nil
	}

	if err := db.Where("uuid IN ?", ids).Find(&groups).Error; err != nil {
		return nil, err
	}

	return groups, nil
}

// ListOwned returns all groups of userID in creation order.
func ListOwned(db *gorm.DB, userID uint64) ([]models.ContactGroup, error) {
	return Search(db, userID, "")
}

// Search returns the groups of userID whose name contains query, ignoring case.
// An empty query matches every group of the user.
// Names are compared with Unicode case folding in Go, SQL LOWER only folds
// ASCII on some engines. The candidates are already scoped to one owner.
func Search(db *gorm.DB, userID uint64, query string) ([]models.ContactGroup, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	groups := []models.ContactGroup{}
	if err := db.Where(whereOwner, userID).Order("id").Find(&groups).Error; err != nil {
		return nil, err
	}

	if query == "" {
		return groups, nil
	}

	folder := cases.Fold()
	needle := folder.String(query)

	matches := groups[:0]

	for _, g := range groups {
		if strings.Contains(folder.String(g.Name), needle) {
			matches = append(matches, g)
		}
	}

	return matches, nil
}

// Create inserts g, a UUID is assigned if g has none.
func Create(db *gorm.DB, g *models.ContactGroup) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Omit("User").Create(g).Error
}

// Delete removes g together with its memberships. Contacts are kept.
func Delete(db *gorm.DB, g *models.ContactGroup) error {
	if db == nil {
		return ErrDBNil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("contact_group_id = ?", g.ID).Delete(&models.ContactGroupContact{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.ContactGroup{}, g.ID)
		if result.Error != nil {
			return result.Error
		}

		if result.RowsAffected == 0 {
			return ErrGroupNotFound
		}

		return nil
	})
}

// ContactUUIDs returns the UUIDs of the contacts in each of the given groups.
// Empty groups are missing from the map.
func ContactUUIDs(db *gorm.DB, groupIDs []uint64) (map[uint64][]uuid.UUID, error) {
	if db == nil {
		return nil, ErrDBNil
	}

	out := make(map[uint64][]uuid.UUID, len(groupIDs))
	if len(groupIDs) == 0 {
		return out, nil
	}

	var rows []struct {
		ContactGroupID uint64
		UUID           uuid.UUID
	}

	err := db.Table("contact_group_contacts AS m").
		Select("m.contact_group_id AS contact_group_id, c.uuid AS uuid").
		Joins("JOIN contacts c ON c.id = m.contact_id").
		Where("m.contact_group_id IN ?", groupIDs).
		Order("c.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		out[r.ContactGroupID] = append(out[r.ContactGroupID], r.UUID)
	}

	return out, nil
}
