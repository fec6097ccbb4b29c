package models

import "time"

// ContactGroupContact is the membership edge between a contact and a group.
// The composite primary key makes every (group, contact) pair unique.
type ContactGroupContact struct {
	// ContactGroupID is the ID of the group in this membership.
	ContactGroupID uint64 `gorm:"primaryKey;column:contact_group_id"`
	// ContactID is the ID of the contact in this membership.
	ContactID uint64 `gorm:"primaryKey;column:contact_id;index"`
	// ContactGroup is the associated group.
	// Deleting the group removes its memberships but never the contacts (CASCADE).
	ContactGroup ContactGroup `gorm:"foreignKey:ContactGroupID;constraint:OnDelete:CASCADE"`
	// Contact is the associated contact.
	// Deleting the contact removes its memberships but never the groups (CASCADE).
	Contact Contact `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE"`
	// CreatedAt is the timestamp when the contact was added to the group (managed by GORM).
	CreatedAt time.Time
}

// TableName specifies the database table name for the ContactGroupContact model.
func (ContactGroupContact) TableName() string {
	return "contact_group_contacts"
}
