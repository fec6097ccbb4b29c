package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactGroup is a named collection of contacts, e.g. "Family" or "Work".
// A group may be empty.
type ContactGroup struct {
	// ID is the internal identifier, never exposed by the API.
	ID uint64 `gorm:"primaryKey"`
	// UUID is the public identifier. It is generated on create and never changes.
	UUID uuid.UUID `gorm:"type:varchar(36);uniqueIndex;not null"`
	// UserID is the owner of the group.
	UserID uint64 `gorm:"index;not null"`
	// User is the owner (loaded via foreign key).
	// When the owner is deleted, the group is removed as well (CASCADE).
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// Name is the display name, never empty.
	Name string `gorm:"size:255;not null"`
	// CreatedAt is the timestamp when the group was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the group was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the ContactGroup model.
func (ContactGroup) TableName() string {
	return "contact_groups"
}

// BeforeCreate assigns a fresh UUID unless one was set by the caller.
func (g *ContactGroup) BeforeCreate(_ *gorm.DB) error {
	if g.UUID == uuid.Nil {
		g.UUID = uuid.New()
	}

	return nil
}

// OwnerID returns the id of the owning user.
func (g ContactGroup) OwnerID() uint64 { return g.UserID }

// PublicID returns the public UUID.
func (g ContactGroup) PublicID() uuid.UUID { return g.UUID }
