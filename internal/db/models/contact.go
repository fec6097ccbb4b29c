package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact is a person in the address book of its owner.
// It carries at least one name and at least one way to reach the person.
type Contact struct {
	// ID is the internal identifier, never exposed by the API.
	ID uint64 `gorm:"primaryKey"`
	// UUID is the public identifier. It is generated on create and never changes.
	UUID uuid.UUID `gorm:"type:varchar(36);uniqueIndex;not null"`
	// UserID is the owner of the contact.
	UserID uint64 `gorm:"index;not null"`
	// User is the owner (loaded via foreign key).
	// When the owner is deleted, the contact is removed as well (CASCADE).
	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	// FirstName of the person.
	FirstName string `gorm:"size:63;not null"`
	// LastName of the person.
	LastName string `gorm:"size:63;not null"`
	// Email of the person.
	Email string `gorm:"size:255;not null"`
	// PhoneNumber in E.164 format.
	PhoneNumber string `gorm:"size:15;not null"`
	// CreatedAt is the timestamp when the contact was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the contact was last updated (managed by GORM).
	UpdatedAt time.Time
}

// TableName specifies the database table name for the Contact model.
func (Contact) TableName() string {
	return "contacts"
}

// BeforeCreate assigns a fresh UUID unless one was set by the caller.
func (c *Contact) BeforeCreate(_ *gorm.DB) error {
	if c.UUID == uuid.Nil {
		c.UUID = uuid.New()
	}

	return nil
}

// OwnerID returns the id of the owning user.
func (c Contact) OwnerID() uint64 { return c.UserID }

// PublicID returns the public UUID.
func (c Contact) PublicID() uuid.UUID { return c.UUID }
