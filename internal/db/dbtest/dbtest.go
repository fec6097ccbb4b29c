// Package dbtest provides an in-memory database and fixtures for tests.
package dbtest

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/address-book/address-book/internal/db/models"
)

// New creates a migrated in-memory SQLite database for testing.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	// foreign keys on, as the production DSN does
	db, err := gorm.Open(sqlite.Open(":memory:?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err, "failed to create test database")

	// every connection of :memory: is a database of its own
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...), "failed to migrate test database")

	return db
}

// User inserts an active user named username.
func User(t testing.TB, db *gorm.DB, username string) *models.User {
	t.Helper()

	u := &models.User{
		Active:    true,
		Username:  username,
		Email:     username + "@example.com",
		FirstName: username,
	}
	require.NoError(t, db.Create(u).Error, "failed to seed user")

	return u
}

// Contact inserts a contact owned by owner.
func Contact(t testing.TB, db *gorm.DB, owner *models.User, firstName string) *models.Contact {
	t.Helper()

	c := &models.Contact{
		UserID:    owner.ID,
		FirstName: firstName,
		Email:     firstName + "@example.org",
	}
	require.NoError(t, db.Create(c).Error, "failed to seed contact")

	return c
}

// Group inserts a contact group owned by owner.
func Group(t testing.TB, db *gorm.DB, owner *models.User, name string) *models.ContactGroup {
	t.Helper()

	g := &models.ContactGroup{
		UserID: owner.ID,
		Name:   name,
	}
	require.NoError(t, db.Create(g).Error, "failed to seed contact group")

	return g
}

// Link puts contact into group.
func Link(t testing.TB, db *gorm.DB, group *models.ContactGroup, contact *models.Contact) {
	t.Helper()

	edge := &models.ContactGroupContact{ContactGroupID: group.ID, ContactID: contact.ID}
	require.NoError(t, db.Create(edge).Error, "failed to seed membership")
}

// CountEdges returns the number of membership rows.
func CountEdges(t testing.TB, db *gorm.DB) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(&models.ContactGroupContact{}).Count(&n).Error)

	return n
}

// CountRows returns the number of rows of model.
func CountRows(t testing.TB, db *gorm.DB, model any) int64 {
	t.Helper()

	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)

	return n
}
