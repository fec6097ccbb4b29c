package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/address-book/address-book/internal/db/dbtest"
	"github.com/address-book/address-book/internal/db/models"
)

func TestLocalProvider(t *testing.T) {
	db := dbtest.New(t)
	p := NewLocalProvider(db)

	user, err := p.CreateUser("alice", "alice@example.com", "s3cret", "Alice", "Liddell")
	require.NoError(t, err)
	assert.True(t, user.Active)
	assert.NotEqual(t, "s3cret", user.Password)
	assert.Equal(t, "Alice Liddell", user.Name())

	_, err = p.CreateUser("alice", "other@example.com", "pw", "", "")
	require.ErrorIs(t, err, ErrUserNameOrEmailExists)

	_, err = p.CreateUser("", "x@example.com", "pw", "", "")
	require.ErrorIs(t, err, ErrMissingCredentials)

	got, err := p.Authenticate("alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = p.Authenticate("alice", "wrong")
	require.ErrorIs(t, err, ErrInvalidPassword)

	_, err = p.Authenticate("nobody", "s3cret")
	require.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, p.SetActive(user.ID, false))

	_, err = p.Authenticate("alice", "s3cret")
	require.ErrorIs(t, err, ErrUserAccountDisabled)

	require.ErrorIs(t, p.SetActive(999, true), ErrUserNotFound)

	n, err := p.CountUsers()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestTokens(t *testing.T) {
	db := dbtest.New(t)
	s := NewService(db)

	user, err := s.Local.CreateUser("alice", "alice@example.com", "s3cret", "", "")
	require.NoError(t, err)

	token, err := s.Login("alice", "s3cret")
	require.NoError(t, err)
	assert.Len(t, token.Key, models.TokenKeyLength)

	again, err := s.Login("alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, token.Key, again.Key, "a user keeps a single token")

	_, err = s.Login("alice", "nope")
	require.ErrorIs(t, err, ErrInvalidPassword)

	got, err := s.UserForToken(token.Key)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = s.UserForToken("short")
	require.ErrorIs(t, err, ErrInvalidToken)

	other, err := GenerateTokenKey()
	require.NoError(t, err)

	_, err = s.UserForToken(other)
	require.ErrorIs(t, err, ErrInvalidToken)

	require.NoError(t, s.Local.SetActive(user.ID, false))

	_, err = s.UserForToken(token.Key)
	require.ErrorIs(t, err, ErrUserAccountDisabled)

	require.NoError(t, s.RevokeToken(user.ID))
	require.NoError(t, s.Local.SetActive(user.ID, true))

	_, err = s.UserForToken(token.Key)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestDeleteUserCascades(t *testing.T) {
	db := dbtest.New(t)
	p := NewLocalProvider(db)
	s := NewService(db)

	alice := dbtest.User(t, db, "alice")
	bob := dbtest.User(t, db, "bob")

	for _, u := range []*models.User{alice, bob} {
		c := dbtest.Contact(t, db, u, "Carol")
		g := dbtest.Group(t, db, u, "Family")
		dbtest.Link(t, db, g, c)

		_, err := s.IssueToken(u.ID)
		require.NoError(t, err)
	}

	require.NoError(t, p.DeleteUser(alice.ID))
	require.ErrorIs(t, p.DeleteUser(alice.ID), ErrUserNotFound)

	// only bob's rows are left
	assert.EqualValues(t, 1, dbtest.CountRows(t, db, &models.User{}))
	assert.EqualValues(t, 1, dbtest.CountRows(t, db, &models.Token{}))
	assert.EqualValues(t, 1, dbtest.CountRows(t, db, &models.Contact{}))
	assert.EqualValues(t, 1, dbtest.CountRows(t, db, &models.ContactGroup{}))
	assert.EqualValues(t, 1, dbtest.CountEdges(t, db))

	var left models.Contact
	require.NoError(t, db.First(&left).Error)
	assert.Equal(t, bob.ID, left.UserID)
}

func TestForeignKeysEnforced(t *testing.T) {
	db := dbtest.New(t)

	orphan := models.Contact{UserID: 4242, FirstName: "Nobody", Email: "nobody@example.org"}
	require.Error(t, db.Create(&orphan).Error, "contact of an unknown user")
}
