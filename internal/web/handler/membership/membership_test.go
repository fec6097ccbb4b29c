package membership

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/address-book/address-book/internal/addressbook"
	"github.com/address-book/address-book/internal/db/dbtest"
	"github.com/address-book/address-book/internal/web/webtest"
)

func contactsPath(group uuid.UUID) string {
	return "/api/contact_groups/" + group.String() + "/contacts/"
}

func notFound(entity string, id uuid.UUID) string {
	return fmt.Sprintf(`{"detail":"%s with UUID '%s' does not exist for your user."}`, entity, id)
}

func TestMembership_AddTwice(t *testing.T) {
	db := dbtest.New(t)
	alice := dbtest.User(t, db, "alice")
	group := dbtest.Group(t, db, alice, "Friends")
	bob := dbtest.Contact(t, db, alice, "Bob")
	token := webtest.Token(t, db, alice)
	app := webtest.App(t, db, &Service{})

	body := fiber.Map{"uuid": bob.UUID.String()}

	code, resp := webtest.Do(t, app, http.MethodPost, contactsPath(group.UUID), token, body)
	require.Equal(t, fiber.StatusOK, code, string(resp))

	added := webtest.Decode[addressbook.Contact](t, resp)
	assert.Equal(t, bob.UUID, added.UUID)
	assert.Equal(t, []uuid.UUID{group.UUID}, added.ContactGroups)

	code, resp = webtest.Do(t, app, http.MethodPost, contactsPath(group.UUID), token, body)
	require.Equal(t, fiber.StatusSeeOther, code, string(resp))
	assert.Equal(t, added, webtest.Decode[addressbook.Contact](t, resp))

	assert.EqualValues(t, 1, dbtest.CountEdges(t, db))

	code, resp = webtest.Do(t, app, http.MethodGet, contactsPath(group.UUID), token, nil)
	require.Equal(t, fiber.StatusOK, code)

	listed := webtest.Decode[[]addressbook.Contact](t, resp)
	require.Len(t, listed, 1)
	assert.Equal(t, bob.UUID, listed[0].UUID)
}

func TestMembership_AddNamesFailingSide(t *testing.T) {
	db := dbtest.New(t)
	alice := dbtest.User(t, db, "alice")
	mallory := dbtest.User(t, db, "mallory")
	group := dbtest.Group(t, db, alice, "Friends")
	bob := dbtest.Contact(t, db, alice, "Bob")
	foreignGroup := dbtest.Group(t, db, mallory, "Secret")
	foreignContact := dbtest.Contact(t, db, mallory, "Eve")
	token := webtest.Token(t, db, alice)
	app := webtest.App(t, db, &Service{})

	code, resp := webtest.Do(t, app, http.MethodPost, contactsPath(foreignGroup.UUID), token,
		fiber.Map{"uuid": bob.UUID.String()})
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.JSONEq(t, notFound(addressbook.EntityContactGroup, foreignGroup.UUID), string(resp))

	code, resp = webtest.Do(t, app, http.MethodPost, contactsPath(group.UUID), token,
		fiber.Map{"uuid": foreignContact.UUID.String()})
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.JSONEq(t, notFound(addressbook.EntityContact, foreignContact.UUID), string(resp))

	assert.Zero(t, dbtest.CountEdges(t, db))
}

func TestMembership_AddBadBody(t *testing.T) {
	db := dbtest.New(t)
	alice := dbtest.User(t, db, "alice")
	group := dbtest.Group(t, db, alice, "Friends")
	token := webtest.Token(t, db, alice)
	app := webtest.App(t, db, &Service{})

	for _, body := range []any{nil, fiber.Map{}, fiber.Map{"uuid": "nope"}} {
		code, resp := webtest.Do(t, app, http.MethodPost, contactsPath(group.UUID), token, body)
		assert.Equal(t, fiber.StatusBadRequest, code, string(resp))
		assert.NotEmpty(t, webtest.Decode[map[string][]string](t, resp)["uuid"])
	}
}

func TestMembership_Remove(t *testing.T) {
	db := dbtest.New(t)
	alice := dbtest.User(t, db, "alice")
	group := dbtest.Group(t, db, alice, "Friends")
	bob := dbtest.Contact(t, db, alice, "Bob")
	dbtest.Link(t, db, group, bob)
	token := webtest.Token(t, db, alice)
	app := webtest.App(t, db, &Service{})

	path := contactsPath(group.UUID) + bob.UUID.String() + "/"

	// the second call removes nothing and still succeeds
	for range 2 {
		code, resp := webtest.Do(t, app, http.MethodDelete, path, token, nil)
		assert.Equal(t, fiber.StatusNoContent, code, string(resp))
	}

	assert.Zero(t, dbtest.CountEdges(t, db))

	missing := uuid.New()

	code, resp := webtest.Do(t, app, http.MethodDelete, contactsPath(group.UUID)+missing.String()+"/", token, nil)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.JSONEq(t, notFound(addressbook.EntityContact, missing), string(resp))

	code, resp = webtest.Do(t, app, http.MethodDelete, contactsPath(missing)+bob.UUID.String()+"/", token, nil)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.JSONEq(t, notFound(addressbook.EntityContactGroup, missing), string(resp))
}

func TestMembership_ListForeignGroup(t *testing.T) {
	db := dbtest.New(t)
	alice := dbtest.User(t, db, "alice")
	mallory := dbtest.User(t, db, "mallory")
	foreign := dbtest.Group(t, db, mallory, "Secret")
	app := webtest.App(t, db, &Service{})

	code, resp := webtest.Do(t, app, http.MethodGet, contactsPath(foreign.UUID), webtest.Token(t, db, alice), nil)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.JSONEq(t, notFound(addressbook.EntityContactGroup, foreign.UUID), string(resp))
}
