package user

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/address-book/address-book/internal/db/dbtest"
	"github.com/address-book/address-book/internal/web/webtest"
)

func TestUsers(t *testing.T) {
	db := dbtest.New(t)
	alice := dbtest.User(t, db, "alice")
	alice.LastName = "Liddell"
	require.NoError(t, db.Save(alice).Error)
	dbtest.User(t, db, "bob")

	token := webtest.Token(t, db, alice)
	app := webtest.App(t, db, &Service{})

	want := `{"username":"alice","name":"alice Liddell","url":"http://localhost:8080/api/users/alice/"}`

	tests := []struct {
		name string
		path string
		code int
		body string
	}{
		{name: "me", path: "/api/users/me/", code: fiber.StatusOK, body: want},
		{name: "by name", path: "/api/users/alice", code: fiber.StatusOK, body: want},
		{name: "list", path: "/api/users/", code: fiber.StatusOK, body: "[" + want + "]"},
		{name: "somebody else", path: "/api/users/bob/", code: fiber.StatusNotFound, body: `{"detail":"Not found."}`},
		{name: "nobody", path: "/api/users/carol/", code: fiber.StatusNotFound, body: `{"detail":"Not found."}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := webtest.Do(t, app, http.MethodGet, tt.path, token, nil)
			assert.Equal(t, tt.code, code)
			assert.JSONEq(t, tt.body, string(body))
		})
	}
}

func TestUsers_RequireToken(t *testing.T) {
	db := dbtest.New(t)
	app := webtest.App(t, db, &Service{})

	code, _ := webtest.Do(t, app, http.MethodGet, "/api/users/me/", "", nil)
	assert.Equal(t, fiber.StatusForbidden, code)
}

func TestInit_NilArguments(t *testing.T) {
	var s Service

	assert.Error(t, s.Init(nil, webtest.Config(), nil))
}
