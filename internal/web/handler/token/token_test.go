package token

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/address-book/address-book/internal/auth"
	"github.com/address-book/address-book/internal/db/dbtest"
	"github.com/address-book/address-book/internal/web/webtest"
)

const invalidCredentials = `{"non_field_errors":["Unable to log in with provided credentials."]}`

func newApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()

	app := fiber.New()

	var s Service
	require.NoError(t, s.Init(app.Group(webtest.APIPrefix), webtest.Config(), db))

	return app
}

func TestPost(t *testing.T) {
	db := dbtest.New(t)
	local := auth.NewLocalProvider(db)

	alice, err := local.CreateUser("alice", "alice@example.com", "secret", "Alice", "Doe")
	require.NoError(t, err)

	inactive, err := local.CreateUser("bob", "bob@example.com", "secret", "Bob", "")
	require.NoError(t, err)
	require.NoError(t, local.SetActive(inactive.ID, false))

	app := newApp(t, db)

	code, body := webtest.Do(t, app, http.MethodPost, "/api/auth-token/", "",
		fiber.Map{"username": "alice", "password": "secret"})
	require.Equal(t, fiber.StatusOK, code, string(body))

	first := webtest.Decode[Response](t, body)
	assert.Len(t, first.Token, 40)

	// the token is stable per user
	code, body = webtest.Do(t, app, http.MethodPost, "/api/auth-token", "",
		fiber.Map{"username": "alice", "password": "secret"})
	require.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, first, webtest.Decode[Response](t, body))

	user, err := auth.NewService(db).UserForToken(first.Token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, user.ID)

	tests := []struct {
		name string
		body fiber.Map
	}{
		{name: "wrong password", body: fiber.Map{"username": "alice", "password": "nope"}},
		{name: "unknown user", body: fiber.Map{"username": "carol", "password": "secret"}},
		{name: "inactive user", body: fiber.Map{"username": "bob", "password": "secret"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := webtest.Do(t, app, http.MethodPost, "/api/auth-token/", "", tt.body)
			assert.Equal(t, fiber.StatusBadRequest, code)
			assert.JSONEq(t, invalidCredentials, string(body))
		})
	}
}

func TestPost_MissingFields(t *testing.T) {
	db := dbtest.New(t)
	app := newApp(t, db)

	code, body := webtest.Do(t, app, http.MethodPost, "/api/auth-token/", "", fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, code)
	assert.JSONEq(t,
		`{"username":["This field is required."],"password":["This field is required."]}`,
		string(body))
}
