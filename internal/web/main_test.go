package web

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/address-book/address-book/internal/addressbook"
	"github.com/address-book/address-book/internal/auth"
	"github.com/address-book/address-book/internal/db/dbtest"
	"github.com/address-book/address-book/internal/web/handler/token"
	"github.com/address-book/address-book/internal/web/webtest"
)

func newService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db := dbtest.New(t)
	cfg := webtest.Config()
	cfg.Title = "Address Book"
	cfg.DevMode = true

	return New(cfg, db), db
}

func login(t *testing.T, s *Service, db *gorm.DB, username string) string {
	t.Helper()

	_, err := auth.NewLocalProvider(db).CreateUser(username, username+"@example.com", "secret", username, "")
	require.NoError(t, err)

	code, body := webtest.Do(t, s.App, http.MethodPost, "/api/auth-token/", "",
		fiber.Map{"username": username, "password": "secret"})
	require.Equal(t, fiber.StatusOK, code, string(body))

	return webtest.Decode[token.Response](t, body).Token
}

func TestNew_NilArguments(t *testing.T) {
	assert.Panics(t, func() { New(nil, dbtest.New(t)) })
	assert.Panics(t, func() { New(webtest.Config(), nil) })
}

func TestCheckAlive(t *testing.T) {
	s, _ := newService(t)

	code, body := webtest.Do(t, s.App, http.MethodGet, CheckAlivePath, "", nil)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "OK", string(body))
	assert.True(t, s.Alive())

	// what Shutdown does first
	s.alive.Store(false)

	code, _ = webtest.Do(t, s.App, http.MethodGet, CheckAlivePath, "", nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, code)
	assert.False(t, s.Alive())
}

func TestMetrics(t *testing.T) {
	s, _ := newService(t)

	webtest.Do(t, s.App, http.MethodGet, CheckAlivePath, "", nil)

	code, body := webtest.Do(t, s.App, http.MethodGet, MetricsPath, "", nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Contains(t, string(body), "http_requests_total")
	assert.Contains(t, string(body), `route="/checkalive"`)
}

func TestUnknownRoute(t *testing.T) {
	s, _ := newService(t)

	code, body := webtest.Do(t, s.App, http.MethodGet, "/nope", "", nil)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.JSONEq(t, `{"detail":"Not found."}`, string(body))
}

func TestRequestID(t *testing.T) {
	s, _ := newService(t)

	resp, err := s.App.Test(httptest.NewRequest(http.MethodGet, CheckAlivePath, nil), -1)
	require.NoError(t, err)

	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
	assert.NotEmpty(t, resp.Header.Get("X-Performance"))
}

func TestAPI_RequiresToken(t *testing.T) {
	s, _ := newService(t)

	for _, path := range []string{
		"/api/contacts/",
		"/api/contact_groups/",
		"/api/contact_groups/search/?name=x",
		"/api/contact_groups/" + uuid.NewString() + "/contacts/",
		"/api/users/me/",
	} {
		code, body := webtest.Do(t, s.App, http.MethodGet, path, "", nil)
		assert.Equal(t, fiber.StatusForbidden, code, path)
		assert.JSONEq(t, `{"detail":"Authentication credentials were not provided."}`, string(body), path)
	}
}

func TestAPI_WorkGroups(t *testing.T) {
	s, db := newService(t)
	alice := login(t, s, db, "alice")
	bob := login(t, s, db, "bob")

	groups := map[string]addressbook.ContactGroup{}

	for _, name := range []string{"Work", "work friends", "work stuff", "Family"} {
		code, body := webtest.Do(t, s.App, http.MethodPost, "/api/contact_groups/", alice, fiber.Map{"name": name})
		require.Equal(t, fiber.StatusCreated, code, string(body))

		groups[name] = webtest.Decode[addressbook.ContactGroup](t, body)
	}

	code, body := webtest.Do(t, s.App, http.MethodPost, "/api/contacts/", alice, fiber.Map{
		"first_name":     "Carol",
		"email":          "carol@example.org",
		"contact_groups": []string{groups["Work"].UUID.String()},
	})
	require.Equal(t, fiber.StatusCreated, code, string(body))

	carol := webtest.Decode[addressbook.Contact](t, body)

	path := "/api/contact_groups/" + groups["work friends"].UUID.String() + "/contacts/"

	code, _ = webtest.Do(t, s.App, http.MethodPost, path, alice, fiber.Map{"uuid": carol.UUID.String()})
	assert.Equal(t, fiber.StatusOK, code)

	code, _ = webtest.Do(t, s.App, http.MethodPost, path, alice, fiber.Map{"uuid": carol.UUID.String()})
	assert.Equal(t, fiber.StatusSeeOther, code)

	code, body = webtest.Do(t, s.App, http.MethodGet, "/api/contact_groups/search/?name=WORK", alice, nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Len(t, webtest.Decode[[]addressbook.ContactGroup](t, body), 3)

	// bob sees none of it
	code, body = webtest.Do(t, s.App, http.MethodGet, "/api/contact_groups/search/?name=work", bob, nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.JSONEq(t, `[]`, string(body))

	code, _ = webtest.Do(t, s.App, http.MethodGet, "/api/contacts/"+carol.UUID.String()+"/", bob, nil)
	assert.Equal(t, fiber.StatusNotFound, code)

	// deleting the contact keeps its groups
	code, _ = webtest.Do(t, s.App, http.MethodDelete, "/api/contacts/"+carol.UUID.String()+"/", alice, nil)
	require.Equal(t, fiber.StatusNoContent, code)

	code, body = webtest.Do(t, s.App, http.MethodGet, path, alice, nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.JSONEq(t, `[]`, string(body))

	code, body = webtest.Do(t, s.App, http.MethodGet, "/api/contact_groups/", alice, nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.Len(t, webtest.Decode[[]addressbook.ContactGroup](t, body), 4)

	code, body = webtest.Do(t, s.App, http.MethodGet, "/api/users/me/", alice, nil)
	require.Equal(t, fiber.StatusOK, code)
	assert.JSONEq(t, `{"username":"alice","name":"alice","url":"http://localhost:8080/api/users/alice/"}`, string(body))
}
