// Package webtest builds fiber apps serving handlers behind the token
// middleware for tests.
package webtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/address-book/address-book/internal/auth"
	"github.com/address-book/address-book/internal/config"
	"github.com/address-book/address-book/internal/db/models"
	"github.com/address-book/address-book/internal/web/handler"
	authmiddleware "github.com/address-book/address-book/internal/web/middleware/auth"
)

// APIPrefix is the prefix all handlers are mounted below.
const APIPrefix = "/api"

// Config returns a minimal configuration for handlers.
func Config() *config.Config {
	return &config.Config{
		Webserver: config.Webserver{
			URL:  "http://localhost:8080",
			Port: 8080,
		},
	}
}

// App mounts the handlers below /api behind the token middleware.
func App(t testing.TB, db *gorm.DB, handlers ...handler.Service) *fiber.App {
	t.Helper()

	app := fiber.New()
	api := app.Group(APIPrefix)
	api.Use(authmiddleware.New(auth.NewService(db)))

	cfg := Config()
	for _, h := range handlers {
		require.NoError(t, h.Init(api, cfg, db))
	}

	return app
}

// Token returns the API token key of user.
func Token(t testing.TB, db *gorm.DB, user *models.User) string {
	t.Helper()

	token, err := auth.NewService(db).IssueToken(user.ID)
	require.NoError(t, err)

	return token.Key
}

// Do sends a request with an optional JSON body and token and returns the
// status code and the response body.
func Do(t testing.TB, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, authmiddleware.Scheme+" "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, out
}

// Decode unmarshals a JSON response body into a value of type T.
func Decode[T any](t testing.TB, body []byte) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(body, &v), string(body))

	return v
}
