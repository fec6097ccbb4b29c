// Package auth provides the token authentication middleware of the API.
//
// The middleware reads "Authorization: Token <key>", resolves the key to an
// active user and stores that user in fiber.Locals, where handlers fetch it
// with CurrentUser. Requests without valid credentials are answered with
// 403 and {"detail": "..."} before any handler runs.
//
// Usage:
//
//	api.Use(authmiddleware.New(authService))
package auth
