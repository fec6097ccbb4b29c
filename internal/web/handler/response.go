package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/address-book/address-book/internal/addressbook"
)

// Response messages shared by all handlers.
const (
	MsgNotFound    = "Not found."
	MsgServerError = "A server error occurred."
	MsgParseError  = "JSON parse error - invalid request body."
)

// Detail sends {"detail": msg} with status.
func Detail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"detail": msg})
}

// Error maps an error of the addressbook package to its HTTP response.
func Error(c *fiber.Ctx, err error) error {
	var (
		verr *addressbook.ValidationError
		nf   *addressbook.NotFoundError
	)

	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(verr.Fields)
	case errors.As(err, &nf):
		return Detail(c, fiber.StatusNotFound, nf.Error())
	case errors.Is(err, addressbook.ErrNotFound):
		return Detail(c, fiber.StatusNotFound, MsgNotFound)
	default:
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")

		return Detail(c, fiber.StatusInternalServerError, MsgServerError)
	}
}

// ParamUUID parses the path parameter name.
// A malformed UUID can't address any entity, callers answer it with 404.
func ParamUUID(c *fiber.Ctx, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, false
	}

	return id, true
}

// Bind decodes the request body into v. An empty body leaves v untouched.
// It reports false after sending a 400 response.
func Bind(c *fiber.Ctx, v any) (bool, error) {
	if len(c.Body()) == 0 {
		return true, nil
	}

	if err := c.BodyParser(v); err != nil {
		log.Warn().Err(err).Str("path", c.Path()).Msg("can't parse request body")

		return false, Detail(c, fiber.StatusBadRequest, MsgParseError)
	}

	return true, nil
}
