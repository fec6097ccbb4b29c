package handler

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/address-book/address-book/internal/config"
)

// Service is the interface for a web handler service.
// Init registers the routes of the handler below router.
type Service interface {
	Init(router fiber.Router, cfg *config.Config, db *gorm.DB) error
}
