// Package handler holds what the route group handlers have in common.
package handler

import (
	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"

	"github.com/stockroom/stockroom/internal/config"
)

// Service is the interface for a route group handler. Init registers the
// routes of the group on router, which is already mounted on its prefix.
type Service interface {
	Init(router fiber.Router, cfg *config.Config, db *gorm.DB) error
}
