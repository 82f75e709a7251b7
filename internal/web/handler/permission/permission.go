// Package permission serves the permission records under /api/permissions.
package permission

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/stockroom/stockroom/internal/config"
	controller "github.com/stockroom/stockroom/internal/db/controller/permission"
	"github.com/stockroom/stockroom/internal/web/apierror"
	"github.com/stockroom/stockroom/internal/web/handler"
)

// RemovedMessage is the response message of a successful delete.
const RemovedMessage = "Permission removed"

type createRequest struct {
	Name        string `json:"name"        validate:"required"`
	Route       string `json:"route"       validate:"required"`
	Description string `json:"description" validate:"required"`
}

// updateRequest leaves absent fields nil, the store rejects empty ones.
type updateRequest struct {
	Name        *string `json:"name"`
	Route       *string `json:"route"`
	Description *string `json:"description"`
}

// Service is the permission handler service.
type Service struct {
	handler.Service
	cfg       *config.Config
	db        *gorm.DB
	validator *validator.Validate
}

// Init registers the permission routes on router.
func (s *Service) Init(router fiber.Router, cfg *config.Config, db *gorm.DB) error {
	if router == nil || cfg == nil || db == nil {
		return handler.ErrNilRCD
	}

	s.cfg = cfg
	s.db = db
	s.validator = handler.NewValidator()

	router.Get(handler.RootPath, s.List)
	router.Post(handler.RootPath, s.Create)
	router.Get(handler.IDPath, s.Get)
	router.Put(handler.IDPath, s.Update)
	router.Delete(handler.IDPath, s.Delete)

	return nil
}

// List returns all permissions in insertion order.
func (s *Service) List(c fiber.Ctx) error {
	permissions, err := controller.GetAll(s.db)
	if err != nil {
		return apierror.FromStore(err)
	}

	return c.JSON(permissions)
}

// Get returns one permission.
func (s *Service) Get(c fiber.Ctx) error {
	id, err := handler.ID(c, "permission")
	if err != nil {
		return err
	}

	p, err := controller.GetByID(s.db, id)
	if err != nil {
		return apierror.FromStore(err)
	}

	return c.JSON(p)
}

// Create stores a new permission and answers 201.
func (s *Service) Create(c fiber.Ctx) error {
	req := new(createRequest)

	if err := handler.Bind(c, req); err != nil {
		return err
	}

	if err := handler.Validate(s.validator, req); err != nil {
		return err
	}

	p, err := controller.Create(s.db, req.Name, req.Route, req.Description)
	if err != nil {
		return apierror.FromStore(err)
	}

	log.Info().
		Uint("id", p.ID).
		Str("name", p.Name).
		Str("route", p.Route).
		Msg("permission created")

	return c.Status(fiber.StatusCreated).JSON(p)
}

// Update applies a partial update.
func (s *Service) Update(c fiber.Ctx) error {
	id, err := handler.ID(c, "permission")
	if err != nil {
		return err
	}

	req := new(updateRequest)
	if err = handler.Bind(c, req); err != nil {
		return err
	}

	p, err := controller.Update(s.db, id, controller.Fields{
		Name:        req.Name,
		Route:       req.Route,
		Description: req.Description,
	})
	if err != nil {
		return apierror.FromStore(err)
	}

	return c.JSON(p)
}

// Delete removes a permission.
func (s *Service) Delete(c fiber.Ctx) error {
	id, err := handler.ID(c, "permission")
	if err != nil {
		return err
	}

	if err = controller.Delete(s.db, id); err != nil {
		return apierror.FromStore(err)
	}

	log.Info().Uint64("id", id).Msg("permission removed")

	return c.JSON(fiber.Map{"message": RemovedMessage})
}
