package collection

import (
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/stockroom/stockroom/internal/config"
	"github.com/stockroom/stockroom/internal/db/controller/document"
	"github.com/stockroom/stockroom/internal/web/apierror"
	"github.com/stockroom/stockroom/internal/web/handler"
)

// Service is the handler service of one collection.
type Service struct {
	handler.Service
	cfg  *config.Config
	db   *gorm.DB
	coll document.Collection
}

// New creates the handler of coll.
func New(coll document.Collection) *Service {
	return &Service{coll: coll}
}

// Init registers the collection routes on router.
func (s *Service) Init(router fiber.Router, cfg *config.Config, db *gorm.DB) error {
	if router == nil || cfg == nil || db == nil {
		return handler.ErrNilRCD
	}

	s.cfg = cfg
	s.db = db

	router.Get(handler.RootPath, s.List)
	router.Post(handler.RootPath, s.Create)
	router.Get(handler.IDPath, s.Get)
	router.Put(handler.IDPath, s.Update)
	router.Delete(handler.IDPath, s.Delete)

	return nil
}

// List returns all documents of the collection in insertion order.
func (s *Service) List(c fiber.Ctx) error {
	docs, err := document.GetAll(s.db, s.coll)
	if err != nil {
		return apierror.FromStore(err)
	}

	out, err := document.RenderAll(s.coll, docs)
	if err != nil {
		return apierror.Wrap(apierror.Unhandled, err)
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

// Get returns one document.
func (s *Service) Get(c fiber.Ctx) error {
	doc, err := document.Get(s.db, s.coll, c.Params(handler.IDParam))
	if err != nil {
		return apierror.FromStore(err)
	}

	out, err := document.Render(s.coll, doc)
	if err != nil {
		return apierror.Wrap(apierror.Unhandled, err)
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

// Create stores the body as new document and answers 201.
func (s *Service) Create(c fiber.Ctx) error {
	fields, err := handler.Object(c)
	if err != nil {
		return err
	}

	doc, err := document.Create(s.db, s.coll, fields)
	if err != nil {
		return apierror.FromStore(err)
	}

	log.Debug().
		Str("collection", s.coll.Name).
		Str("id", doc.UID).
		Msg("document created")

	out, err := document.Render(s.coll, doc)
	if err != nil {
		return apierror.Wrap(apierror.Unhandled, err)
	}

	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update merges the body into the stored document.
func (s *Service) Update(c fiber.Ctx) error {
	fields, err := handler.Object(c)
	if err != nil {
		return err
	}

	doc, err := document.Update(s.db, s.coll, c.Params(handler.IDParam), fields)
	if err != nil {
		return apierror.FromStore(err)
	}

	out, err := document.Render(s.coll, doc)
	if err != nil {
		return apierror.Wrap(apierror.Unhandled, err)
	}

	return c.Status(fiber.StatusOK).JSON(out)
}

// Delete removes one document.
func (s *Service) Delete(c fiber.Ctx) error {
	uid := c.Params(handler.IDParam)

	if err := document.Delete(s.db, s.coll, uid); err != nil {
		return apierror.FromStore(err)
	}

	log.Debug().
		Str("collection", s.coll.Name).
		Str("id", uid).
		Msg("document removed")

	return c.JSON(fiber.Map{"message": "Document removed"})
}
