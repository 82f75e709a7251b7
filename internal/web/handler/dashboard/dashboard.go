// Package dashboard serves record counts under /api/dashboard.
package dashboard

import (
	"github.com/gofiber/fiber/v3"
	"gorm.io/gorm"

	"github.com/stockroom/stockroom/internal/config"
	"github.com/stockroom/stockroom/internal/db/controller/document"
	"github.com/stockroom/stockroom/internal/db/controller/permission"
	"github.com/stockroom/stockroom/internal/web/apierror"
	"github.com/stockroom/stockroom/internal/web/handler"
)

// Summary is the dashboard response.
type Summary struct {
	Counts      map[string]int64 `json:"counts"`
	Permissions int64            `json:"permissions"`
}

// Service is the dashboard handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	db  *gorm.DB
}

// Init registers the dashboard routes on router.
func (s *Service) Init(router fiber.Router, cfg *config.Config, db *gorm.DB) error {
	if router == nil || cfg == nil || db == nil {
		return handler.ErrNilRCD
	}

	s.cfg = cfg
	s.db = db

	router.Get(handler.RootPath, s.Get)

	return nil
}

// Get returns the number of documents of every known collection and the
// number of permissions. Empty collections are reported with 0.
func (s *Service) Get(c fiber.Ctx) error {
	stored, err := document.Counts(s.db)
	if err != nil {
		return apierror.FromStore(err)
	}

	permissions, err := permission.Count(s.db)
	if err != nil {
		return apierror.FromStore(err)
	}

	summary := Summary{
		Counts:      make(map[string]int64, len(document.Collections)),
		Permissions: permissions,
	}

	for _, coll := range document.Collections {
		summary.Counts[coll.Name] = stored[coll.Name]
	}

	return c.JSON(summary)
}
