// Package upload stores files posted to /api/upload.
package upload

import (
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/stockroom/stockroom/internal/config"
	"github.com/stockroom/stockroom/internal/uniuri"
	"github.com/stockroom/stockroom/internal/web/apierror"
	"github.com/stockroom/stockroom/internal/web/handler"
)

const (
	// FormField is the multipart field holding the file.
	FormField = "file"

	// PublicPrefix is the path stored files are served under.
	PublicPrefix = "/uploads"

	dirPerm = 0o750
)

// Result is the upload response.
type Result struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// Service is the upload handler service.
type Service struct {
	handler.Service
	cfg *config.Config
	dir string
}

// Init creates the upload directory and registers the upload route.
func (s *Service) Init(router fiber.Router, cfg *config.Config, db *gorm.DB) error {
	if router == nil || cfg == nil || db == nil {
		return handler.ErrNilRCD
	}

	if err := os.MkdirAll(cfg.Webserver.UploadDir, dirPerm); err != nil {
		return errors.Wrapf(err, "failed to create upload directory %s", cfg.Webserver.UploadDir)
	}

	s.cfg = cfg
	s.dir = cfg.Webserver.UploadDir

	router.Post(handler.RootPath, s.Post)

	return nil
}

// Post stores the posted file under a random name keeping its extension.
func (s *Service) Post(c fiber.Ctx) error {
	fh, err := c.FormFile(FormField)
	if err != nil {
		return apierror.Newf(apierror.Validation, "%s is required", FormField)
	}

	name := uniuri.FileName(fh.Filename)

	if err = c.SaveFile(fh, filepath.Join(s.dir, name)); err != nil {
		return apierror.Wrap(apierror.Unhandled, errors.Wrap(err, "failed to store upload"))
	}

	log.Info().
		Str("original", fh.Filename).
		Str("stored", name).
		Int64("size", fh.Size).
		Msg("file uploaded")

	return c.JSON(Result{
		Path: PublicPrefix + "/" + name,
		Name: fh.Filename,
	})
}
