package daemon

import (
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/stockroom/stockroom/internal/config"
	"github.com/stockroom/stockroom/internal/db/controller/permission"
	"github.com/stockroom/stockroom/internal/web"
)

// seed creates one "<group>.access" permission per route group if enabled
// and the permissions table is empty.
func seed(cfg *config.Config, db *gorm.DB) error {
	if !cfg.DB.SeedPermissions {
		return nil
	}

	count, err := permission.Count(db)
	if err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	for _, g := range web.Groups() {
		if _, err = permission.Create(db, g.Name+".access", g.Prefix, "Access to "+g.Prefix); err != nil {
			return err
		}
	}

	log.Info().Int("count", len(web.Groups())).Msg("seeded permissions")

	return nil
}
