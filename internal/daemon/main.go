// Package daemon wires storage and web service together and runs them.
package daemon

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/stockroom/stockroom/internal/config"
	"github.com/stockroom/stockroom/internal/db"
	"github.com/stockroom/stockroom/internal/web"
)

// ErrConfigNil is returned by New without config.
var ErrConfigNil = errors.New("config is nil")

// Daemon represents the main application daemon.
type Daemon struct {
	cfg        *config.Config
	db         *gorm.DB
	webService *web.Service
}

// New opens and migrates the database, seeds it if configured and builds
// the web service. The database is closed again if a later step fails.
func New(ctx context.Context, cfg *config.Config) (*Daemon, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	gdb, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	d, err := build(cfg, gdb)
	if err != nil {
		_ = db.Close(gdb)
		return nil, err
	}

	return d, nil
}

func build(cfg *config.Config, gdb *gorm.DB) (*Daemon, error) {
	if err := db.Migrate(gdb); err != nil {
		return nil, err
	}

	if err := seed(cfg, gdb); err != nil {
		return nil, err
	}

	webService, err := web.New(cfg, gdb)
	if err != nil {
		return nil, err
	}

	return &Daemon{
		cfg:        cfg,
		db:         gdb,
		webService: webService,
	}, nil
}

// Start serves until ctx is cancelled and closes the database afterwards.
func (d *Daemon) Start(ctx context.Context) error {
	defer func() {
		if err := db.Close(d.db); err != nil {
			log.Error().Err(err).Msg("failed to close database")
			return
		}

		log.Info().Msg("database connection closed")
	}()

	return d.webService.Start(ctx, web.Addr(d.cfg))
}
