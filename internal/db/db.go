// Package db owns the storage connection of the server.
package db

import (
	"context"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/stockroom/stockroom/internal/config"
	"github.com/stockroom/stockroom/internal/db/dsn"
	"github.com/stockroom/stockroom/internal/db/models"
	"github.com/stockroom/stockroom/internal/logger/adapter/stdlogger"
)

const slowQueryThreshold = 500 * time.Millisecond

var (
	// ErrConfigNil is returned when Open is called without a config.
	ErrConfigNil = errors.New("config is nil")
	// ErrUnsupportedEngine is returned for an unknown db.engine.
	ErrUnsupportedEngine = errors.New("unsupported database engine")
)

// Dialector returns the gorm dialector for the configured engine.
func Dialector(cfg *config.Config) (gorm.Dialector, error) {
	source := dsn.Create(cfg)

	switch cfg.DB.Engine {
	case config.EnginePostgres:
		return postgres.Open(source), nil
	case config.EngineMySQL:
		return mysql.Open(source), nil
	case config.EngineSQLite:
		return sqlite.Open(source), nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedEngine, "%q", cfg.DB.Engine)
	}
}

// GormConfig is the gorm configuration shared by the server and the tests.
// Unique index violations are translated to gorm.ErrDuplicatedKey,
// timestamps are stored in UTC.
func GormConfig(level string) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger: gormlogger.New(
			stdlogger.NewComponent("gorm", zerolog.WarnLevel),
			gormlogger.Config{
				SlowThreshold:             slowQueryThreshold,
				LogLevel:                  logLevel(level),
				IgnoreRecordNotFoundError: true,
			},
		),
	}
}

func logLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg *config.Config) (*gorm.DB, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, GormConfig(cfg.DB.LogLevel))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get database handle")
	}

	if cfg.DB.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	}

	if cfg.DB.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	}

	timeout := time.Duration(cfg.DB.ConnectTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second //nolint:mnd
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err = sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, errors.Wrap(err, "failed to ping database")
	}

	return db, nil
}

// Migrate creates or updates the schema of all models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Permission{},
		&models.Document{},
	); err != nil {
		return errors.Wrap(err, "failed to migrate database")
	}

	return nil
}

// Close releases the connection pool.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}

	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "failed to get database handle")
	}

	return sqlDB.Close() //nolint:wrapcheck
}
