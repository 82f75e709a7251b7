package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"github.com/stockroom/stockroom/internal/config"
	"github.com/stockroom/stockroom/internal/db/models"
)

func TestOpenSQLite(t *testing.T) {
	cfg := &config.Config{DB: config.DB{
		Engine:   config.EngineSQLite,
		URL:      filepath.Join(t.TempDir(), "stock.db"),
		LogLevel: "silent",
	}}

	gdb, err := Open(context.Background(), cfg)
	require.NoError(t, err)

	require.NoError(t, Migrate(gdb))
	assert.True(t, gdb.Migrator().HasTable(&models.Permission{}))
	assert.True(t, gdb.Migrator().HasTable(&models.Document{}))

	require.NoError(t, Close(gdb))
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(context.Background(), nil)
	assert.ErrorIs(t, err, ErrConfigNil)

	_, err = Open(context.Background(), &config.Config{DB: config.DB{Engine: "mongodb"}})
	assert.ErrorIs(t, err, ErrUnsupportedEngine)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, logLevel("silent"))
	assert.Equal(t, gormlogger.Error, logLevel("ERROR"))
	assert.Equal(t, gormlogger.Info, logLevel("info"))
	assert.Equal(t, gormlogger.Warn, logLevel(""))
}

func TestCloseNil(t *testing.T) {
	assert.NoError(t, Close(nil))
}
