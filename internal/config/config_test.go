package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func etcPath(t *testing.T) string {
	t.Helper()

	projectRoot, err := filepath.Abs("../../")
	require.NoError(t, err, "failed to get project root")

	return filepath.Join(projectRoot, "etc") + string(filepath.Separator)
}

func TestReadConfig(t *testing.T) {
	t.Setenv("NODE_ENV", "")
	t.Setenv(EnvPrefix+"_ENV", "")

	cfg, err := ReadConfig(etcPath(t))
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Title)
	assert.Equal(t, 5000, cfg.Webserver.Port)
	assert.Equal(t, EngineSQLite, cfg.DB.Engine)
	assert.Equal(t, ModeDefault, cfg.Mode)
	assert.False(t, cfg.Mode.IsDevelopment(), "shipped config must not enable development mode")
	assert.False(t, cfg.DB.SeedPermissions)
	assert.Equal(t, DefaultBodyLimit, cfg.Webserver.BodyLimit)
	assert.Equal(t, DefaultUploadLimit, cfg.Webserver.UploadLimit)
	assert.Equal(t, []string{"*"}, cfg.Webserver.CORSAllowOrigins)
	assert.Equal(t, "access.log", cfg.Log.File.AccessLog)
	assert.True(t, cfg.Log.Console.Enabled)
}

func TestReadConfigWithoutFile(t *testing.T) {
	cfg, err := ReadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Webserver.Port)
	assert.Equal(t, DefaultBodyLimit, cfg.Webserver.BodyLimit)
	assert.Equal(t, EnginePostgres, cfg.DB.Engine)
	assert.Equal(t, ModeDefault, cfg.Mode)
}

func TestReadConfigEnvironment(t *testing.T) {
	t.Setenv("NODE_ENV", "production")
	t.Setenv("PORT", "7070")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/stock")
	t.Setenv("STOCKROOM_DB_ENGINE", "postgres")

	cfg, err := ReadConfig(etcPath(t))
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, ModeProduction, cfg.Mode)
	assert.Equal(t, 7070, cfg.Webserver.Port)
	assert.Equal(t, "postgres://u:p@db:5432/stock", cfg.DB.URL)
	assert.Equal(t, EnginePostgres, cfg.DB.Engine)
}

func TestReadConfigWithJSONOverride(t *testing.T) {
	t.Setenv(JSONConfigEnv, `{"title":"Test Override","webserver":{"port":9090}}`)

	cfg, err := ReadConfig(etcPath(t))
	require.NoError(t, err)

	assert.Equal(t, "Test Override", cfg.Title)
	assert.Equal(t, 9090, cfg.Webserver.Port)
}

func TestReadConfigInvalidJSONOverride(t *testing.T) {
	t.Setenv(JSONConfigEnv, `{"title":`)

	_, err := ReadConfig(etcPath(t))
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("STOCKROOM_TEST_DOTENV=loaded\n"), 0o600))

	t.Cleanup(func() { _ = os.Unsetenv("STOCKROOM_TEST_DOTENV") })

	require.NoError(t, LoadDotEnv(envFile))
	assert.Equal(t, "loaded", os.Getenv("STOCKROOM_TEST_DOTENV"))

	assert.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}

func TestConfigValidation(t *testing.T) {
	valid := func() Config {
		return Config{
			DB:        DB{Engine: EngineSQLite},
			Webserver: Webserver{Port: 8080, UploadDir: "uploads"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:   "valid config",
			mutate: func(_ *Config) {},
		},
		{
			name:   "zero port falls back to default",
			mutate: func(c *Config) { c.Webserver.Port = 0 },
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Webserver.Port = 70000 },
			wantErr: ErrInvalidPort,
		},
		{
			name:    "unknown engine",
			mutate:  func(c *Config) { c.DB.Engine = "mongodb" },
			wantErr: ErrUnsupportedEngine,
		},
		{
			name: "production without static dir",
			mutate: func(c *Config) {
				c.Mode = ModeProduction
				c.Webserver.StaticDir = ""
			},
			wantErr: ErrEmptyStaticDir,
		},
		{
			name:    "missing upload dir",
			mutate:  func(c *Config) { c.Webserver.UploadDir = "" },
			wantErr: ErrEmptyUploadDir,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(&c)

			err := validate(&c)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, c.Webserver.Port)
			assert.Equal(t, DefaultBodyLimit, c.Webserver.BodyLimit)
			assert.Equal(t, DefaultUploadLimit, c.Webserver.UploadLimit)
			assert.Equal(t, 5, c.Webserver.ShutDownTime)
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		env  string
		want Mode
	}{
		{"development", ModeDevelopment},
		{" Development ", ModeDevelopment},
		{"production", ModeProduction},
		{"PRODUCTION", ModeProduction},
		{"test", ModeDefault},
		{"", ModeDefault},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			got := ParseMode(tt.env)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got == ModeDevelopment, got.IsDevelopment())
			assert.Equal(t, got == ModeProduction, got.IsProduction())
		})
	}
}

func TestDumpConfig(t *testing.T) {
	cfg := Config{
		Title: "Test",
		Webserver: Webserver{
			Port:             8080,
			CORSAllowOrigins: []string{"*"},
		},
	}

	tomlStr, err := DumpConfig(&cfg)
	require.NoError(t, err)
	assert.True(t, strings.Contains(tomlStr, "Test"))
	assert.Contains(t, tomlStr, "8080")

	jsonStr, err := DumpConfigJSON(&cfg)
	require.NoError(t, err)
	assert.Contains(t, jsonStr, `"title": "Test"`)
}
