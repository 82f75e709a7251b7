// Package config handles input from etc/main.toml, .env files and the environment.
package config

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every automatically bound environment variable,
	// e.g. STOCKROOM_DB_ENGINE for db.engine.
	EnvPrefix = "STOCKROOM"

	// JSONConfigEnv holds a JSON document merged over the file based config.
	JSONConfigEnv = "STOCKROOM_CONFIG_JSON"

	// DefaultPort is used when neither the config file nor PORT define one.
	DefaultPort = 5000

	// DefaultBodyLimit is the maximum accepted request body (100 KiB).
	DefaultBodyLimit = 100 * 1024

	// DefaultUploadLimit is the maximum accepted multipart body (10 MiB).
	DefaultUploadLimit = 10 * 1024 * 1024
)

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables already set are not overridden. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return errors.Wrapf(err, "failed to load %s", path)
	}

	return nil
}

// ReadConfig from config file.
func ReadConfig(path string) (Config, error) {
	var (
		c   Config
		v   = viper.New()
		err error
	)

	if path == "" {
		path = "./etc/"
	}

	setDefaults(v)

	v.SetConfigName("main")
	v.SetConfigType("toml")
	v.AddConfigPath(path)

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, errors.Wrap(err, "failed to read main config file")
		}
	}

	bindEnv(v)

	if err = v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode config")
	}

	// override it from env
	if configAsJSON := os.Getenv(JSONConfigEnv); configAsJSON != "" {
		c, err = decodeAndMergeConfig(c, configAsJSON)
		if err != nil {
			return c, err
		}
	}

	c.Mode = ParseMode(c.Env)

	return c, validate(&c)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "")
	v.SetDefault("title", "stockroom")

	v.SetDefault("db.engine", EnginePostgres)
	v.SetDefault("db.url", "")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432) //nolint:mnd
	v.SetDefault("db.user", "stockroom")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "stockroom")
	v.SetDefault("db.extras", "sslmode=disable")
	v.SetDefault("db.maxopenconns", 25) //nolint:mnd
	v.SetDefault("db.maxidleconns", 5)  //nolint:mnd
	v.SetDefault("db.connecttimeout", 10) //nolint:mnd
	v.SetDefault("db.loglevel", "warn")
	v.SetDefault("db.seedpermissions", false)

	v.SetDefault("log.loglevel", "info")
	v.SetDefault("log.appname", "stockroom")
	v.SetDefault("log.servicename", "stockroom-api")
	v.SetDefault("log.reportcaller", false)
	v.SetDefault("log.enableaccesslogtoconsole", true)
	v.SetDefault("log.console.enabled", true)
	v.SetDefault("log.console.useconsolewriter", false)
	v.SetDefault("log.file.enabled", false)

	v.SetDefault("webserver.host", "")
	v.SetDefault("webserver.port", DefaultPort)
	v.SetDefault("webserver.bodylimit", DefaultBodyLimit)
	v.SetDefault("webserver.uploadlimit", DefaultUploadLimit)
	v.SetDefault("webserver.readbuffersize", 8192) //nolint:mnd
	v.SetDefault("webserver.shutdowntime", 5)      //nolint:mnd
	v.SetDefault("webserver.staticdir", "../frontend/dist")
	v.SetDefault("webserver.uploaddir", "uploads")
	v.SetDefault("webserver.corsalloworigins", []string{"*"})
	v.SetDefault("webserver.metrics", true)
	v.SetDefault("webserver.disablerecover", false)
}

// bindEnv wires the conventional variable names of the deployment on top of
// the STOCKROOM_* automatic environment.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("env", EnvPrefix+"_ENV", "NODE_ENV")
	_ = v.BindEnv("webserver.port", EnvPrefix+"_WEBSERVER_PORT", "PORT")
	_ = v.BindEnv("db.url", EnvPrefix+"_DB_URL", "DATABASE_URL", "MONGO_URI")
}

func decodeAndMergeConfig(c Config, configAsJSON string) (Config, error) {
	err := json.Unmarshal([]byte(configAsJSON), &c)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to decode "+JSONConfigEnv)
	}

	return c, nil
}

// DumpConfig config as TOML String.
func DumpConfig(c *Config) (string, error) {
	out, err := toml.Marshal(c)
	if err != nil {
		return "", err //nolint: wrapcheck
	}

	return string(out), nil
}

// DumpConfigJSON config as JSON String.
func DumpConfigJSON(c *Config) (string, error) {
	var buffer bytes.Buffer
	j := json.NewEncoder(&buffer)
	j.SetIndent("", "  ")

	if err := j.Encode(c); err != nil {
		return "", err //nolint: wrapcheck
	}

	return buffer.String(), nil
}

// validate checks the settings the server can not start without
// and fills in defaults for zero values.
func validate(c *Config) error {
	invalidErrMessage := "invalid config"

	if c.Webserver.Port == 0 {
		c.Webserver.Port = DefaultPort
	}

	if c.Webserver.Port < 0 || c.Webserver.Port > 65535 {
		return errors.Wrap(ErrInvalidPort, invalidErrMessage)
	}

	switch c.DB.Engine {
	case EnginePostgres, EngineMySQL, EngineSQLite:
	default:
		return errors.Wrapf(ErrUnsupportedEngine, "%s: %q", invalidErrMessage, c.DB.Engine)
	}

	if c.Mode.IsProduction() && c.Webserver.StaticDir == "" {
		return errors.Wrap(ErrEmptyStaticDir, invalidErrMessage)
	}

	if c.Webserver.UploadDir == "" {
		return errors.Wrap(ErrEmptyUploadDir, invalidErrMessage)
	}

	if c.Webserver.BodyLimit <= 0 {
		c.Webserver.BodyLimit = DefaultBodyLimit
	}

	if c.Webserver.UploadLimit <= 0 {
		c.Webserver.UploadLimit = DefaultUploadLimit
	}

	if c.Webserver.ShutDownTime == 0 {
		c.Webserver.ShutDownTime = 5 // set default of 5 seconds
	}

	if len(c.Webserver.CORSAllowOrigins) == 0 {
		c.Webserver.CORSAllowOrigins = []string{"*"}
	}

	return nil
}
