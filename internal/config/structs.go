package config

import (
	"github.com/stockroom/stockroom/internal/logger"
)

// Database engines supported by the storage layer.
const (
	EnginePostgres = "postgres"
	EngineMySQL    = "mysql"
	EngineSQLite   = "sqlite"
)

// Config overall data structure.
type Config struct {
	// Env is the raw runtime environment name, NODE_ENV takes precedence.
	Env string `mapstructure:"env" toml:"env" json:"env"`
	// Mode is resolved from Env by ReadConfig.
	Mode Mode `mapstructure:"-" toml:"-" json:"-"`

	Title     string     `mapstructure:"title" toml:"title" json:"title"`
	DB        DB         `mapstructure:"db" toml:"db" json:"db"`
	Log       logger.Log `mapstructure:"log" toml:"log" json:"log"`
	Webserver Webserver  `mapstructure:"webserver" toml:"webserver" json:"webserver"`
}

// DB holds the database configuration settings.
type DB struct {
	Engine string `mapstructure:"engine" toml:"engine" json:"engine"` // postgres, mysql or sqlite
	// URL is a complete DSN. If set, the discrete connection fields are ignored.
	URL      string `mapstructure:"url" toml:"url" json:"url"`
	Host     string `mapstructure:"host" toml:"host" json:"host"`
	Port     int    `mapstructure:"port" toml:"port" json:"port"`
	User     string `mapstructure:"user" toml:"user" json:"user"`
	Password string `mapstructure:"password" toml:"password" json:"password"`
	Name     string `mapstructure:"name" toml:"name" json:"name"`
	Extras   string `mapstructure:"extras" toml:"extras" json:"extras"`

	MaxOpenConns   int    `mapstructure:"maxopenconns" toml:"maxOpenConns" json:"maxOpenConns"`
	MaxIdleConns   int    `mapstructure:"maxidleconns" toml:"maxIdleConns" json:"maxIdleConns"`
	ConnectTimeout int    `mapstructure:"connecttimeout" toml:"connectTimeout" json:"connectTimeout"` // seconds
	LogLevel       string `mapstructure:"loglevel" toml:"logLevel" json:"logLevel"`                   // silent, error, warn, info

	// SeedPermissions creates one permission per route group on an empty table.
	SeedPermissions bool `mapstructure:"seedpermissions" toml:"seedPermissions" json:"seedPermissions"`
}

// Webserver implement webserver settings.
type Webserver struct {
	Host             string   `mapstructure:"host" toml:"host" json:"host"`
	Port             int      `mapstructure:"port" toml:"port" json:"port"`                          // listening port, PORT overrides
	BodyLimit        int      `mapstructure:"bodylimit" toml:"bodyLimit" json:"bodyLimit"`           // max non-multipart body in bytes
	UploadLimit      int      `mapstructure:"uploadlimit" toml:"uploadLimit" json:"uploadLimit"`     // max multipart body in bytes
	ReadBufferSize   int      `mapstructure:"readbuffersize" toml:"readBufferSize" json:"readBufferSize"`
	ShutDownTime     int      `mapstructure:"shutdowntime" toml:"shutDownTime" json:"shutDownTime"`  // seconds to wait on shutdown
	StaticDir        string   `mapstructure:"staticdir" toml:"staticDir" json:"staticDir"`           // pre-built frontend, production only
	UploadDir        string   `mapstructure:"uploaddir" toml:"uploadDir" json:"uploadDir"`           // target of /api/upload
	CORSAllowOrigins []string `mapstructure:"corsalloworigins" toml:"corsAllowOrigins" json:"corsAllowOrigins"`
	Metrics          bool     `mapstructure:"metrics" toml:"metrics" json:"metrics"`                 // expose /metrics
	DisableRecover   bool     `mapstructure:"disablerecover" toml:"disableRecover" json:"disableRecover"`
}
