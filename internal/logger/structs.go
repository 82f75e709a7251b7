package logger

// Console implements a console based logger.
type Console struct {
	Enabled          bool `mapstructure:"enabled" toml:"enabled" json:"enabled"`
	UseConsoleWriter bool `mapstructure:"useconsolewriter" toml:"useConsoleWriter" json:"useConsoleWriter"`
}

// LogFile implements a file based logger.
type LogFile struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled" json:"enabled"`
	Path    string `mapstructure:"path" toml:"path" json:"path"`

	AccessLog        string `mapstructure:"access" toml:"access" json:"access"`
	AccessMaxSize    int    `mapstructure:"accessmaxsize" toml:"accessMaxSize" json:"accessMaxSize"`
	AccessMaxBackups int    `mapstructure:"accessmaxbackups" toml:"accessMaxBackups" json:"accessMaxBackups"`
	AccessMaxAge     int    `mapstructure:"accessmaxage" toml:"accessMaxAge" json:"accessMaxAge"`

	ErrorLog        string `mapstructure:"error" toml:"error" json:"error"`
	ErrorMaxSize    int    `mapstructure:"errormaxsize" toml:"errorMaxSize" json:"errorMaxSize"`
	ErrorMaxBackups int    `mapstructure:"errormaxbackups" toml:"errorMaxBackups" json:"errorMaxBackups"`
	ErrorMaxAge     int    `mapstructure:"errormaxage" toml:"errorMaxAge" json:"errorMaxAge"`

	InfoLog        string `mapstructure:"info" toml:"info" json:"info"`
	InfoMaxSize    int    `mapstructure:"infomaxsize" toml:"infoMaxSize" json:"infoMaxSize"`
	InfoMaxBackups int    `mapstructure:"infomaxbackups" toml:"infoMaxBackups" json:"infoMaxBackups"`
	InfoMaxAge     int    `mapstructure:"infomaxage" toml:"infoMaxAge" json:"infoMaxAge"`

	TraceLog        string `mapstructure:"trace" toml:"trace" json:"trace"`
	TraceMaxSize    int    `mapstructure:"tracemaxsize" toml:"traceMaxSize" json:"traceMaxSize"`
	TraceMaxBackups int    `mapstructure:"tracemaxbackups" toml:"traceMaxBackups" json:"traceMaxBackups"`
	TraceMaxAge     int    `mapstructure:"tracemaxage" toml:"traceMaxAge" json:"traceMaxAge"`

	WarnLog        string `mapstructure:"warn" toml:"warn" json:"warn"`
	WarnMaxSize    int    `mapstructure:"warnmaxsize" toml:"warnMaxSize" json:"warnMaxSize"`
	WarnMaxBackups int    `mapstructure:"warnmaxbackups" toml:"warnMaxBackups" json:"warnMaxBackups"`
	WarnMaxAge     int    `mapstructure:"warnmaxage" toml:"warnMaxAge" json:"warnMaxAge"`
}

// Log implements the logger config.
type Log struct {
	LogLevel string `mapstructure:"loglevel" toml:"logLevel" json:"logLevel"` // trace, debug, info, warn, error.

	// EnableAccessLogToConsole if true the development access log is written to the console.
	// Does not overrule flag Console.Enabled!
	// If Console.Enabled is false, still no access log output to the console will be shown.
	EnableAccessLogToConsole bool `mapstructure:"enableaccesslogtoconsole" toml:"enableAccessLogToConsole" json:"enableAccessLogToConsole"` //nolint:lll
	ReportCaller             bool `mapstructure:"reportcaller" toml:"reportCaller" json:"reportCaller"`

	AppName     string `mapstructure:"appname" toml:"appName" json:"appName"`
	ServiceName string `mapstructure:"servicename" toml:"serviceName" json:"serviceName"`

	// Console used mainly for docker and dev.
	Console Console `mapstructure:"console" toml:"console" json:"console"`

	// File based logging with rotation.
	File LogFile `mapstructure:"file" toml:"file" json:"file"`
}
