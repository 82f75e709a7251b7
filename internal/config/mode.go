package config

import "strings"

// Mode is the runtime mode the server was started in.
// It is resolved once at startup from Config.Env.
type Mode uint8

const (
	// ModeDefault is any mode which is neither development nor production.
	// No request logging, no stack traces and no static serving.
	ModeDefault Mode = iota
	// ModeDevelopment enables request logging and stack traces in error responses.
	ModeDevelopment
	// ModeProduction serves the pre-built frontend.
	ModeProduction
)

const (
	envDevelopment = "development"
	envProduction  = "production"
)

// ParseMode maps an environment name (NODE_ENV style) to a Mode.
func ParseMode(env string) Mode {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case envDevelopment:
		return ModeDevelopment
	case envProduction:
		return ModeProduction
	default:
		return ModeDefault
	}
}

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeDevelopment:
		return envDevelopment
	case ModeProduction:
		return envProduction
	default:
		return "default"
	}
}

// IsDevelopment reports whether diagnostics may be exposed to clients.
func (m Mode) IsDevelopment() bool {
	return m == ModeDevelopment
}

// IsProduction reports whether the static frontend is served.
func (m Mode) IsProduction() bool {
	return m == ModeProduction
}
