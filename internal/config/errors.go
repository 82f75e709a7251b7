package config

import (
	"errors"
)

var (
	// ErrInvalidPort error if the webserver listening port is out of range.
	ErrInvalidPort = errors.New("config webserver.port must be between 1 and 65535")

	// ErrUnsupportedEngine error if db.engine is not one of postgres, mysql or sqlite.
	ErrUnsupportedEngine = errors.New("config db.engine is not supported")

	// ErrEmptyStaticDir error if production mode is configured without a frontend directory.
	ErrEmptyStaticDir = errors.New("config webserver.staticDir can not be empty in production mode")

	// ErrEmptyUploadDir error if webserver.uploadDir is empty.
	ErrEmptyUploadDir = errors.New("config webserver.uploadDir can not be empty")
)
