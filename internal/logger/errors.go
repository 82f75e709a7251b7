package logger

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
)

var (
	// ErrAppNameIsEmpty is returned if log.appName is not set.
	ErrAppNameIsEmpty = errors.New("log.appName can not be empty")

	// ErrServiceNameIsEmpty is returned if log.serviceName is not set.
	ErrServiceNameIsEmpty = errors.New("log.serviceName can not be empty")
)

// ErrorHandler reports events zerolog failed to write. There is no logger
// left to use, so it goes straight to stderr.
func ErrorHandler(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "zerolog: could not write event: %v\n", err)
}
