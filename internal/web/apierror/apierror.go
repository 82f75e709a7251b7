package apierror

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v3"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/stockroom/stockroom/internal/config"
	"github.com/stockroom/stockroom/internal/db/controller/document"
	"github.com/stockroom/stockroom/internal/db/controller/permission"
)

// Kind classifies an error for the client.
type Kind uint8

const (
	// Unhandled is any error without a more specific kind.
	Unhandled Kind = iota
	// Validation is a missing or invalid field.
	Validation
	// Malformed is a request body which can not be parsed.
	Malformed
	// ConstraintViolation is a uniqueness conflict.
	ConstraintViolation
	// NotFound is an unknown route or record.
	NotFound
)

// Status returns the HTTP status code of k.
func (k Kind) Status() int {
	switch k {
	case Validation, Malformed:
		return fiber.StatusBadRequest
	case ConstraintViolation:
		return fiber.StatusConflict
	case NotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Malformed:
		return "malformed"
	case ConstraintViolation:
		return "constraint_violation"
	case NotFound:
		return "not_found"
	default:
		return "unhandled"
	}
}

// Error is an error with a kind. The client sees Message.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Format prints the stack of the cause with %+v.
func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') && e.cause != nil {
		_, _ = fmt.Fprintf(s, "%+v", e.cause)
		return
	}

	_, _ = io.WriteString(s, e.Message)
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// New creates an error of kind with a stack captured at the caller.
func New(kind Kind, message string) error {
	return &Error{
		Kind:    kind,
		Message: message,
		cause:   errors.New(message),
	}
}

// Newf is New with a format string.
func Newf(kind Kind, format string, args ...any) error {
	return New(kind, fmt.Sprintf(format, args...))
}

// Wrap assigns kind to err. The stack of err is kept, if it has none one is
// captured here.
func Wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}

	var st stackTracer
	if !errors.As(err, &st) {
		err = errors.WithStack(err)
	}

	return &Error{
		Kind:    kind,
		Message: err.Error(),
		cause:   err,
	}
}

// FromStore maps the sentinel errors of the record stores to kinds.
// Anything else is Unhandled.
func FromStore(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return err
	}

	switch {
	case errors.Is(err, permission.ErrValidation), errors.Is(err, document.ErrValidation):
		return Wrap(Validation, err)
	case errors.Is(err, permission.ErrConstraintViolation):
		return Wrap(ConstraintViolation, err)
	case errors.Is(err, permission.ErrNotFound), errors.Is(err, document.ErrNotFound):
		return Wrap(NotFound, err)
	default:
		return Wrap(Unhandled, err)
	}
}

// Status returns the status code carried by err, 500 if it carries none
// or one below 400.
func Status(err error) int {
	code := fiber.StatusInternalServerError

	var (
		apiErr   *Error
		fiberErr *fiber.Error
	)

	switch {
	case errors.As(err, &apiErr):
		code = apiErr.Kind.Status()
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
	}

	if code < fiber.StatusBadRequest {
		return fiber.StatusInternalServerError
	}

	return code
}

// Message returns the client facing message of err.
func Message(err error) string {
	var (
		apiErr   *Error
		fiberErr *fiber.Error
	)

	switch {
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.As(err, &fiberErr):
		return fiberErr.Message
	default:
		return err.Error()
	}
}

// Body is the JSON error response.
type Body struct {
	Message string `json:"message"`
	Stack   any    `json:"stack"`
}

// NewBody renders err for mode. Stack is the empty object outside development.
func NewBody(mode config.Mode, err error) Body {
	var stack any = fiber.Map{}
	if mode.IsDevelopment() {
		stack = fmt.Sprintf("%+v", err)
	}

	return Body{
		Message: Message(err),
		Stack:   stack,
	}
}

// Handler returns the fiber error handler for mode.
// Server errors are logged with their stack in every mode.
func Handler(mode config.Mode) fiber.ErrorHandler {
	return func(c fiber.Ctx, err error) error {
		code := Status(err)

		if code >= fiber.StatusInternalServerError {
			log.Error().
				Stack().
				Err(err).
				Str("method", c.Method()).
				Str("url", c.OriginalURL()).
				Int("status", code).
				Msg("request failed")
		} else {
			log.Debug().
				Err(err).
				Str("url", c.OriginalURL()).
				Int("status", code).
				Msg("request rejected")
		}

		return c.Status(code).JSON(NewBody(mode, err))
	}
}

// RouteNotFound is the last handler of the app. It fails every request
// which no route claimed.
func RouteNotFound(c fiber.Ctx) error {
	return New(NotFound, "Not Found - "+c.OriginalURL())
}
