// Package apierror holds the error kinds of the API and the fiber error
// handler which turns every error into the JSON body
//
//	{"message": "...", "stack": "..." | {}}
//
// # Kinds
//
// Every kind maps to one HTTP status:
//   - Validation and Malformed answer 400
//   - NotFound answers 404
//   - ConstraintViolation answers 409
//   - Unhandled answers 500
//
// FromStore maps the sentinel errors of the permission and document stores
// to a kind. Errors of other types keep their fiber status, anything below
// 400 is answered with 500.
//
// # Stacks
//
// The stack is only rendered in development mode, as the %+v output of the
// pkg/errors stack captured where the error was created. Every other mode
// sends an empty object.
//
// Example usage:
//
//	app := fiber.New(fiber.Config{ErrorHandler: apierror.Handler(cfg.Mode)})
//	// ... routes ...
//	app.Use(apierror.RouteNotFound)
package apierror
