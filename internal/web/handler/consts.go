package handler

import "errors"

const (
	// RootPath is the root path of a route group.
	RootPath = "/"

	// IDPath is the path of a single record in a route group.
	IDPath = "/:id"

	// IDParam is the name of the id route parameter.
	IDParam = "id"
)

// ErrNilRCD is returned by Init if router, cfg or db is nil.
var ErrNilRCD = errors.New("router, cfg or db is nil")
