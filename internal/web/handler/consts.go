package handler

import "errors"

const (
	// RootPath is the root path of a route group.
	RootPath = "/"

	// UUIDParam is the path parameter holding the UUID of the addressed entity.
	UUIDParam = "uuid"

	// ErrNilACDFatalLogMsg is used if router, cfg or db is nil.
	ErrNilACDFatalLogMsg = "router, cfg or db is nil"
)

// ErrNilACD is returned by Init if router, cfg or db is nil.
var ErrNilACD = errors.New(ErrNilACDFatalLogMsg)
