package domain

import "errors"

// Sentinel errors wrapped by repositories and services. Ownership failures are
// reported as ErrNotFound; ErrUnavailable marks an external collaborator (model
// Space, object store, Google) that is down or not configured.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")
	ErrUnavailable  = errors.New("upstream unavailable")
)
