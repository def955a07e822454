package adapter

import "errors"

// Sentinel transport errors mapped from HTTP status codes. Connection-level
// failures (refused, timeout, DNS) wrap [ErrUnavailable] so the sync engine
// can distinguish "server unreachable" from a rejected request.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrUnavailable         = errors.New("server unavailable")
)
