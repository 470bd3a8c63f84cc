package entity

import "errors"

// Error taxonomy shared by all use cases. Handlers map these to HTTP
// status codes; anything unwrapped falls through as a generic failure.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrValidation      = errors.New("invalid input")
)
