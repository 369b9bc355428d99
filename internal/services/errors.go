package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to HTTP
// status codes; messages wrapped around them are safe to show to clients.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
)
