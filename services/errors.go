package services

import "errors"

// Sentinel errors returned by the service layer. Controllers translate
// them to HTTP status codes with errors.Is; anything else is a 500.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("authentication required")
	ErrForbidden    = errors.New("permission denied")
	ErrConflict     = errors.New("conflicting state")
	ErrInvalid      = errors.New("invalid input")
)
