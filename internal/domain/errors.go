package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// event or check-in list does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when export options are
// malformed (e.g. missing list, unknown sort key, unknown question id).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")
