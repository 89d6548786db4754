package flash

import "errors"

// Errors.
var (
	ErrNotFound  = errors.New("flash: not found")
	ErrNoSecret  = errors.New("flash: secret required")
	ErrBadSecret = errors.New("flash: secret must be 32+ bytes")
	ErrDecode    = errors.New("flash: decode failed")
)
