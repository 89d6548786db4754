package internal

import "errors"

// Errors.
var (
	// ErrBindingClosed is returned by Dispatch after Close.
	ErrBindingClosed = errors.New("formflow: binding closed")

	// ErrNoHandler is returned by Dispatch when the binding was built
	// without a handler.
	ErrNoHandler = errors.New("formflow: no handler configured")
)
