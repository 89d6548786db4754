package internal

import (
	"errors"
	"maps"
	"net/url"
)

// Signal is a terminal form-submission outcome expressed as an error value.
// Handlers return one (via Fail or Succeed) to short-circuit to a complete
// Result; the wrapper matches on it and materializes the record. It replaces
// exception-style control flow with an explicit tagged return.
type Signal struct {
	// Extra carries caller-defined side data copied into the result.
	Extra map[string]any

	// FieldErrors maps field names to per-field validation errors.
	FieldErrors map[string][]string

	// Message is the user-facing outcome message.
	Message string

	// Redirect is the post-submission navigation target, empty when none.
	Redirect string

	// Success fixes the outcome variant: false for Fail, true for Succeed.
	Success bool

	// Refresh requests a view revalidation after publication.
	Refresh bool
}

func (s *Signal) Error() string {
	return s.Message
}

// Result materializes the signal into a complete record with the given
// form data as payload. Calling it twice with the same form yields
// structurally equal, independent records.
func (s *Signal) Result(form url.Values) Result {
	return Result{
		Payload:     cloneValues(form),
		Success:     s.Success,
		Message:     s.Message,
		FieldErrors: cloneFieldErrors(s.FieldErrors),
		Extra:       maps.Clone(s.Extra),
		Redirect:    s.Redirect,
		Refresh:     s.Refresh,
	}
}

// SignalOption configures a Signal.
type SignalOption func(*Signal)

// WithFieldErrors sets the per-field validation errors.
func WithFieldErrors(fieldErrors map[string][]string) SignalOption {
	return func(s *Signal) {
		s.FieldErrors = cloneFieldErrors(fieldErrors)
	}
}

// WithFieldError appends errors for a single field, preserving order.
func WithFieldError(field string, msgs ...string) SignalOption {
	return func(s *Signal) {
		if s.FieldErrors == nil {
			s.FieldErrors = make(map[string][]string)
		}
		s.FieldErrors[field] = append(s.FieldErrors[field], msgs...)
	}
}

// WithExtra sets the caller-defined side data.
func WithExtra(extra map[string]any) SignalOption {
	return func(s *Signal) {
		s.Extra = maps.Clone(extra)
	}
}

// WithExtraValue sets a single side-data entry.
func WithExtraValue(key string, value any) SignalOption {
	return func(s *Signal) {
		if s.Extra == nil {
			s.Extra = make(map[string]any)
		}
		s.Extra[key] = value
	}
}

// WithRedirect sets the post-submission navigation target.
func WithRedirect(path string) SignalOption {
	return func(s *Signal) {
		s.Redirect = path
	}
}

// WithRefresh requests a view revalidation after publication.
func WithRefresh() SignalOption {
	return func(s *Signal) {
		s.Refresh = true
	}
}

// Fail builds a failure signal. Returning it from a handler produces a
// Result with Success=false and the given message.
//
// Example:
//
//	return formflow.Result{}, formflow.Fail("Please fix the errors below",
//	    formflow.WithFieldError("email", "Email is required"),
//	)
func Fail(message string, opts ...SignalOption) error {
	return newSignal(false, message, opts...)
}

// Succeed builds a success signal. Returning it from a handler produces a
// Result with Success=true and the given message.
//
// Example:
//
//	return formflow.Result{}, formflow.Succeed("Account created",
//	    formflow.WithRedirect("/welcome"),
//	    formflow.WithExtraValue("user_id", id),
//	)
func Succeed(message string, opts ...SignalOption) error {
	return newSignal(true, message, opts...)
}

func newSignal(success bool, message string, opts ...SignalOption) *Signal {
	s := &Signal{
		Success: success,
		Message: message,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsSignal returns true if the error is a Signal.
func IsSignal(err error) bool {
	var s *Signal
	return errors.As(err, &s)
}

// AsSignal extracts the Signal from an error if present.
func AsSignal(err error) (*Signal, bool) {
	var s *Signal
	if errors.As(err, &s) {
		return s, true
	}
	return nil, false
}
