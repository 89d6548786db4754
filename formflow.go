package formflow

import (
	"log/slog"
	"net/url"

	"github.com/dmitrymomot/formflow/internal"
	"github.com/dmitrymomot/formflow/pkg/logger"
)

// Type aliases - public API
type (
	// Result is the flat, immutable record of one form submission attempt.
	Result = internal.Result

	// Signal is a terminal submission outcome expressed as an error value.
	// Build one with Fail or Succeed.
	Signal = internal.Signal

	// SignalOption configures a Signal.
	SignalOption = internal.SignalOption

	// HandlerFunc processes one form submission.
	HandlerFunc = internal.HandlerFunc

	// WrapOption configures Wrap.
	WrapOption = internal.WrapOption

	// PassthroughFunc reports whether an error is a host control signal
	// that must propagate past the wrapper untouched.
	PassthroughFunc = internal.PassthroughFunc

	// Binding bridges a wrapped handler to reactive submission state.
	Binding = internal.Binding

	// BindingOption configures a Binding.
	BindingOption = internal.BindingOption

	// Navigator performs post-submission redirect/refresh side effects.
	Navigator = internal.Navigator

	// SubmitFunc is a one-shot pre-submit callback.
	SubmitFunc = internal.SubmitFunc

	// ResultFunc is a one-shot post-transition callback.
	ResultFunc = internal.ResultFunc

	// ContextExtractor extracts a slog attribute from context.
	ContextExtractor = logger.ContextExtractor
)

// GenericErrorMessage is the user-safe message returned for unexpected
// handler failures.
const GenericErrorMessage = internal.GenericErrorMessage

// Errors.
var (
	// ErrBindingClosed is returned by Dispatch after Close.
	ErrBindingClosed = internal.ErrBindingClosed

	// ErrNoHandler is returned by Dispatch when the binding was built
	// without a handler.
	ErrNoHandler = internal.ErrNoHandler
)

// Signals

// Fail builds a failure signal carrying a user-facing message and
// optional field errors, extra data, and navigation hints.
//
// Example:
//
//	return formflow.Result{}, formflow.Fail("Please fix the errors below",
//	    formflow.WithFieldError("email", "Email is required"),
//	)
func Fail(message string, opts ...SignalOption) error {
	return internal.Fail(message, opts...)
}

// Succeed builds a success signal carrying a user-facing message and
// optional extra data and navigation hints.
//
// Example:
//
//	return formflow.Result{}, formflow.Succeed("Account created",
//	    formflow.WithRedirect("/welcome"),
//	)
func Succeed(message string, opts ...SignalOption) error {
	return internal.Succeed(message, opts...)
}

// IsSignal returns true if the error is a Signal.
func IsSignal(err error) bool {
	return internal.IsSignal(err)
}

// AsSignal extracts the Signal from an error if present.
func AsSignal(err error) (*Signal, bool) {
	return internal.AsSignal(err)
}

// Signal options

// WithFieldErrors sets the per-field validation errors.
func WithFieldErrors(fieldErrors map[string][]string) SignalOption {
	return internal.WithFieldErrors(fieldErrors)
}

// WithFieldError appends errors for a single field, preserving order.
func WithFieldError(field string, msgs ...string) SignalOption {
	return internal.WithFieldError(field, msgs...)
}

// WithExtra sets the caller-defined side data.
func WithExtra(extra map[string]any) SignalOption {
	return internal.WithExtra(extra)
}

// WithExtraValue sets a single side-data entry.
func WithExtraValue(key string, value any) SignalOption {
	return internal.WithExtraValue(key, value)
}

// WithRedirect sets the post-submission navigation target.
func WithRedirect(path string) SignalOption {
	return internal.WithRedirect(path)
}

// WithRefresh requests a view revalidation after publication.
func WithRefresh() SignalOption {
	return internal.WithRefresh()
}

// Wrapper

// Wrap normalizes every outcome of a handler into a Result: normal
// returns pass through with the submitted form as payload, signals are
// materialized, host control signals propagate untouched, and anything
// else is logged once under the given name and collapsed to a generic
// failure.
//
// Example:
//
//	handler := formflow.Wrap("signup", createAccount,
//	    formflow.WithLogger(log),
//	)
func Wrap(name string, h HandlerFunc, opts ...WrapOption) HandlerFunc {
	return internal.Wrap(name, h, opts...)
}

// WithLogger sets the logger used by Wrap for unexpected failures.
func WithLogger(log *slog.Logger) WrapOption {
	return internal.WithLogger(log)
}

// WithPassthrough replaces the host-control-signal predicate used by Wrap.
// The default treats context cancellation, context deadline expiration,
// and http.ErrAbortHandler as host control signals.
func WithPassthrough(fn PassthroughFunc) WrapOption {
	return internal.WithPassthrough(fn)
}

// Binding

// NewBinding creates a binding around a handler, typically one produced
// by Wrap.
//
// Example:
//
//	b := formflow.NewBinding(formflow.Wrap("signup", createAccount),
//	    formflow.WithNavigator(nav),
//	    formflow.WithBindingLogger(log),
//	)
func NewBinding(handler HandlerFunc, opts ...BindingOption) *Binding {
	return internal.NewBinding(handler, opts...)
}

// NopNavigator returns a Navigator that ignores all navigation hints.
func NopNavigator() Navigator {
	return internal.NopNavigator()
}

// Binding options

// WithNavigator sets the navigator that performs redirect and refresh
// side effects.
func WithNavigator(nav Navigator) BindingOption {
	return internal.WithNavigator(nav)
}

// WithBindingLogger sets the binding's logger for callback and
// navigation failures.
func WithBindingLogger(log *slog.Logger) BindingOption {
	return internal.WithBindingLogger(log)
}

// WithInitialState seeds the binding with an explicit initial record.
func WithInitialState(res Result) BindingOption {
	return internal.WithInitialState(res)
}

// WithInitialPayload seeds only the initial record's payload. Use
// url.Values{} to make the pre-submission payload an empty map rather
// than absent.
func WithInitialPayload(form url.Values) BindingOption {
	return internal.WithInitialPayload(form)
}
