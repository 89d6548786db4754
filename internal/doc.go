// Package internal provides the core types and implementation for formflow.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/formflow" instead, which re-exports the public API.
//
// # Core Types
//
//   - Result: The flat, immutable record of one form submission attempt
//   - Signal: A terminal outcome expressed as an error value, built with Fail/Succeed
//   - HandlerFunc: Signature for form submission handlers
//   - Binding: The state cell bridging a wrapped handler to reactive submission state
//   - Navigator: Interface for post-submission redirect/refresh side effects
//
// # Outcome Flow
//
// A handler either returns the next Result directly, returns a Signal built
// with Fail or Succeed, or returns any other error to report a defect. Wrap
// normalizes all three into a Result: signals are materialized with the
// submitted form as payload, host control signals (context cancellation,
// http.ErrAbortHandler, or anything matched by a custom passthrough
// predicate) propagate untouched, and everything else is logged once and
// collapsed into a generic user-safe failure. The host never observes an
// application error escaping the wrapper.
//
// # Binding Lifecycle
//
// NewBinding seeds a default record (Success=false, no message). Dispatch
// runs one serialized submission cycle: the one-shot submit callback, the
// handler, publication of the new record, at most one one-shot
// success/error callback, observers, then navigation in
// redirect-then-refresh order. Callback slots are single-slot and
// last-registration-wins; Close detaches everything and fails further
// dispatches with ErrBindingClosed.
//
// See the formflow package documentation for the public API and usage
// examples.
package internal
