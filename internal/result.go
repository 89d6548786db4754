package internal

import (
	"maps"
	"net/url"
	"slices"
)

// Result is the outcome of one form submission attempt.
// It is the only shape handlers produce and the only shape the binding
// publishes; consumers branch on Success, render Message and FieldErrors,
// and act on the navigation hints.
//
// A Result is immutable by convention: every submission constructs a new
// record, and accessors hand out deep copies where map aliasing could leak.
type Result struct {
	// Payload echoes the form data of the submission that produced this
	// result. Nil on the initial record, before any dispatch.
	Payload url.Values `json:"payload,omitempty"`

	// Success is the sole outcome discriminator.
	Success bool `json:"success"`

	// Message is the human-readable outcome message, empty when absent.
	Message string `json:"message,omitempty"`

	// FieldErrors maps field names to ordered per-field validation errors.
	FieldErrors map[string][]string `json:"field_errors,omitempty"`

	// Extra carries caller-defined side data (e.g., a created entity ID).
	Extra map[string]any `json:"extra,omitempty"`

	// Redirect is the path the client must navigate to after publication.
	Redirect string `json:"redirect,omitempty"`

	// Refresh instructs the client to revalidate the current view after
	// publication. Runs after Redirect when both are set.
	Refresh bool `json:"refresh,omitempty"`
}

// Clone returns a deep copy of the result.
func (r Result) Clone() Result {
	out := r
	out.Payload = cloneValues(r.Payload)
	out.FieldErrors = cloneFieldErrors(r.FieldErrors)
	out.Extra = maps.Clone(r.Extra)
	return out
}

// WithPayload returns a copy of the result with the payload replaced.
func (r Result) WithPayload(form url.Values) Result {
	out := r.Clone()
	out.Payload = cloneValues(form)
	return out
}

// HasFieldErrors reports whether any per-field errors are present.
func (r Result) HasFieldErrors() bool {
	return len(r.FieldErrors) > 0
}

// FieldError returns the errors recorded for a single field, nil when none.
func (r Result) FieldError(field string) []string {
	return slices.Clone(r.FieldErrors[field])
}

// Equal reports structural equality of two results. Extra values are
// compared only for key presence, since arbitrary side data may not be
// comparable.
func (r Result) Equal(other Result) bool {
	if r.Success != other.Success ||
		r.Message != other.Message ||
		r.Redirect != other.Redirect ||
		r.Refresh != other.Refresh {
		return false
	}
	if !maps.EqualFunc(r.Payload, other.Payload, slices.Equal) {
		return false
	}
	if !maps.EqualFunc(r.FieldErrors, other.FieldErrors, slices.Equal) {
		return false
	}
	if len(r.Extra) != len(other.Extra) {
		return false
	}
	for k := range r.Extra {
		if _, ok := other.Extra[k]; !ok {
			return false
		}
	}
	return true
}

func cloneValues(v url.Values) url.Values {
	if v == nil {
		return nil
	}
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = slices.Clone(vals)
	}
	return out
}

func cloneFieldErrors(fe map[string][]string) map[string][]string {
	if fe == nil {
		return nil
	}
	out := make(map[string][]string, len(fe))
	for k, vals := range fe {
		out[k] = slices.Clone(vals)
	}
	return out
}
