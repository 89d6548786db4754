package internal

import (
	"log/slog"
	"net/url"
)

// BindingOption configures a Binding.
type BindingOption func(*Binding)

// WithNavigator sets the navigator that performs redirect and refresh side
// effects. Defaults to a no-op navigator.
func WithNavigator(nav Navigator) BindingOption {
	return func(b *Binding) {
		if nav != nil {
			b.nav = nav
		}
	}
}

// WithBindingLogger sets the logger for callback and navigation failures.
// Defaults to a no-op logger.
func WithBindingLogger(log *slog.Logger) BindingOption {
	return func(b *Binding) {
		if log != nil {
			b.log = log
		}
	}
}

// WithInitialState seeds the binding with an explicit initial record
// instead of the zero default.
func WithInitialState(res Result) BindingOption {
	return func(b *Binding) {
		b.state = res.Clone()
	}
}

// WithInitialPayload seeds only the initial record's payload. Use
// url.Values{} to make the pre-submission payload an empty map rather
// than absent.
func WithInitialPayload(form url.Values) BindingOption {
	return func(b *Binding) {
		b.state.Payload = cloneValues(form)
	}
}
