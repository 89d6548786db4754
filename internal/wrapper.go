package internal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
)

// GenericErrorMessage is the user-safe message returned for unexpected
// handler failures. Original error detail never reaches the client.
const GenericErrorMessage = "An unexpected error occurred. Please try again."

// PassthroughFunc reports whether an error is a host control signal that
// must propagate past the wrapper untouched instead of being converted
// into a Result.
type PassthroughFunc func(error) bool

// DefaultPassthrough treats context cancellation, context deadline
// expiration, and http.ErrAbortHandler as host control signals.
func DefaultPassthrough(err error) bool {
	return errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, http.ErrAbortHandler)
}

type wrapConfig struct {
	log         *slog.Logger
	passthrough PassthroughFunc
}

// WrapOption configures Wrap.
type WrapOption func(*wrapConfig)

// WithLogger sets the logger used for unexpected handler failures.
// Defaults to a no-op logger.
func WithLogger(log *slog.Logger) WrapOption {
	return func(c *wrapConfig) {
		if log != nil {
			c.log = log
		}
	}
}

// WithPassthrough replaces the host-control-signal predicate.
func WithPassthrough(fn PassthroughFunc) WrapOption {
	return func(c *wrapConfig) {
		if fn != nil {
			c.passthrough = fn
		}
	}
}

// Wrap normalizes every outcome of a handler into a Result.
// The name labels the handler in logs for unexpected failures.
//
// The wrapped handler:
//   - passes a normal return through, with Payload set to the submitted form
//   - materializes a returned Signal into its Result
//   - propagates host control signals (per the passthrough predicate) untouched
//   - logs anything else once and collapses it to a generic failure record
//
// Recovered panics are treated as unexpected failures, except
// http.ErrAbortHandler which is re-raised for the host to handle.
//
// Example:
//
//	handler := formflow.Wrap("signup", createAccount,
//	    formflow.WithLogger(log),
//	)
func Wrap(name string, h HandlerFunc, opts ...WrapOption) HandlerFunc {
	cfg := &wrapConfig{
		log:         slog.New(slog.DiscardHandler),
		passthrough: DefaultPassthrough,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(ctx context.Context, state Result, form url.Values) (res Result, err error) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				cfg.log.ErrorContext(ctx, "form handler panicked",
					slog.String("action", name),
					slog.Any("panic", rec),
				)
				res, err = genericFailure(form), nil
			}
		}()

		res, err = h(ctx, state, form)
		if err == nil {
			res.Payload = cloneValues(form)
			return res, nil
		}

		if sig, ok := AsSignal(err); ok {
			return sig.Result(form), nil
		}

		if cfg.passthrough(err) {
			return Result{}, err
		}

		cfg.log.ErrorContext(ctx, "form handler failed",
			slog.String("action", name),
			slog.String("error", err.Error()),
		)
		return genericFailure(form), nil
	}
}

func genericFailure(form url.Values) Result {
	return Result{
		Payload: cloneValues(form),
		Success: false,
		Message: GenericErrorMessage,
	}
}
