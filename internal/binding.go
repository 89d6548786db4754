package internal

import (
	"context"
	"log/slog"
	"net/url"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formflow/pkg/logger"
)

// Binding bridges a wrapped handler to reactive submission state.
// It owns a single state cell, serializes dispatches against it, exposes a
// pending flag for in-flight submissions, and runs one-shot lifecycle
// callbacks plus navigation side effects on every published transition.
//
// Example:
//
//	b := formflow.NewBinding(formflow.Wrap("signup", createAccount),
//	    formflow.WithNavigator(nav),
//	)
//	b.OnSuccess(func(ctx context.Context, res formflow.Result) error {
//	    return analytics.Track(ctx, "signup_completed", res.Extra)
//	})
//	res, err := b.Dispatch(ctx, form)
type Binding struct {
	handler HandlerFunc
	nav     Navigator
	log     *slog.Logger

	// dispatchMu serializes whole submission cycles so callbacks never
	// interleave with another dispatch on the same binding.
	dispatchMu sync.Mutex

	// mu guards the fields below. Held only for short sections so
	// callbacks may re-register slots for the next submission.
	mu        sync.Mutex
	state     Result
	pending   bool
	closed    bool
	onSubmit  SubmitFunc
	onSuccess ResultFunc
	onError   ResultFunc
	subs      []subscriber
	nextSubID int
}

type subscriber struct {
	fn func(Result)
	id int
}

// NewBinding creates a binding around a handler, typically one produced
// by Wrap. The initial state is a default record with Success=false, no
// message, and a nil payload unless overridden via options.
func NewBinding(handler HandlerFunc, opts ...BindingOption) *Binding {
	b := &Binding{
		handler: handler,
		nav:     NopNavigator(),
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// State returns the current result record.
func (b *Binding) State() Result {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state.Clone()
}

// Pending reports whether a submission cycle is in flight.
func (b *Binding) Pending() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending
}

// OnSubmit registers a one-shot pre-submit callback.
// The last registration wins; the slot is cleared before the callback runs.
func (b *Binding) OnSubmit(fn SubmitFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onSubmit = fn
}

// OnSuccess registers a one-shot callback for the next successful result.
// The last registration wins; the slot is cleared before the callback runs.
func (b *Binding) OnSuccess(fn ResultFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onSuccess = fn
}

// OnError registers a one-shot callback for the next failed result that
// carries a message. The last registration wins; the slot is cleared before
// the callback runs.
func (b *Binding) OnError(fn ResultFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onError = fn
}

// Subscribe registers an observer invoked once per published transition,
// never for the initial seed state. The returned cancel function detaches
// the observer; Close detaches all observers.
func (b *Binding) Subscribe(fn func(Result)) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextSubID
	b.nextSubID++
	b.subs = append(b.subs, subscriber{fn: fn, id: id})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Dispatch runs one submission cycle: the one-shot submit callback, then
// the handler, then state publication, callbacks, observers, and
// navigation. Cycles are serialized; a concurrent Dispatch blocks until
// the in-flight one completes.
//
// Host control signals propagated by the wrapped handler are returned to
// the caller without publishing a new state. Every cycle is tagged with a
// generated submission ID for log correlation.
//
// Callbacks and observers must not call Dispatch on the same binding;
// the cycle lock is held until they return.
func (b *Binding) Dispatch(ctx context.Context, form url.Values) (Result, error) {
	b.dispatchMu.Lock()
	defer b.dispatchMu.Unlock()

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return Result{}, ErrBindingClosed
	}
	if b.handler == nil {
		b.mu.Unlock()
		return Result{}, ErrNoHandler
	}
	prev := b.state.Clone()
	submit := b.onSubmit
	b.onSubmit = nil
	b.pending = true
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.pending = false
		b.mu.Unlock()
	}()

	ctx = logger.WithSubmissionID(ctx, uuid.NewString())

	if submit != nil {
		if err := submit(ctx, cloneValues(form)); err != nil {
			b.log.WarnContext(ctx, "submit callback failed",
				slog.String("error", err.Error()))
		}
	}

	res, err := b.handler(ctx, prev, form)
	if err != nil {
		return Result{}, err
	}

	// Publication ends the pending window. Callbacks and observers run
	// after it and must see Pending() == false.
	b.mu.Lock()
	b.state = res
	b.pending = false
	b.mu.Unlock()

	b.transition(ctx, res)
	return res.Clone(), nil
}

// Close tears the binding down: pending callback slots and observers are
// dropped, and further dispatches return ErrBindingClosed.
func (b *Binding) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	b.onSubmit = nil
	b.onSuccess = nil
	b.onError = nil
	b.subs = nil
	return nil
}

// transition runs the side effects of one published state change:
// one-shot success/error callback, observers, then navigation in
// redirect-then-refresh order.
func (b *Binding) transition(ctx context.Context, res Result) {
	b.mu.Lock()
	var cb ResultFunc
	switch {
	case res.Success && b.onSuccess != nil:
		cb = b.onSuccess
		b.onSuccess = nil
	case !res.Success && res.Message != "" && b.onError != nil:
		cb = b.onError
		b.onError = nil
	}
	subs := make([]subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	if cb != nil {
		if err := cb(ctx, res.Clone()); err != nil {
			b.log.WarnContext(ctx, "result callback failed",
				slog.String("error", err.Error()))
		}
	}

	for _, s := range subs {
		s.fn(res.Clone())
	}

	if res.Redirect != "" {
		if err := b.nav.NavigateTo(ctx, res.Redirect); err != nil {
			b.log.ErrorContext(ctx, "navigation failed",
				slog.String("path", res.Redirect),
				slog.String("error", err.Error()))
		}
	}
	if res.Refresh {
		if err := b.nav.Refresh(ctx); err != nil {
			b.log.ErrorContext(ctx, "refresh failed",
				slog.String("error", err.Error()))
		}
	}
}
