package endpoint

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/dmitrymomot/formflow"
	"github.com/dmitrymomot/formflow/pkg/flash"
	"github.com/dmitrymomot/formflow/pkg/htmx"
	"github.com/dmitrymomot/formflow/pkg/logger"
	"github.com/dmitrymomot/formflow/pkg/sanitizer"
)

// statusClientClosedRequest is the nginx convention for a request whose
// client went away before a response could be produced.
const statusClientClosedRequest = 499

// RenderFunc produces the fragment rendered for a submission outcome.
type RenderFunc func(res formflow.Result) templ.Component

// Endpoint serves one form over HTTP.
type Endpoint struct {
	name    string
	handler formflow.HandlerFunc
	render  RenderFunc
	store   flash.Store
	log     *slog.Logger
	initial formflow.Result
	clean   bool
}

// Option configures an Endpoint.
type Option func(*Endpoint)

// WithRender sets the outcome fragment renderer.
// Defaults to the built-in Feedback fragment.
func WithRender(fn RenderFunc) Option {
	return func(e *Endpoint) {
		if fn != nil {
			e.render = fn
		}
	}
}

// WithFlash sets the store that carries outcomes across a
// Post-Redirect-Get cycle. Without one, redirecting outcomes are dropped
// after navigation.
func WithFlash(store flash.Store) Option {
	return func(e *Endpoint) {
		e.store = store
	}
}

// WithLogger sets the logger for handler failures. Defaults to a no-op
// logger.
func WithLogger(log *slog.Logger) Option {
	return func(e *Endpoint) {
		if log != nil {
			e.log = log
		}
	}
}

// WithInitialState seeds the state passed to the handler and rendered by
// GET before any submission.
func WithInitialState(res formflow.Result) Option {
	return func(e *Endpoint) {
		e.initial = res.Clone()
	}
}

// WithoutSanitize disables outcome text sanitization. Only use with a
// custom RenderFunc that escapes everything itself.
func WithoutSanitize() Option {
	return func(e *Endpoint) {
		e.clean = false
	}
}

// New creates an endpoint around a handler. The name labels the handler
// in logs; the handler is normalized with formflow.Wrap, so it may
// return results directly, signal with Fail/Succeed, or fail with plain
// errors.
func New(name string, h formflow.HandlerFunc, opts ...Option) *Endpoint {
	e := &Endpoint{
		name:   name,
		render: Feedback,
		log:    logger.NewNope(),
		clean:  true,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.handler = formflow.Wrap(name, h, formflow.WithLogger(e.log))
	return e
}

// Mount registers the endpoint on a chi router: POST submits, GET renders
// the current state.
func (e *Endpoint) Mount(r chi.Router, pattern string) {
	r.Get(pattern, e.ServeHTTP)
	r.Post(pattern, e.ServeHTTP)
}

// ServeHTTP implements http.Handler.
func (e *Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		e.submit(w, r)
	case http.MethodGet:
		e.show(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

// submit runs one submission cycle over HTTP.
func (e *Endpoint) submit(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), e.name)
	ctx = logger.WithSubmissionID(ctx, uuid.NewString())

	if err := r.ParseForm(); err != nil {
		e.log.WarnContext(ctx, "malformed form payload", slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	res, err := e.handler(ctx, e.initial, r.PostForm)
	if err != nil {
		// Only host control signals escape the wrapper.
		if errors.Is(err, http.ErrAbortHandler) {
			panic(http.ErrAbortHandler)
		}
		e.log.DebugContext(ctx, "submission aborted", slog.String("error", err.Error()))
		w.WriteHeader(statusClientClosedRequest)
		return
	}

	if e.clean {
		res = sanitizer.Clean(res)
	}

	// Cookies must precede any status write, so the flash is stored
	// before navigation touches the response. Refresh-only outcomes
	// navigate too and need the carry just as much.
	if (res.Redirect != "" || res.Refresh) && e.store != nil {
		if err := e.store.Put(ctx, w, res); err != nil {
			e.log.ErrorContext(ctx, "flash store failed", slog.String("error", err.Error()))
		}
	}

	if htmx.Apply(w, r, res) {
		if htmx.IsHTMX(r) {
			w.WriteHeader(http.StatusOK)
		}
		return
	}

	e.renderResult(w, r, res)
}

// show renders the current state, restoring a flash-stored outcome from a
// preceding redirect when one is pending.
func (e *Endpoint) show(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), e.name)

	res := e.initial
	if e.store != nil {
		stored, err := e.store.Take(ctx, w, r)
		switch {
		case err == nil:
			res = stored
		case !errors.Is(err, flash.ErrNotFound):
			e.log.WarnContext(ctx, "flash restore failed", slog.String("error", err.Error()))
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if err := e.render(res).Render(ctx, w); err != nil {
		e.log.ErrorContext(ctx, "render failed", slog.String("error", err.Error()))
	}
}

func (e *Endpoint) renderResult(w http.ResponseWriter, r *http.Request, res formflow.Result) {
	status := http.StatusOK
	if !res.Success && res.Message != "" {
		status = http.StatusUnprocessableEntity
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := e.render(res).Render(r.Context(), w); err != nil {
		e.log.ErrorContext(r.Context(), "render failed", slog.String("error", err.Error()))
	}
}
