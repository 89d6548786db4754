// Package endpoint adapts a form handler to an HTTP route.
//
// An Endpoint owns one form's submission cycle over HTTP: it parses the
// posted form, dispatches it through the wrapped handler, sanitizes the
// outcome, applies navigation hints via htmx response headers, and renders
// the outcome fragment with templ. With a flash store configured, the
// outcome of a redirecting submission survives the Post-Redirect-Get hop
// and is re-rendered by the follow-up GET.
//
// # Usage
//
//	ep := endpoint.New("signup", createAccount,
//	    endpoint.WithLogger(log),
//	    endpoint.WithFlash(store),
//	    endpoint.WithRender(views.SignupForm),
//	)
//
//	r := chi.NewRouter()
//	ep.Mount(r, "/signup")
//
// POST runs a submission; GET renders the current (possibly
// flash-restored) state. Without a custom RenderFunc, the built-in
// Feedback fragment renders the message (markdown, sanitized) and the
// per-field errors.
package endpoint
