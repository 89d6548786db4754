package htmx

import (
	"context"
	"net/http"

	"github.com/dmitrymomot/formflow"
)

// IsHTMX returns true if the request originated from htmx.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get(HeaderHXRequest) == "true"
}

// Redirect performs a redirect for both htmx and regular requests.
// htmx requests receive an HX-Redirect header with a 200 status; the
// client runtime performs the navigation.
func Redirect(w http.ResponseWriter, r *http.Request, targetURL string) {
	if IsHTMX(r) {
		w.Header().Set(HeaderHXRedirect, targetURL)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, targetURL, http.StatusSeeOther)
}

// Refresh instructs the client to reload the current view.
// Non-htmx requests are redirected back to the URL they came from.
func Refresh(w http.ResponseWriter, r *http.Request) {
	if IsHTMX(r) {
		w.Header().Set(HeaderHXRefresh, "true")
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, r.URL.String(), http.StatusSeeOther)
}

// Navigator adapts one HTTP response to the formflow Navigator interface.
// For htmx requests it only sets headers, leaving the status line to the
// caller; for regular requests it writes at most one real redirect.
type Navigator struct {
	w     http.ResponseWriter
	r     *http.Request
	wrote bool
}

// NewNavigator creates a Navigator bound to a response writer and request.
func NewNavigator(w http.ResponseWriter, r *http.Request) *Navigator {
	return &Navigator{w: w, r: r}
}

// NavigateTo records a client-side redirect to path.
func (n *Navigator) NavigateTo(_ context.Context, path string) error {
	if IsHTMX(n.r) {
		n.w.Header().Set(HeaderHXRedirect, path)
		return nil
	}
	if !n.wrote {
		http.Redirect(n.w, n.r, path, http.StatusSeeOther)
		n.wrote = true
	}
	return nil
}

// Refresh records a client-side reload of the current view.
func (n *Navigator) Refresh(context.Context) error {
	if IsHTMX(n.r) {
		n.w.Header().Set(HeaderHXRefresh, "true")
		return nil
	}
	if !n.wrote {
		http.Redirect(n.w, n.r, n.r.URL.String(), http.StatusSeeOther)
		n.wrote = true
	}
	return nil
}

// Applied reports whether a non-htmx redirect has been written.
func (n *Navigator) Applied() bool {
	return n.wrote
}

// Apply executes a result's navigation hints against the response in
// redirect-then-refresh order. It returns true if any hint was applied.
// For htmx requests only headers are set; the caller still owns the
// status line and body.
func Apply(w http.ResponseWriter, r *http.Request, res formflow.Result) bool {
	n := NewNavigator(w, r)
	applied := false
	if res.Redirect != "" {
		_ = n.NavigateTo(r.Context(), res.Redirect)
		applied = true
	}
	if res.Refresh {
		_ = n.Refresh(r.Context())
		applied = true
	}
	return applied
}
