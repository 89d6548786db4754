// Package htmx applies form-submission navigation hints to HTTP responses
// using htmx response headers.
//
// Redirect and Refresh cover one-off navigation; Navigator adapts a
// response writer to the formflow Navigator interface so a binding can
// drive navigation; Apply executes a whole result's hints in
// redirect-then-refresh order.
//
// For requests not originated by htmx, Redirect falls back to a standard
// HTTP redirect and Refresh falls back to redirecting to the current URL.
package htmx
