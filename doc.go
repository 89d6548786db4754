// Package formflow standardizes the shape of form-submission outcomes in
// server-rendered web applications and wires that shape into a state
// binding that manages pending state, one-shot lifecycle callbacks, and
// post-submission navigation.
//
// # Outcome Model
//
// Every submission produces exactly one Result: a flat record carrying the
// outcome discriminator, a user-facing message, per-field validation
// errors, caller-defined extra data, the submitted form payload, and
// redirect/refresh navigation hints. Handlers produce one of three things:
//
//   - a Result returned directly
//   - a Signal error built with Fail or Succeed, materialized by Wrap
//   - any other error, which Wrap logs and collapses to a generic failure
//
// Host control signals (context cancellation, http.ErrAbortHandler, or
// anything matched by a custom predicate) pass through Wrap untouched so
// the hosting server can act on them.
//
// # Quick Start
//
//	func createAccount(ctx context.Context, state formflow.Result, form url.Values) (formflow.Result, error) {
//	    if form.Get("email") == "" {
//	        return formflow.Result{}, formflow.Fail("Please fix the errors below",
//	            formflow.WithFieldError("email", "Email is required"),
//	        )
//	    }
//	    id, err := repo.Create(ctx, form.Get("email"))
//	    if err != nil {
//	        return formflow.Result{}, err
//	    }
//	    return formflow.Result{}, formflow.Succeed("Account created",
//	        formflow.WithRedirect("/welcome"),
//	        formflow.WithExtraValue("user_id", id),
//	    )
//	}
//
//	b := formflow.NewBinding(formflow.Wrap("signup", createAccount),
//	    formflow.WithNavigator(nav),
//	)
//	b.OnSuccess(func(ctx context.Context, res formflow.Result) error {
//	    return analytics.Track(ctx, "signup_completed", res.Extra)
//	})
//	res, err := b.Dispatch(ctx, form)
//
// Success and error callbacks are strictly one-shot: each registration
// fires at most once and is cleared before it runs; registering again
// replaces any unconsumed callback.
//
// # Subpackages
//
//   - pkg/htmx: applies navigation hints via htmx response headers
//   - pkg/endpoint: chi-mountable HTTP adapter around a wrapped handler
//   - pkg/flash: carries a Result across a Post-Redirect-Get cycle
//   - pkg/sanitizer: cleans outcome text before HTML rendering
//   - pkg/logger: structured logging with submission-scoped attributes
package formflow
