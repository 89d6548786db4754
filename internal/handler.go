package internal

import (
	"context"
	"net/url"
)

// HandlerFunc processes one form submission.
// It receives the previously published state and the submitted form data,
// and either returns the next Result directly, returns a Signal error built
// with Fail or Succeed, or returns any other error to report a defect.
//
// Example:
//
//	func createAccount(ctx context.Context, state formflow.Result, form url.Values) (formflow.Result, error) {
//	    email := form.Get("email")
//	    if email == "" {
//	        return formflow.Result{}, formflow.Fail("Please fix the errors below",
//	            formflow.WithFieldError("email", "Email is required"),
//	        )
//	    }
//	    id, err := repo.Create(ctx, email)
//	    if err != nil {
//	        return formflow.Result{}, err // collapsed to a generic failure by Wrap
//	    }
//	    return formflow.Result{}, formflow.Succeed("Account created",
//	        formflow.WithRedirect("/welcome"),
//	        formflow.WithExtraValue("user_id", id),
//	    )
//	}
type HandlerFunc func(ctx context.Context, state Result, form url.Values) (Result, error)

// Navigator performs post-submission navigation side effects.
// The binding calls NavigateTo for Result.Redirect and Refresh for
// Result.Refresh, in that order.
type Navigator interface {
	NavigateTo(ctx context.Context, path string) error
	Refresh(ctx context.Context) error
}

// SubmitFunc is a pre-submit callback, invoked with the form data about to
// be dispatched.
type SubmitFunc func(ctx context.Context, form url.Values) error

// ResultFunc is a post-transition callback, invoked with the newly
// published result.
type ResultFunc func(ctx context.Context, res Result) error

// nopNavigator is the default Navigator when none is configured.
type nopNavigator struct{}

func (nopNavigator) NavigateTo(context.Context, string) error { return nil }
func (nopNavigator) Refresh(context.Context) error            { return nil }

// NopNavigator returns a Navigator that ignores all navigation hints.
func NopNavigator() Navigator {
	return nopNavigator{}
}
