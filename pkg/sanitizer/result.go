// Package sanitizer cleans form-submission outcome text before it is
// rendered into HTML fragments.
package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/formflow"
)

var (
	strictPolicy *bluemonday.Policy
	safePolicy   *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		// strictPolicy strips ALL HTML, returns plain text
		strictPolicy = bluemonday.StrictPolicy()

		// safePolicy allows the basic formatting markdown produces
		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"p", "br",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.RequireNoFollowOnLinks(true)
	})
}

// Clean returns a copy of the result with the message, every field error,
// and every string-valued extra entry reduced to plain text. Handler code
// is trusted, but messages routinely interpolate user input, so outcomes
// are stripped before rendering.
func Clean(res formflow.Result) formflow.Result {
	initPolicies()

	out := res.Clone()
	out.Message = strictPolicy.Sanitize(out.Message)
	for field, msgs := range out.FieldErrors {
		for i, msg := range msgs {
			msgs[i] = strictPolicy.Sanitize(msg)
		}
		out.FieldErrors[field] = msgs
	}
	for k, v := range out.Extra {
		if s, ok := v.(string); ok {
			out.Extra[k] = strictPolicy.Sanitize(s)
		}
	}
	return out
}

// SafeHTML sanitizes an HTML fragment, allowing the basic formatting tags
// produced by markdown rendering (p, a, strong, em, lists, code). Strips
// scripts, event handlers, and javascript: URLs.
func SafeHTML(s string) string {
	initPolicies()
	return safePolicy.Sanitize(s)
}
