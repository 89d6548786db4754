package endpoint

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"
	"slices"

	"github.com/a-h/templ"
	"github.com/yuin/goldmark"

	"github.com/dmitrymomot/formflow"
	"github.com/dmitrymomot/formflow/pkg/sanitizer"
)

// Feedback is the default outcome fragment: the message rendered from
// markdown (sanitized to basic formatting tags) followed by per-field
// errors, with data attributes for client-side styling and an hx-swap-oob
// friendly wrapper id.
func Feedback(res formflow.Result) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		outcome := "error"
		if res.Success {
			outcome = "success"
		}
		if _, err := fmt.Fprintf(w, `<div id="ff-feedback" class="ff-feedback" data-outcome="%s">`, outcome); err != nil {
			return err
		}

		if res.Message != "" {
			var buf bytes.Buffer
			if err := goldmark.Convert([]byte(res.Message), &buf); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, `<div class="ff-message">%s</div>`, sanitizer.SafeHTML(buf.String())); err != nil {
				return err
			}
		}

		if res.HasFieldErrors() {
			fields := make([]string, 0, len(res.FieldErrors))
			for field := range res.FieldErrors {
				fields = append(fields, field)
			}
			slices.Sort(fields)

			if _, err := io.WriteString(w, `<ul class="ff-field-errors">`); err != nil {
				return err
			}
			for _, field := range fields {
				for _, msg := range res.FieldErrors[field] {
					if _, err := fmt.Fprintf(w, `<li data-field="%s">%s</li>`,
						html.EscapeString(field), html.EscapeString(msg)); err != nil {
						return err
					}
				}
			}
			if _, err := io.WriteString(w, `</ul>`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
