package endpoint_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/formflow"
	"github.com/dmitrymomot/formflow/pkg/endpoint"
)

func renderFeedback(t *testing.T, res formflow.Result) string {
	t.Helper()

	var sb strings.Builder
	require.NoError(t, endpoint.Feedback(res).Render(context.Background(), &sb))
	return sb.String()
}

func TestFeedback(t *testing.T) {
	t.Parallel()

	t.Run("renders the message as markdown", func(t *testing.T) {
		t.Parallel()

		out := renderFeedback(t, formflow.Result{
			Success: true,
			Message: "Account **created**",
		})

		assert.Contains(t, out, `data-outcome="success"`)
		assert.Contains(t, out, "<strong>created</strong>")
	})

	t.Run("renders field errors sorted by field with escaping", func(t *testing.T) {
		t.Parallel()

		out := renderFeedback(t, formflow.Result{
			Success: false,
			Message: "Please fix the errors below",
			FieldErrors: map[string][]string{
				"username": {"Too short"},
				"email":    {"Email is required", "Must be valid"},
			},
		})

		assert.Contains(t, out, `data-outcome="error"`)
		emailIdx := strings.Index(out, `data-field="email"`)
		userIdx := strings.Index(out, `data-field="username"`)
		require.GreaterOrEqual(t, emailIdx, 0)
		require.GreaterOrEqual(t, userIdx, 0)
		assert.Less(t, emailIdx, userIdx)
		assert.Contains(t, out, "Email is required")
		assert.Contains(t, out, "Must be valid")
	})

	t.Run("escapes markup in field errors", func(t *testing.T) {
		t.Parallel()

		out := renderFeedback(t, formflow.Result{
			Success: false,
			Message: "nope",
			FieldErrors: map[string][]string{
				"bio": {`<script>alert(1)</script>`},
			},
		})

		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, "&lt;script&gt;")
	})

	t.Run("omits message and error blocks when empty", func(t *testing.T) {
		t.Parallel()

		out := renderFeedback(t, formflow.Result{Success: true})

		assert.NotContains(t, out, "ff-message")
		assert.NotContains(t, out, "ff-field-errors")
	})
}
