package logger

import (
	"context"
	"log/slog"
)

type ctxKey int

const (
	actionKey ctxKey = iota
	submissionIDKey
)

// WithAction tags the context with the action label of the handler being
// dispatched.
func WithAction(ctx context.Context, action string) context.Context {
	return context.WithValue(ctx, actionKey, action)
}

// ActionFromContext returns the action label, if any.
func ActionFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(actionKey).(string)
	return v, ok && v != ""
}

// WithSubmissionID tags the context with the generated ID of the current
// submission cycle.
func WithSubmissionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, submissionIDKey, id)
}

// SubmissionIDFromContext returns the submission cycle ID, if any.
func SubmissionIDFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(submissionIDKey).(string)
	return v, ok && v != ""
}

// ActionExtractor injects the action label into log records.
func ActionExtractor(ctx context.Context) (slog.Attr, bool) {
	if action, ok := ActionFromContext(ctx); ok {
		return slog.String("action", action), true
	}
	return slog.Attr{}, false
}

// SubmissionIDExtractor injects the submission cycle ID into log records.
func SubmissionIDExtractor(ctx context.Context) (slog.Attr, bool) {
	if id, ok := SubmissionIDFromContext(ctx); ok {
		return slog.String("submission_id", id), true
	}
	return slog.Attr{}, false
}
