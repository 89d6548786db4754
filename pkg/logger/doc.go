// Package logger provides structured logging for form submission flows,
// with context extraction and optional Sentry delivery.
//
// It extends log/slog with extractors that inject request-scoped values
// into every record, plus two domain helpers used by the formflow core:
// the action label of the handler being dispatched and the generated
// submission ID of the current cycle.
//
// # Basic Usage
//
//	log := logger.New(logger.ActionExtractor, logger.SubmissionIDExtractor)
//
//	ctx := logger.WithAction(ctx, "signup")
//	log.InfoContext(ctx, "form dispatched")
//	// Output: {"level":"INFO","msg":"form dispatched","action":"signup"}
//
// # Sentry Delivery
//
//	log := logger.NewWithSentry(logger.SentryConfig{
//	    DSN:         os.Getenv("SENTRY_DSN"),
//	    Environment: "production",
//	    MinLevel:    slog.LevelWarn,
//	}, logger.ActionExtractor, logger.SubmissionIDExtractor)
//
// With an empty DSN the logger falls back to stdout only, so the same
// code path is safe in development.
package logger
