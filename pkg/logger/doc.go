// Package logger builds slog loggers with consistent service defaults and
// automatic injection of request-scoped attributes from context.
//
// Domain packages expose LoggerExtractor helpers (requestid, portaldb, auth)
// that plug into WithContextExtractors, so every log line emitted while
// handling a request carries its request ID, portal ID, and user ID.
package logger
