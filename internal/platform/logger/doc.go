// Package logger configures the process-wide slog JSON logger and provides
// the context helpers (WithLogger/FromContext) that carry a request- or
// job-scoped logger down into stores and stage clients.
package logger
