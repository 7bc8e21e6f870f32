// Package middleware provides HTTP middleware for the API surface.
package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/trendcast/trendcast-api/internal/api/shared"
	"github.com/trendcast/trendcast-api/internal/platform/logger"
)

// NewTraceMiddleware returns middleware that assigns every request a trace
// ID and stores a logger scoped with it in the request context. Handlers
// and stores downstream retrieve that logger via logger.FromContext, so one
// request's log lines all carry the same trace ID.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())

			scoped := base.With("trace_id", shared.GetTraceID(ctx))
			ctx = logger.WithLogger(ctx, scoped)

			start := time.Now()
			scoped.Debug("request started",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr)

			next.ServeHTTP(w, r.WithContext(ctx))

			scoped.Debug("request finished",
				"method", r.Method,
				"path", r.URL.Path,
				"duration_ms", time.Since(start).Milliseconds())
		})
	}
}
