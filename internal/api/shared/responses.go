package shared

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/trendcast/trendcast-api/internal/platform/logger"
	"github.com/trendcast/trendcast-api/internal/redact"
)

// ErrorResponse is the standard error body. The trace ID lets a dashboard
// user quote something an operator can find in the logs.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// RespondWithJSON writes data as a JSON response with the given status.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response carrying the trace ID from
// the request context.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	RespondWithJSON(w, r, status, ErrorResponse{
		Error:   message,
		TraceID: GetTraceID(r.Context()),
	})
}

// RespondWithErrorAndLog sends a sanitized error to the client and logs the
// underlying error (redacted) with the request's scoped logger. Server
// errors log at ERROR, client errors at DEBUG. The raw error text never
// reaches the response body.
func RespondWithErrorAndLog(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	userMessage string,
	err error,
) {
	log := logger.FromContext(r.Context())

	attrs := []any{
		"status_code", status,
		"path", r.URL.Path,
		"method", r.Method,
		"user_message", userMessage,
	}
	if err != nil {
		attrs = append(attrs,
			"error", redact.Error(err),
			"error_type", fmt.Sprintf("%T", err))
	}

	if status >= http.StatusInternalServerError {
		log.Error("request failed", attrs...)
	} else {
		log.Debug("request rejected", attrs...)
	}

	RespondWithError(w, r, status, userMessage)
}
