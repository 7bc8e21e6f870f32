// Package api implements the dashboard HTTP surface: triggering pipeline
// runs, requesting content regeneration, polling task status, and reading
// the system status snapshot. Handlers validate requests, call into the
// orchestrator services, and map errors to safe HTTP responses.
package api
