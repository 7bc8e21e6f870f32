package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/trendcast/trendcast-api/internal/api/shared"
	"github.com/trendcast/trendcast-api/internal/orchestrator"
)

// PipelineRunner triggers one full daily pipeline run.
type PipelineRunner interface {
	RunDailyPipeline(ctx context.Context) error
}

// SystemStatusProvider serves the read-only status snapshot.
type SystemStatusProvider interface {
	SystemStatus(ctx context.Context) (*orchestrator.SystemStatus, error)
}

// PipelineHandler handles on-demand pipeline runs and status requests
type PipelineHandler struct {
	runner PipelineRunner
	status SystemStatusProvider
	logger *slog.Logger
}

// NewPipelineHandler creates a new PipelineHandler
func NewPipelineHandler(runner PipelineRunner, status SystemStatusProvider, logger *slog.Logger) *PipelineHandler {
	return &PipelineHandler{
		runner: runner,
		status: status,
		logger: logger.With("component", "pipeline_handler"),
	}
}

// RunPipeline handles POST /api/pipeline/run requests. The run executes in
// the background; the response only acknowledges the start. The detached
// context keeps the run alive after the HTTP request finishes.
func (h *PipelineHandler) RunPipeline(w http.ResponseWriter, r *http.Request) {
	go func() {
		if err := h.runner.RunDailyPipeline(context.Background()); err != nil {
			h.logger.Error("on-demand pipeline run failed", "error", err)
		}
	}()

	shared.RespondWithJSON(w, r, http.StatusAccepted, PipelineRunResponse{Status: "started"})
}

// GetStatus handles GET /api/status requests
func (h *PipelineHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.status.SystemStatus(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, status)
}
