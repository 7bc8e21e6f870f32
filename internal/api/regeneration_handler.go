package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/trendcast/trendcast-api/internal/api/shared"
)

// Regenerator enqueues a high-priority regeneration and returns the task ID.
type Regenerator interface {
	RegenerateWithNuance(ctx context.Context, topicID uuid.UUID, topic, category string, nuance map[string]any) (uuid.UUID, error)
}

// RegenerationHandler handles content regeneration HTTP requests
type RegenerationHandler struct {
	regenerator Regenerator
	validator   *validator.Validate
	logger      *slog.Logger
}

// NewRegenerationHandler creates a new RegenerationHandler
func NewRegenerationHandler(regenerator Regenerator, logger *slog.Logger) *RegenerationHandler {
	return &RegenerationHandler{
		regenerator: regenerator,
		validator:   validator.New(),
		logger:      logger.With("component", "regeneration_handler"),
	}
}

// Regenerate handles POST /api/topics/{id}/regenerate requests
func (h *RegenerationHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	topicID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid topic ID")
		return
	}

	var req RegenerateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	taskID, err := h.regenerator.RegenerateWithNuance(r.Context(), topicID, req.Topic, req.Category, req.NuanceParams)
	if err != nil {
		h.logger.Error("failed to queue regeneration",
			"topic_id", topicID,
			"error", err)
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	// 202: the caller polls the task endpoint for the outcome.
	shared.RespondWithJSON(w, r, http.StatusAccepted, RegenerateResponse{
		TaskID: taskID,
		Status: "queued",
	})
}
