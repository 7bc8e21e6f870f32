package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/trendcast/trendcast-api/internal/domain"
)

// Common request/response structures

// RegenerateRequest defines the payload for the content regeneration
// endpoint. NuanceParams is passed through to script generation verbatim.
type RegenerateRequest struct {
	Topic        string         `json:"topic"    validate:"required,min=1"`
	Category     string         `json:"category" validate:"required,min=1"`
	NuanceParams map[string]any `json:"nuance_params,omitempty"`
}

// RegenerateResponse acknowledges a queued regeneration. The work itself
// runs asynchronously; poll the task endpoint with the returned ID.
type RegenerateResponse struct {
	TaskID uuid.UUID `json:"task_id"`
	Status string    `json:"status"`
}

// PipelineRunResponse acknowledges an on-demand pipeline run.
type PipelineRunResponse struct {
	Status string `json:"status"`
}

// TaskResponse is the polling view of a queued task.
type TaskResponse struct {
	ID           uuid.UUID  `json:"id"`
	TaskType     string     `json:"task_type"`
	Status       string     `json:"status"`
	Priority     int        `json:"priority"`
	Attempts     int        `json:"attempts"`
	MaxAttempts  int        `json:"max_attempts"`
	ErrorMessage string     `json:"error_message,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// taskToResponse converts a domain.Task to its API representation. The
// task payload stays internal; callers only see lifecycle state.
func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:           task.ID,
		TaskType:     string(task.TaskType),
		Status:       string(task.Status),
		Priority:     task.Priority,
		Attempts:     task.Attempts,
		MaxAttempts:  task.MaxAttempts,
		ErrorMessage: task.ErrorMessage,
		CreatedAt:    task.CreatedAt,
		StartedAt:    task.StartedAt,
		CompletedAt:  task.CompletedAt,
	}
}
