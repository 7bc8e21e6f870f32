package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/trendcast/trendcast-api/internal/domain"
)

// ErrNoHandlers is returned when an event is emitted before any handler is
// registered. Emitted events promise a task, so this is a wiring error.
var ErrNoHandlers = errors.New("no event handlers registered")

// TaskRequestEvent represents a request to enqueue a pipeline task. It
// carries everything task creation needs without a direct dependency on the
// orchestrator package, so API handlers can request work without knowing
// who enqueues it.
type TaskRequestEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is the task type the handler should enqueue
	Type domain.TaskType `json:"type"`

	// Priority is the queue priority for the requested task; lower runs
	// first
	Priority int `json:"priority"`

	// Payload contains the task-specific data serialized as JSON
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is the timestamp when the event was created
	CreatedAt time.Time `json:"created_at"`
}

// UnmarshalPayload decodes the event payload into the provided structure.
func (e *TaskRequestEvent) UnmarshalPayload(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewTaskRequestEvent creates a TaskRequestEvent for the given task type,
// priority, and payload.
func NewTaskRequestEvent(taskType domain.TaskType, priority int, payload any) (*TaskRequestEvent, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &TaskRequestEvent{
		ID:        uuid.New(),
		Type:      taskType,
		Priority:  priority,
		Payload:   payloadBytes,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// EventHandler defines an interface for components that can handle events.
// Handlers are responsible for processing events and taking appropriate actions.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskRequestEvent) error
}

// EventEmitter defines an interface for components that can emit events.
// This allows handlers upstream to publish events without direct knowledge
// of who consumes them.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *TaskRequestEvent) error
}
