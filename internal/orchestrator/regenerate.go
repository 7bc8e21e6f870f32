package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/trendcast/trendcast-api/internal/domain"
	"github.com/trendcast/trendcast-api/internal/events"
)

// RegenerationService enqueues user-initiated script regeneration. It
// emits a TaskRequestEvent rather than writing the queue directly, so the
// HTTP layer stays decoupled from task persistence.
type RegenerationService struct {
	emitter events.EventEmitter
	logger  *slog.Logger
	now     func() time.Time
}

// NewRegenerationService creates a new RegenerationService
func NewRegenerationService(emitter events.EventEmitter, logger *slog.Logger) *RegenerationService {
	return &RegenerationService{
		emitter: emitter,
		logger:  logger.With("component", "regeneration_service"),
		now:     time.Now,
	}
}

// RegenerateWithNuance queues a high-priority script_generation task
// carrying the caller's nuance parameters verbatim and returns the task ID
// immediately. The caller polls the task for the outcome; this is an
// enqueue-time result only.
func (s *RegenerationService) RegenerateWithNuance(
	ctx context.Context,
	topicID uuid.UUID,
	topic string,
	category string,
	nuance map[string]any,
) (uuid.UUID, error) {
	payload := ScriptGenerationPayload{
		TopicID:      topicID,
		Topic:        topic,
		Category:     category,
		NuanceParams: nuance,
		Regeneration: true,
		Timestamp:    s.now().UTC(),
	}

	event, err := events.NewTaskRequestEvent(
		domain.TaskTypeScriptGeneration,
		domain.PriorityRegeneration,
		payload,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to build regeneration event: %w", err)
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		return uuid.Nil, fmt.Errorf("failed to queue regeneration: %w", err)
	}

	s.logger.Info("regeneration queued",
		"task_id", event.ID,
		"topic", topic)
	return event.ID, nil
}
