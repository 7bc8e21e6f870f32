package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/trendcast/trendcast-api/internal/domain"
	"github.com/trendcast/trendcast-api/internal/stage"
)

// AgentName identifies the orchestrator in assigned_agent columns and
// metric rows.
const AgentName = "orchestrator"

// HandlerFunc executes one queued task against its stage collaborator.
type HandlerFunc func(ctx context.Context, task *domain.Task) error

// Dispatcher routes queued tasks to stage handlers through a registration
// table built once at construction. It never touches the task store; the
// queue processor owns all status transitions.
type Dispatcher struct {
	handlers map[domain.TaskType]HandlerFunc
	logger   *slog.Logger
}

// NewDispatcher builds the routing table over the given stage collaborators.
func NewDispatcher(
	discovery stage.TrendDiscoverer,
	content stage.ScriptGenerator,
	avatar stage.VideoSynthesizer,
	publisher stage.Publisher,
	logger *slog.Logger,
) *Dispatcher {
	d := &Dispatcher{
		handlers: make(map[domain.TaskType]HandlerFunc),
		logger:   logger.With("component", "dispatcher"),
	}

	d.handlers[domain.TaskTypeTrendDiscovery] = func(ctx context.Context, task *domain.Task) error {
		_, err := discovery.DiscoverTrends(ctx)
		if errors.Is(err, stage.ErrNoTrends) {
			// Nothing to discover is a normal outcome for a queued
			// discovery task.
			d.logger.Info("discovery task found no trends", "task_id", task.ID)
			return nil
		}
		return err
	}

	d.handlers[domain.TaskTypeScriptGeneration] = func(ctx context.Context, task *domain.Task) error {
		var payload ScriptGenerationPayload
		if err := task.UnmarshalData(&payload); err != nil {
			return fmt.Errorf("invalid script_generation payload: %w", err)
		}

		if payload.Regeneration {
			d.logger.Info("processing regeneration request",
				"task_id", task.ID,
				"topic", payload.Topic)
		}

		_, err := content.GenerateScripts(ctx, stage.ScriptRequest{
			TopicID:      payload.TopicID,
			Topic:        payload.Topic,
			Category:     payload.Category,
			Nuance:       payload.NuanceParams,
			Regeneration: payload.Regeneration,
		})
		return err
	}

	d.handlers[domain.TaskTypeVideoCreation] = func(ctx context.Context, task *domain.Task) error {
		var payload VideoCreationPayload
		if err := task.UnmarshalData(&payload); err != nil {
			return fmt.Errorf("invalid video_creation payload: %w", err)
		}

		avatarType := payload.AvatarType
		if avatarType == "" {
			avatarType = stage.AvatarFor(payload.Platform)
		}
		voiceID := payload.VoiceID
		if voiceID == "" {
			voiceID = stage.VoiceFor(payload.Platform)
		}

		_, err := avatar.SynthesizeVideo(ctx, stage.VideoRequest{
			ScriptID:       payload.ScriptID,
			Script:         payload.Script,
			AvatarType:     avatarType,
			VoiceID:        voiceID,
			Platform:       payload.Platform,
			Nuance:         stage.VideoNuanceFrom(payload.NuanceParams),
			TargetAudience: payload.TargetAudience,
		})
		return err
	}

	d.handlers[domain.TaskTypePublishing] = func(ctx context.Context, task *domain.Task) error {
		return publisher.Publish(ctx, task.TaskData)
	}

	return d
}

// Dispatch routes the task to its registered handler. Handler errors come
// back wrapped in a StageFailure; an unregistered type returns
// ErrUnknownTaskType.
func (d *Dispatcher) Dispatch(ctx context.Context, task *domain.Task) error {
	handler, ok := d.handlers[task.TaskType]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTaskType, task.TaskType)
	}

	d.logger.Debug("dispatching task",
		"task_id", task.ID,
		"task_type", task.TaskType)

	if err := handler(ctx, task); err != nil {
		return &StageFailure{TaskType: task.TaskType, Err: err}
	}

	return nil
}
