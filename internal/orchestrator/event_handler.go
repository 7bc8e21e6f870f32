package orchestrator

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/trendcast/trendcast-api/internal/domain"
	"github.com/trendcast/trendcast-api/internal/events"
	"github.com/trendcast/trendcast-api/internal/store"
)

// TaskEnqueueHandler consumes TaskRequestEvents by inserting the requested
// task into the queue. The event ID becomes the task ID, so emitters can
// hand it straight back to callers for status polling. Task insert and the
// enqueue metric commit in one transaction.
type TaskEnqueueHandler struct {
	tasks   store.TaskStore
	metrics store.MetricsStore
	logger  *slog.Logger
	runTx   func(ctx context.Context, fn store.TxFn) error
}

// NewTaskEnqueueHandler creates a handler writing through the given stores.
func NewTaskEnqueueHandler(
	db *sql.DB,
	tasks store.TaskStore,
	metrics store.MetricsStore,
	logger *slog.Logger,
) *TaskEnqueueHandler {
	return &TaskEnqueueHandler{
		tasks:   tasks,
		metrics: metrics,
		logger:  logger.With("component", "task_enqueue_handler"),
		runTx: func(ctx context.Context, fn store.TxFn) error {
			return store.RunInTransaction(ctx, db, fn)
		},
	}
}

// HandleEvent builds a pending task from the event and persists it.
func (h *TaskEnqueueHandler) HandleEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	task := &domain.Task{
		ID:          event.ID,
		TaskType:    event.Type,
		TaskData:    event.Payload,
		Priority:    event.Priority,
		Status:      domain.TaskStatusPending,
		MaxAttempts: domain.DefaultMaxAttempts,
		CreatedAt:   event.CreatedAt,
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now().UTC()
	}

	if err := task.Validate(); err != nil {
		h.logger.Error("rejecting invalid task request",
			"event_id", event.ID,
			"task_type", event.Type,
			"error", err)
		return fmt.Errorf("invalid task request: %w", err)
	}

	err := h.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := h.tasks.WithTx(tx).Insert(ctx, task); err != nil {
			return err
		}

		metric := domain.NewAgentMetric(AgentName, "task_enqueued", 1)
		metric.Metadata = map[string]any{"task_type": string(task.TaskType)}
		return h.metrics.WithTx(tx).Record(ctx, metric)
	})
	if err != nil {
		h.logger.Error("failed to enqueue task",
			"task_id", task.ID,
			"task_type", task.TaskType,
			"error", err)
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	h.logger.Info("task enqueued",
		"task_id", task.ID,
		"task_type", task.TaskType,
		"priority", task.Priority)
	return nil
}

// Ensure TaskEnqueueHandler implements events.EventHandler
var _ events.EventHandler = (*TaskEnqueueHandler)(nil)
