package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/trendcast/trendcast-api/internal/domain"
	"github.com/trendcast/trendcast-api/internal/redact"
	"github.com/trendcast/trendcast-api/internal/store"
)

// QueueProcessorConfig holds configuration for the queue processor
type QueueProcessorConfig struct {
	// BatchSize caps how many pending tasks one sweep picks up
	BatchSize int

	// AgentName is recorded as assigned_agent on claimed tasks
	AgentName string
}

// DefaultQueueProcessorConfig returns a QueueProcessorConfig with
// reasonable defaults
func DefaultQueueProcessorConfig() QueueProcessorConfig {
	return QueueProcessorConfig{
		BatchSize: 10,
		AgentName: AgentName,
	}
}

// QueueProcessor sweeps the persistent task queue: it claims pending tasks
// in priority order, dispatches them, and records the outcome. Failed
// tasks go back to pending until their attempts run out; the backoff
// between attempts is simply the poll interval.
type QueueProcessor struct {
	tasks      store.TaskStore
	metrics    store.MetricsStore
	dispatcher *Dispatcher
	config     QueueProcessorConfig
	logger     *slog.Logger
	now        func() time.Time
}

// NewQueueProcessor creates a new QueueProcessor
func NewQueueProcessor(
	tasks store.TaskStore,
	metrics store.MetricsStore,
	dispatcher *Dispatcher,
	config QueueProcessorConfig,
	logger *slog.Logger,
) *QueueProcessor {
	if config.BatchSize <= 0 {
		config.BatchSize = 10
	}
	if config.AgentName == "" {
		config.AgentName = AgentName
	}

	return &QueueProcessor{
		tasks:      tasks,
		metrics:    metrics,
		dispatcher: dispatcher,
		config:     config,
		logger:     logger.With("component", "queue_processor"),
		now:        time.Now,
	}
}

// ProcessQueueOnce runs a single sweep over the pending queue. One task's
// execution failure never aborts the sweep; only task store failures
// surface to the caller, and even those let the remaining batch finish
// first.
func (p *QueueProcessor) ProcessQueueOnce(ctx context.Context) error {
	batch, err := p.tasks.QueryPending(ctx, p.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to query pending tasks: %w", err)
	}

	if len(batch) == 0 {
		return nil
	}

	p.logger.Info("processing queued tasks", "count", len(batch))

	var firstStoreErr error
	for _, task := range batch {
		if err := p.processOne(ctx, task); err != nil && firstStoreErr == nil {
			firstStoreErr = err
		}
	}

	return firstStoreErr
}

// processOne claims and executes a single task. The returned error is
// always a task store error; execution failures are absorbed into the
// task's own bookkeeping.
func (p *QueueProcessor) processOne(ctx context.Context, task *domain.Task) error {
	log := p.logger.With(
		"task_id", task.ID,
		"task_type", task.TaskType,
	)

	claimed, err := p.tasks.Claim(ctx, task.ID, p.config.AgentName, p.now().UTC())
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task disappeared before claim")
			return nil
		}
		log.Error("failed to claim task", "error", err)
		return err
	}
	if !claimed {
		// Another processor got there first; the sweep moves on.
		log.Debug("task already claimed, skipping")
		return nil
	}

	execErr := p.dispatcher.Dispatch(ctx, task)
	if execErr == nil {
		if err := p.tasks.MarkCompleted(ctx, task.ID, p.now().UTC()); err != nil {
			log.Error("failed to mark task completed", "error", err)
			return err
		}
		log.Info("task completed")
		p.recordMetric(ctx, "task_completed", task.TaskType)
		return nil
	}

	message := redact.Error(execErr)
	nextStatus := domain.TaskStatusPending
	if task.Attempts+1 >= task.MaxAttempts {
		nextStatus = domain.TaskStatusFailed
	}

	log.Error("task execution failed",
		"error", execErr,
		"attempt", task.Attempts+1,
		"max_attempts", task.MaxAttempts,
		"next_status", nextStatus)

	if err := p.tasks.MarkFailed(ctx, task.ID, message, nextStatus); err != nil {
		log.Error("failed to record task failure", "error", err)
		return err
	}

	if nextStatus == domain.TaskStatusFailed {
		p.recordMetric(ctx, "task_failed", task.TaskType)
	} else {
		p.recordMetric(ctx, "task_retried", task.TaskType)
	}

	return nil
}

// recordMetric writes a counter sample; metric failures are logged and
// otherwise ignored so accounting never blocks the queue.
func (p *QueueProcessor) recordMetric(ctx context.Context, metricType string, taskType domain.TaskType) {
	metric := domain.NewAgentMetric(p.config.AgentName, metricType, 1)
	metric.Metadata = map[string]any{"task_type": string(taskType)}

	if err := p.metrics.Record(ctx, metric); err != nil {
		p.logger.Warn("failed to record metric",
			"metric_type", metricType,
			"error", err)
	}
}
