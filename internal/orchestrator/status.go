package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/trendcast/trendcast-api/internal/domain"
	"github.com/trendcast/trendcast-api/internal/store"
)

// statusWindow is how far back system status looks.
const statusWindow = 24 * time.Hour

// SystemStatus is the read-only snapshot the status endpoint serves.
type SystemStatus struct {
	QueueStatus []store.TaskStatusCount `json:"queue_status"`
	Metrics     []*domain.AgentMetric   `json:"metrics"`
	WindowStart time.Time               `json:"window_start"`
	LastUpdated time.Time               `json:"last_updated"`
}

// StatusService aggregates queue counts and agent metrics over the recent
// window.
type StatusService struct {
	tasks   store.TaskStore
	metrics store.MetricsStore
	logger  *slog.Logger
	now     func() time.Time
}

// NewStatusService creates a new StatusService
func NewStatusService(tasks store.TaskStore, metrics store.MetricsStore, logger *slog.Logger) *StatusService {
	return &StatusService{
		tasks:   tasks,
		metrics: metrics,
		logger:  logger.With("component", "status_service"),
		now:     time.Now,
	}
}

// SystemStatus builds the current snapshot.
func (s *StatusService) SystemStatus(ctx context.Context) (*SystemStatus, error) {
	now := s.now().UTC()
	since := now.Add(-statusWindow)

	counts, err := s.tasks.CountByStatusSince(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize queue: %w", err)
	}

	metrics, err := s.metrics.RecentMetrics(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent metrics: %w", err)
	}

	if counts == nil {
		counts = []store.TaskStatusCount{}
	}
	if metrics == nil {
		metrics = []*domain.AgentMetric{}
	}

	return &SystemStatus{
		QueueStatus: counts,
		Metrics:     metrics,
		WindowStart: since,
		LastUpdated: now,
	}, nil
}
