package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/trendcast/trendcast-api/internal/domain"
)

// MetricsStore defines the interface for agent metric persistence.
// The orchestrator records counters as it works; status reporting reads
// them back over a recent window.
// Version: 1.0
type MetricsStore interface {
	// Record saves a metric sample.
	Record(ctx context.Context, metric *domain.AgentMetric) error

	// RecentMetrics retrieves metrics recorded since the given instant,
	// newest first.
	RecentMetrics(ctx context.Context, since time.Time) ([]*domain.AgentMetric, error)

	// WithTx returns a new MetricsStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) MetricsStore
}
