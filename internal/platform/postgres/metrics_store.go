package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/trendcast/trendcast-api/internal/domain"
	"github.com/trendcast/trendcast-api/internal/platform/logger"
	"github.com/trendcast/trendcast-api/internal/store"
)

// PostgresMetricsStore implements the store.MetricsStore interface using PostgreSQL
type PostgresMetricsStore struct {
	db store.DBTX
}

// NewPostgresMetricsStore creates a new PostgresMetricsStore
func NewPostgresMetricsStore(db store.DBTX) *PostgresMetricsStore {
	return &PostgresMetricsStore{
		db: db,
	}
}

// Ensure PostgresMetricsStore implements store.MetricsStore
var _ store.MetricsStore = (*PostgresMetricsStore)(nil)

// Record saves a metric sample
func (s *PostgresMetricsStore) Record(ctx context.Context, metric *domain.AgentMetric) error {
	log := logger.FromContext(ctx)

	metadata, err := json.Marshal(metric.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metric metadata: %w", err)
	}

	query := `
		INSERT INTO agent_metrics (id, agent_name, metric_type, metric_value, metadata, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = s.db.ExecContext(ctx, query,
		metric.ID,
		metric.AgentName,
		metric.MetricType,
		metric.MetricValue,
		metadata,
		metric.RecordedAt,
	)
	if err != nil {
		log.Error("failed to record metric",
			"agent_name", metric.AgentName,
			"metric_type", metric.MetricType,
			"error", err)
		return MapError(err)
	}

	return nil
}

// RecentMetrics retrieves metrics recorded since the given instant, newest first
func (s *PostgresMetricsStore) RecentMetrics(
	ctx context.Context,
	since time.Time,
) ([]*domain.AgentMetric, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT id, agent_name, metric_type, metric_value, metadata, recorded_at
		FROM agent_metrics
		WHERE recorded_at >= $1
		ORDER BY recorded_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, since)
	if err != nil {
		log.Error("failed to query recent metrics", "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var metrics []*domain.AgentMetric
	for rows.Next() {
		var (
			metric   domain.AgentMetric
			metadata []byte
		)
		if err := rows.Scan(
			&metric.ID,
			&metric.AgentName,
			&metric.MetricType,
			&metric.MetricValue,
			&metadata,
			&metric.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan metric row: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &metric.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal metric metadata: %w", err)
			}
		}
		metrics = append(metrics, &metric)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating metric rows: %w", err)
	}

	return metrics, nil
}

// WithTx returns a new MetricsStore instance that uses the provided transaction
func (s *PostgresMetricsStore) WithTx(tx *sql.Tx) store.MetricsStore {
	return &PostgresMetricsStore{db: tx}
}
