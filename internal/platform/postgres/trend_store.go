package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/trendcast/trendcast-api/internal/domain"
	"github.com/trendcast/trendcast-api/internal/platform/logger"
	"github.com/trendcast/trendcast-api/internal/store"
)

// PostgresTrendStore implements the store.TrendStore interface using PostgreSQL
type PostgresTrendStore struct {
	db store.DBTX
}

// NewPostgresTrendStore creates a new PostgresTrendStore
func NewPostgresTrendStore(db store.DBTX) *PostgresTrendStore {
	return &PostgresTrendStore{
		db: db,
	}
}

// Ensure PostgresTrendStore implements store.TrendStore
var _ store.TrendStore = (*PostgresTrendStore)(nil)

// Insert saves a discovered trend for audit
func (s *PostgresTrendStore) Insert(ctx context.Context, trend *domain.Trend) error {
	log := logger.FromContext(ctx)

	if err := trend.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	keywords, err := json.Marshal(trend.Keywords)
	if err != nil {
		return fmt.Errorf("failed to marshal trend keywords: %w", err)
	}
	metadata, err := json.Marshal(trend.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal trend metadata: %w", err)
	}

	query := `
		INSERT INTO trends
			(id, topic, category, trend_score, source, region, keywords, metadata, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = s.db.ExecContext(ctx, query,
		trend.ID,
		trend.Topic,
		trend.Category,
		trend.TrendScore,
		trend.Source,
		trend.Region,
		keywords,
		metadata,
		trend.Status,
		trend.CreatedAt,
	)
	if err != nil {
		log.Error("failed to insert trend",
			"trend_id", trend.ID,
			"topic", trend.Topic,
			"error", err)
		return MapError(err)
	}

	return nil
}

// UpdateStatus advances a trend's lifecycle status
func (s *PostgresTrendStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.TrendStatus,
) error {
	log := logger.FromContext(ctx)

	query := `UPDATE trends SET status = $1 WHERE id = $2`

	result, err := s.db.ExecContext(ctx, query, status, id)
	if err != nil {
		log.Error("failed to update trend status",
			"trend_id", id,
			"status", status,
			"error", err)
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrTrendNotFound
	}

	return nil
}
