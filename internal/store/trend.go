package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/trendcast/trendcast-api/internal/domain"
)

// TrendStore defines the interface for trend persistence. The pipeline
// writes discovered trends for audit and advances their status as it
// selects and finishes them; nothing in the core ever mutates a trend's
// topic, score, or metadata.
// Version: 1.0
type TrendStore interface {
	// Insert saves a discovered trend to the store.
	// Returns validation errors from the domain Trend if data is invalid.
	Insert(ctx context.Context, trend *domain.Trend) error

	// UpdateStatus advances a trend's lifecycle status
	// (discovered -> selected -> processed).
	// Returns ErrTrendNotFound if the trend does not exist.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TrendStatus) error
}
