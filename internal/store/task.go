package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/trendcast/trendcast-api/internal/domain"
)

// TaskStatusCount is one row of the queue summary: how many tasks of a
// given type sit in a given status.
type TaskStatusCount struct {
	Status   domain.TaskStatus
	TaskType domain.TaskType
	Count    int
}

// TaskStore defines the interface for task queue persistence.
// Version: 1.0
type TaskStore interface {
	// Insert saves a new task to the store.
	// It handles domain validation internally.
	// Returns validation errors from the domain Task if data is invalid.
	Insert(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// QueryPending retrieves up to limit pending tasks ordered by
	// priority ascending (most urgent first), then created_at ascending
	// (earlier-created wins among equal priority).
	QueryPending(ctx context.Context, limit int) ([]*domain.Task, error)

	// Claim transitions a task from pending to processing, setting the
	// assigned agent and the started_at timestamp. The update is
	// conditional on the task still being pending, so a concurrent
	// processor that already claimed the task causes Claim to report
	// false rather than double-claiming.
	// Returns ErrTaskNotFound if no task with the ID exists at all.
	Claim(ctx context.Context, id uuid.UUID, agent string, startedAt time.Time) (bool, error)

	// MarkCompleted transitions a task to completed and sets completed_at.
	// Returns ErrTaskNotFound if the task does not exist.
	MarkCompleted(ctx context.Context, id uuid.UUID, completedAt time.Time) error

	// MarkFailed records a failed execution attempt: increments attempts,
	// stores the error message, and sets the given status (pending when
	// the task will be retried on a later sweep, failed when terminal).
	// Returns ErrTaskNotFound if the task does not exist.
	MarkFailed(ctx context.Context, id uuid.UUID, errorMessage string, status domain.TaskStatus) error

	// CountByStatusSince summarizes tasks created since the given instant,
	// grouped by status and task type. Used by status reporting only.
	CountByStatusSince(ctx context.Context, since time.Time) ([]TaskStatusCount, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}
