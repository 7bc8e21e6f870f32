package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/trendcast/trendcast-api/internal/domain"
	"github.com/trendcast/trendcast-api/internal/platform/logger"
	"github.com/trendcast/trendcast-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface using PostgreSQL
type PostgresTaskStore struct {
	db store.DBTX
}

// NewPostgresTaskStore creates a new PostgresTaskStore
func NewPostgresTaskStore(db store.DBTX) *PostgresTaskStore {
	return &PostgresTaskStore{
		db: db,
	}
}

// Ensure PostgresTaskStore implements store.TaskStore
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// Insert saves a new task to the database
func (s *PostgresTaskStore) Insert(ctx context.Context, task *domain.Task) error {
	log := logger.FromContext(ctx)

	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO tasks
			(id, task_type, task_data, priority, status, attempts, max_attempts, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.TaskType,
		[]byte(task.TaskData),
		task.Priority,
		task.Status,
		task.Attempts,
		task.MaxAttempts,
		task.CreatedAt,
	)
	if err != nil {
		log.Error("failed to insert task",
			"task_id", task.ID,
			"task_type", task.TaskType,
			"error", err)
		return MapError(err)
	}

	return nil
}

// GetByID retrieves a task by its unique ID
func (s *PostgresTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	query := selectTaskColumns + ` FROM tasks WHERE id = $1`

	row := s.db.QueryRowContext(ctx, query, id)
	task, err := scanTask(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrTaskNotFound
		}
		return nil, MapError(err)
	}

	return task, nil
}

// QueryPending retrieves up to limit pending tasks ordered by priority
// ascending, then created_at ascending.
func (s *PostgresTaskStore) QueryPending(ctx context.Context, limit int) ([]*domain.Task, error) {
	log := logger.FromContext(ctx)

	query := selectTaskColumns + `
		FROM tasks
		WHERE status = $1
		ORDER BY priority ASC, created_at ASC
		LIMIT $2
	`

	rows, err := s.db.QueryContext(ctx, query, domain.TaskStatusPending, limit)
	if err != nil {
		log.Error("failed to query pending tasks", "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", "error", err)
			return nil, fmt.Errorf("failed to scan task row: %w", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", "error", err)
		return nil, fmt.Errorf("error iterating task rows: %w", err)
	}

	return tasks, nil
}

// Claim transitions a task from pending to processing. The WHERE clause
// conditions on the current status, so a task already claimed by another
// processor yields zero affected rows and Claim reports false.
func (s *PostgresTaskStore) Claim(
	ctx context.Context,
	id uuid.UUID,
	agent string,
	startedAt time.Time,
) (bool, error) {
	log := logger.FromContext(ctx)

	query := `
		UPDATE tasks
		SET status = $1, assigned_agent = $2, started_at = $3
		WHERE id = $4 AND status = $5
	`

	result, err := s.db.ExecContext(ctx, query,
		domain.TaskStatusProcessing,
		agent,
		startedAt,
		id,
		domain.TaskStatusPending,
	)
	if err != nil {
		log.Error("failed to claim task", "task_id", id, "error", err)
		return false, MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// Either the task is gone or someone else claimed it first.
		// Distinguish the two so callers can log the right thing.
		var exists bool
		err := s.db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM tasks WHERE id = $1)`, id).Scan(&exists)
		if err != nil {
			return false, MapError(err)
		}
		if !exists {
			return false, store.ErrTaskNotFound
		}
		return false, nil
	}

	return true, nil
}

// MarkCompleted transitions a task to completed and sets completed_at
func (s *PostgresTaskStore) MarkCompleted(
	ctx context.Context,
	id uuid.UUID,
	completedAt time.Time,
) error {
	query := `
		UPDATE tasks
		SET status = $1, completed_at = $2, error_message = NULL
		WHERE id = $3
	`

	return s.execExpectingRow(ctx, query, domain.TaskStatusCompleted, completedAt, id)
}

// MarkFailed records a failed attempt: increments attempts, stores the
// error message, and sets the given status (pending for a retry, failed
// when terminal).
func (s *PostgresTaskStore) MarkFailed(
	ctx context.Context,
	id uuid.UUID,
	errorMessage string,
	status domain.TaskStatus,
) error {
	query := `
		UPDATE tasks
		SET status = $1, error_message = $2, attempts = attempts + 1
		WHERE id = $3
	`

	return s.execExpectingRow(ctx, query, status, errorMessage, id)
}

// CountByStatusSince summarizes tasks created since the given instant
func (s *PostgresTaskStore) CountByStatusSince(
	ctx context.Context,
	since time.Time,
) ([]store.TaskStatusCount, error) {
	log := logger.FromContext(ctx)

	query := `
		SELECT status, task_type, COUNT(*)
		FROM tasks
		WHERE created_at >= $1
		GROUP BY status, task_type
		ORDER BY status, task_type
	`

	rows, err := s.db.QueryContext(ctx, query, since)
	if err != nil {
		log.Error("failed to count tasks by status", "error", err)
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var counts []store.TaskStatusCount
	for rows.Next() {
		var c store.TaskStatusCount
		if err := rows.Scan(&c.Status, &c.TaskType, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan task count row: %w", err)
		}
		counts = append(counts, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating task count rows: %w", err)
	}

	return counts, nil
}

// WithTx returns a new TaskStore instance that uses the provided transaction
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{db: tx}
}

// execExpectingRow runs an update that must touch exactly one task
func (s *PostgresTaskStore) execExpectingRow(ctx context.Context, query string, args ...any) error {
	log := logger.FromContext(ctx)

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update task", "error", err)
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return store.ErrTaskNotFound
	}

	return nil
}

// selectTaskColumns is the column list every task read uses, in the
// order scanTask expects.
const selectTaskColumns = `
	SELECT id, task_type, task_data, priority, status, attempts, max_attempts,
		assigned_agent, error_message, created_at, started_at, completed_at`

// rowScanner abstracts *sql.Row and *sql.Rows for scanTask
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask maps one result row onto a domain Task
func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task          domain.Task
		taskData      []byte
		assignedAgent sql.NullString
		errorMessage  sql.NullString
		startedAt     sql.NullTime
		completedAt   sql.NullTime
	)

	err := row.Scan(
		&task.ID,
		&task.TaskType,
		&taskData,
		&task.Priority,
		&task.Status,
		&task.Attempts,
		&task.MaxAttempts,
		&assignedAgent,
		&errorMessage,
		&task.CreatedAt,
		&startedAt,
		&completedAt,
	)
	if err != nil {
		return nil, err
	}

	task.TaskData = taskData
	task.AssignedAgent = assignedAgent.String
	task.ErrorMessage = errorMessage.String
	if startedAt.Valid {
		task.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		task.CompletedAt = &completedAt.Time
	}

	return &task, nil
}
