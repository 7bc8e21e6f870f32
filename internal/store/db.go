package store

import (
	"context"
	"database/sql"
)

// DBTX abstracts the database handle a store runs on. Both *sql.DB and
// *sql.Tx satisfy it, so the same store code serves direct calls and the
// transactional enqueue path. Stores issue plain parameterized queries;
// prepared statements are not part of the contract.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
