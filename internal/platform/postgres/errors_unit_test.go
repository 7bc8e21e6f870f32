package postgres

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/trendcast/trendcast-api/internal/store"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{
			name:     "nil_error",
			input:    nil,
			expected: nil,
		},
		{
			name:     "no_rows",
			input:    sql.ErrNoRows,
			expected: store.ErrNotFound,
		},
		{
			name:     "unique_violation",
			input:    &pgconn.PgError{Code: "23505", Message: "duplicate key value"},
			expected: store.ErrDuplicate,
		},
		{
			name:     "foreign_key_violation",
			input:    &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"},
			expected: store.ErrInvalidEntity,
		},
		{
			name:     "check_violation",
			input:    &pgconn.PgError{Code: "23514", Message: "violates check constraint"},
			expected: store.ErrInvalidEntity,
		},
		{
			name:     "not_null_violation",
			input:    &pgconn.PgError{Code: "23502", Message: "null value in column"},
			expected: store.ErrInvalidEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mapped := MapError(tt.input)
			if tt.expected == nil {
				assert.NoError(t, mapped)
				return
			}
			assert.ErrorIs(t, mapped, tt.expected)
		})
	}
}

func TestMapErrorPassthrough(t *testing.T) {
	plain := errors.New("connection reset by peer")
	assert.Equal(t, plain, MapError(plain))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("plain error")))
	assert.False(t, IsUniqueViolation(nil))
}
