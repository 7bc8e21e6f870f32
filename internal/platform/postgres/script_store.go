package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/trendcast/trendcast-api/internal/domain"
	"github.com/trendcast/trendcast-api/internal/store"
)

// PostgresScriptStore implements the store.ScriptStore interface using PostgreSQL.
// The content generation collaborator writes this table; the orchestrator
// only reads from it.
type PostgresScriptStore struct {
	db store.DBTX
}

// NewPostgresScriptStore creates a new PostgresScriptStore
func NewPostgresScriptStore(db store.DBTX) *PostgresScriptStore {
	return &PostgresScriptStore{
		db: db,
	}
}

// Ensure PostgresScriptStore implements store.ScriptStore
var _ store.ScriptStore = (*PostgresScriptStore)(nil)

// GetByTopicAndPlatform retrieves the script generated for the given topic
// and platform. Returns store.ErrScriptNotFound when no record exists yet.
func (s *PostgresScriptStore) GetByTopicAndPlatform(
	ctx context.Context,
	topicID uuid.UUID,
	platform domain.Platform,
) (*domain.Script, error) {
	query := `
		SELECT id, topic_id, platform, title, body, hashtags, call_to_action,
			target_audience, metadata, created_at
		FROM scripts
		WHERE topic_id = $1 AND platform = $2
		ORDER BY created_at DESC
		LIMIT 1
	`

	var (
		script         domain.Script
		hashtags       []byte
		callToAction   sql.NullString
		targetAudience sql.NullString
		metadata       []byte
	)

	err := s.db.QueryRowContext(ctx, query, topicID, platform).Scan(
		&script.ID,
		&script.TopicID,
		&script.Platform,
		&script.Title,
		&script.Body,
		&hashtags,
		&callToAction,
		&targetAudience,
		&metadata,
		&script.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, store.ErrScriptNotFound
		}
		return nil, MapError(err)
	}

	if len(hashtags) > 0 {
		if err := json.Unmarshal(hashtags, &script.Hashtags); err != nil {
			return nil, fmt.Errorf("failed to unmarshal script hashtags: %w", err)
		}
	}
	if len(metadata) > 0 {
		if err := json.Unmarshal(metadata, &script.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal script metadata: %w", err)
		}
	}
	script.CallToAction = callToAction.String
	script.TargetAudience = targetAudience.String

	return &script, nil
}
