package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/trendcast/trendcast-api/internal/domain"
)

// ScriptStore defines read access to script records. The content
// generation collaborator owns writes to this table; the orchestrator
// only looks scripts up to chain the downstream stages.
// Version: 1.0
type ScriptStore interface {
	// GetByTopicAndPlatform retrieves the script generated for the given
	// topic and platform. Generation and storage are two separate steps,
	// so a script returned by the collaborator may not have a persisted
	// record yet; callers treat ErrScriptNotFound as a consistency
	// warning, not a failure.
	GetByTopicAndPlatform(ctx context.Context, topicID uuid.UUID, platform domain.Platform) (*domain.Script, error)
}
