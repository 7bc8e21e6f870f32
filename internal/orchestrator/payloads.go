package orchestrator

import (
	"time"

	"github.com/google/uuid"
	"github.com/trendcast/trendcast-api/internal/domain"
)

// ScriptGenerationPayload is the task_data shape for script_generation
// tasks. Regeneration tasks carry the caller's nuance bag verbatim.
type ScriptGenerationPayload struct {
	TopicID      uuid.UUID      `json:"topic_id"`
	Topic        string         `json:"topic"`
	Category     string         `json:"category"`
	NuanceParams map[string]any `json:"nuance_params,omitempty"`
	Regeneration bool           `json:"regeneration,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}

// VideoCreationPayload is the task_data shape for video_creation tasks.
// AvatarType and VoiceID are optional; the dispatcher falls back to the
// platform casting defaults when they are empty.
type VideoCreationPayload struct {
	ScriptID       uuid.UUID       `json:"script_id"`
	Script         string          `json:"script"`
	AvatarType     string          `json:"avatar_type,omitempty"`
	VoiceID        string          `json:"voice_id,omitempty"`
	Platform       domain.Platform `json:"platform"`
	NuanceParams   map[string]any  `json:"nuance_params,omitempty"`
	TargetAudience string          `json:"target_audience,omitempty"`
}

// PublishingPayload is the task_data shape for publishing tasks, written
// by the pipeline when it schedules a finished video.
type PublishingPayload struct {
	VideoID       uuid.UUID       `json:"video_id"`
	VideoURL      string          `json:"video_url"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Hashtags      []string        `json:"hashtags,omitempty"`
	Platform      domain.Platform `json:"platform"`
	ScheduledTime time.Time       `json:"scheduled_time"`
	ThumbnailURL  string          `json:"thumbnail_url,omitempty"`
}
