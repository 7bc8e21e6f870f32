package stage

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/trendcast/trendcast-api/internal/domain"
)

// TrendDiscoverer finds candidate topics for content creation.
// Implementations own trend persistence and status; the orchestrator only
// ranks and sequences what they return.
type TrendDiscoverer interface {
	// DiscoverTrends returns the current crop of trending topics, or
	// ErrNoTrends when the sources yield nothing usable.
	DiscoverTrends(ctx context.Context) ([]*domain.Trend, error)
}

// ScriptRequest carries everything script generation needs for one topic.
// Nuance holds caller-supplied generation parameters; on regeneration it is
// passed through verbatim from the API request.
type ScriptRequest struct {
	TopicID      uuid.UUID
	Topic        string
	Category     string
	Nuance       map[string]any
	Regeneration bool
}

// ScriptGenerator produces platform-specific scripts for a topic.
// Implementations persist the scripts they generate; the orchestrator reads
// them back through the script store when chaining stages.
type ScriptGenerator interface {
	GenerateScripts(ctx context.Context, req ScriptRequest) ([]*domain.Script, error)
}

// VideoRequest describes one avatar synthesis job.
type VideoRequest struct {
	ScriptID       uuid.UUID
	Script         string
	AvatarType     string
	VoiceID        string
	Platform       domain.Platform
	Nuance         VideoNuance
	TargetAudience string
}

// VideoResult is what synthesis hands to post-production.
type VideoResult struct {
	VideoURL string `json:"video_url"`
	AudioURL string `json:"audio_url,omitempty"`
}

// VideoSynthesizer renders an avatar video with voiceover for a script.
type VideoSynthesizer interface {
	SynthesizeVideo(ctx context.Context, req VideoRequest) (*VideoResult, error)
}

// EditRequest describes one post-production job.
type EditRequest struct {
	VideoID  uuid.UUID
	VideoURL string
	AudioURL string
	Script   string
	Platform domain.Platform
	Style    string
	Nuance   EditNuance
}

// EditResult carries the finished cut and its thumbnail candidates.
type EditResult struct {
	EditedVideoURL    string   `json:"edited_video_url"`
	ThumbnailVariants []string `json:"thumbnail_variants,omitempty"`
}

// PostProducer edits a raw synthesis result into a publishable cut.
type PostProducer interface {
	ProcessVideo(ctx context.Context, req EditRequest) (*EditResult, error)
}

// TimeSlot is a wall-clock posting slot, interpreted in the scheduler's
// local time zone.
type TimeSlot struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// ScheduleRequest records publishing intent for one finished video.
type ScheduleRequest struct {
	VideoID       uuid.UUID       `json:"video_id"`
	VideoURL      string          `json:"video_url"`
	Title         string          `json:"title"`
	Description   string          `json:"description,omitempty"`
	Hashtags      []string        `json:"hashtags,omitempty"`
	Platform      domain.Platform `json:"platform"`
	ScheduledTime time.Time       `json:"scheduled_time"`
	ThumbnailURL  string          `json:"thumbnail_url,omitempty"`
	SEOKeywords   []string        `json:"seo_keywords,omitempty"`
	CallToAction  string          `json:"call_to_action,omitempty"`
}

// Publisher owns posting-time knowledge, scheduling, and the final publish
// step executed from the queue.
type Publisher interface {
	// OptimalPostingTimes returns the platform's posting slots ordered
	// earliest first. The orchestrator picks the next one after now.
	OptimalPostingTimes(ctx context.Context, platform domain.Platform) ([]TimeSlot, error)

	// ScheduleContent records the intent to publish at the given time.
	ScheduleContent(ctx context.Context, req ScheduleRequest) error

	// Publish executes a queued publishing task. The payload is the task's
	// stored task_data, produced by a prior ScheduleContent.
	Publish(ctx context.Context, payload json.RawMessage) error
}
