package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Platform is a publishing destination for generated content
type Platform string

// The fixed platform set content is generated for
const (
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformInstagram Platform = "instagram"
	PlatformLinkedIn  Platform = "linkedin"
)

// Platforms returns the ordered list of supported platforms.
// The slice is freshly allocated so callers can't mutate the set.
func Platforms() []Platform {
	return []Platform{PlatformYouTube, PlatformTikTok, PlatformInstagram, PlatformLinkedIn}
}

// Common validation errors for Script
var (
	ErrEmptyScriptID      = errors.New("script ID cannot be empty")
	ErrEmptyScriptTopicID = errors.New("script topic ID cannot be empty")
	ErrEmptyScriptBody    = errors.New("script body cannot be empty")
	ErrInvalidPlatform    = errors.New("invalid platform")
)

// ScriptMetadata carries per-script tuning recorded by the content
// generation collaborator. NuanceParams is opaque to the orchestrator;
// it is forwarded verbatim to the synthesis and post-production stages.
type ScriptMetadata struct {
	NuanceParams map[string]any `json:"nuanceParams,omitempty"`
	KeyThemes    []string       `json:"keyThemes,omitempty"`
	SEOKeywords  []string       `json:"seoKeywords,omitempty"`
}

// Script is a platform-specific script produced for a trend. The content
// generation collaborator writes these records; the orchestrator reads
// id, platform, and metadata to chain the downstream stages.
type Script struct {
	ID             uuid.UUID      `json:"id"`
	TopicID        uuid.UUID      `json:"topic_id"`
	Platform       Platform       `json:"platform"`
	Title          string         `json:"title"`
	Body           string         `json:"body"`
	Hashtags       []string       `json:"hashtags,omitempty"`
	CallToAction   string         `json:"call_to_action,omitempty"`
	TargetAudience string         `json:"target_audience,omitempty"`
	Metadata       ScriptMetadata `json:"metadata"`
	CreatedAt      time.Time      `json:"created_at"`
}

// Validate checks if the Script has valid data.
func (s *Script) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptyScriptID
	}

	if s.TopicID == uuid.Nil {
		return ErrEmptyScriptTopicID
	}

	if s.Body == "" {
		return ErrEmptyScriptBody
	}

	if !IsValidPlatform(s.Platform) {
		return ErrInvalidPlatform
	}

	return nil
}

// IsValidPlatform checks if the given platform is part of the supported set.
func IsValidPlatform(platform Platform) bool {
	switch platform {
	case PlatformYouTube, PlatformTikTok, PlatformInstagram, PlatformLinkedIn:
		return true
	default:
		return false
	}
}
