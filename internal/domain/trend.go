package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// TrendStatus tracks how far a discovered trend has moved through the
// pipeline. The discovery collaborator owns these transitions; the
// orchestrator only reads them.
type TrendStatus string

// Possible trend status values
const (
	TrendStatusDiscovered TrendStatus = "discovered"
	TrendStatusSelected   TrendStatus = "selected"
	TrendStatusProcessed  TrendStatus = "processed"
)

// Common validation errors for Trend
var (
	ErrEmptyTrendID       = errors.New("trend ID cannot be empty")
	ErrEmptyTrendTopic    = errors.New("trend topic cannot be empty")
	ErrInvalidTrendStatus = errors.New("invalid trend status")
)

// Trend is a trending topic surfaced by the discovery collaborator.
// Score, source, and metadata are set once at discovery time; the
// orchestrator ranks trends by score and never mutates them.
type Trend struct {
	ID         uuid.UUID      `json:"id"`
	Topic      string         `json:"topic"`
	Category   string         `json:"category"`
	TrendScore float64        `json:"trend_score"`
	Source     string         `json:"source"`
	Region     string         `json:"region"`
	Keywords   []string       `json:"keywords,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	Status     TrendStatus    `json:"status"`
	CreatedAt  time.Time      `json:"created_at"`
}

// NewTrend creates a discovered Trend with the given topic, category,
// score, and source. Returns an error if validation fails.
func NewTrend(topic, category string, score float64, source string) (*Trend, error) {
	trend := &Trend{
		ID:         uuid.New(),
		Topic:      topic,
		Category:   category,
		TrendScore: score,
		Source:     source,
		Status:     TrendStatusDiscovered,
		CreatedAt:  time.Now().UTC(),
	}

	if err := trend.Validate(); err != nil {
		return nil, err
	}

	return trend, nil
}

// Validate checks if the Trend has valid data.
func (tr *Trend) Validate() error {
	if tr.ID == uuid.Nil {
		return ErrEmptyTrendID
	}

	if tr.Topic == "" {
		return ErrEmptyTrendTopic
	}

	if !isValidTrendStatus(tr.Status) {
		return ErrInvalidTrendStatus
	}

	return nil
}

func isValidTrendStatus(status TrendStatus) bool {
	switch status {
	case TrendStatusDiscovered, TrendStatusSelected, TrendStatusProcessed:
		return true
	default:
		return false
	}
}
