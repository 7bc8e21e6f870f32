package domain

import (
	"time"

	"github.com/google/uuid"
)

// AgentMetric is a single counter sample recorded against a pipeline
// agent, used by the status endpoint to summarize recent activity.
type AgentMetric struct {
	ID          uuid.UUID      `json:"id"`
	AgentName   string         `json:"agent_name"`
	MetricType  string         `json:"metric_type"`
	MetricValue float64        `json:"metric_value"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	RecordedAt  time.Time      `json:"recorded_at"`
}

// NewAgentMetric creates a metric sample recorded now.
func NewAgentMetric(agentName, metricType string, value float64) *AgentMetric {
	return &AgentMetric{
		ID:          uuid.New(),
		AgentName:   agentName,
		MetricType:  metricType,
		MetricValue: value,
		RecordedAt:  time.Now().UTC(),
	}
}
