package stage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/trendcast/trendcast-api/internal/domain"
)

// defaultAgentTimeout bounds a single agent call. Synthesis and editing are
// slow; the agents themselves are expected to respond quickly and run the
// heavy work before returning.
const defaultAgentTimeout = 5 * time.Minute

// agentClient is the shared HTTP plumbing behind the stage clients. Each
// stage agent exposes a small JSON-over-HTTP surface; all calls POST a JSON
// body and decode a JSON response.
type agentClient struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

func newAgentClient(baseURL string, httpClient *http.Client, logger *slog.Logger, component string) (*agentClient, error) {
	if baseURL == "" {
		return nil, errors.New("agent base URL cannot be empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid agent base URL %q: %w", baseURL, err)
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultAgentTimeout}
	}
	return &agentClient{
		baseURL: baseURL,
		client:  httpClient,
		logger:  logger.With("component", component),
	}, nil
}

// postJSON sends body to path and decodes the response into out (when out is
// non-nil). Non-2xx responses map to ErrStageUnavailable so callers can
// treat agent outages uniformly.
func (c *agentClient) postJSON(ctx context.Context, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("failed to encode request for %s: %w", path, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to build request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrStageUnavailable, path, err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s returned status %d", ErrStageUnavailable, path, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}
	return nil
}

// TrendAgentClient talks to the trend discovery agent.
type TrendAgentClient struct {
	*agentClient
}

// NewTrendAgentClient creates a TrendDiscoverer backed by the discovery
// agent at baseURL. A nil httpClient gets a default with a long timeout.
func NewTrendAgentClient(baseURL string, httpClient *http.Client, logger *slog.Logger) (*TrendAgentClient, error) {
	c, err := newAgentClient(baseURL, httpClient, logger, "trend_agent_client")
	if err != nil {
		return nil, err
	}
	return &TrendAgentClient{agentClient: c}, nil
}

func (c *TrendAgentClient) DiscoverTrends(ctx context.Context) ([]*domain.Trend, error) {
	var resp struct {
		Trends []*domain.Trend `json:"trends"`
	}
	if err := c.postJSON(ctx, "/discover", nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Trends) == 0 {
		return nil, ErrNoTrends
	}
	c.logger.Debug("discovered trends", "count", len(resp.Trends))
	return resp.Trends, nil
}

// ScriptAgentClient talks to the content generation agent.
type ScriptAgentClient struct {
	*agentClient
}

// NewScriptAgentClient creates a ScriptGenerator backed by the content
// generation agent at baseURL.
func NewScriptAgentClient(baseURL string, httpClient *http.Client, logger *slog.Logger) (*ScriptAgentClient, error) {
	c, err := newAgentClient(baseURL, httpClient, logger, "script_agent_client")
	if err != nil {
		return nil, err
	}
	return &ScriptAgentClient{agentClient: c}, nil
}

func (c *ScriptAgentClient) GenerateScripts(ctx context.Context, req ScriptRequest) ([]*domain.Script, error) {
	body := struct {
		TopicID      string         `json:"topic_id"`
		Topic        string         `json:"topic"`
		Category     string         `json:"category"`
		NuanceParams map[string]any `json:"nuance_params,omitempty"`
		Regeneration bool           `json:"regeneration,omitempty"`
	}{
		TopicID:      req.TopicID.String(),
		Topic:        req.Topic,
		Category:     req.Category,
		NuanceParams: req.Nuance,
		Regeneration: req.Regeneration,
	}
	var resp struct {
		Scripts []*domain.Script `json:"scripts"`
	}
	if err := c.postJSON(ctx, "/generate", body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Scripts) == 0 {
		return nil, ErrNoScripts
	}
	return resp.Scripts, nil
}

// AvatarAgentClient talks to the avatar and voice synthesis agent.
type AvatarAgentClient struct {
	*agentClient
}

// NewAvatarAgentClient creates a VideoSynthesizer backed by the synthesis
// agent at baseURL.
func NewAvatarAgentClient(baseURL string, httpClient *http.Client, logger *slog.Logger) (*AvatarAgentClient, error) {
	c, err := newAgentClient(baseURL, httpClient, logger, "avatar_agent_client")
	if err != nil {
		return nil, err
	}
	return &AvatarAgentClient{agentClient: c}, nil
}

func (c *AvatarAgentClient) SynthesizeVideo(ctx context.Context, req VideoRequest) (*VideoResult, error) {
	body := struct {
		ScriptID       string          `json:"script_id"`
		Script         string          `json:"script"`
		AvatarType     string          `json:"avatar_type"`
		VoiceID        string          `json:"voice_id"`
		Platform       domain.Platform `json:"platform"`
		Nuance         VideoNuance     `json:"nuance"`
		TargetAudience string          `json:"target_audience,omitempty"`
	}{
		ScriptID:       req.ScriptID.String(),
		Script:         req.Script,
		AvatarType:     req.AvatarType,
		VoiceID:        req.VoiceID,
		Platform:       req.Platform,
		Nuance:         req.Nuance,
		TargetAudience: req.TargetAudience,
	}
	var resp VideoResult
	if err := c.postJSON(ctx, "/synthesize", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EditAgentClient talks to the post-production agent.
type EditAgentClient struct {
	*agentClient
}

// NewEditAgentClient creates a PostProducer backed by the post-production
// agent at baseURL.
func NewEditAgentClient(baseURL string, httpClient *http.Client, logger *slog.Logger) (*EditAgentClient, error) {
	c, err := newAgentClient(baseURL, httpClient, logger, "edit_agent_client")
	if err != nil {
		return nil, err
	}
	return &EditAgentClient{agentClient: c}, nil
}

func (c *EditAgentClient) ProcessVideo(ctx context.Context, req EditRequest) (*EditResult, error) {
	body := struct {
		VideoID  string          `json:"video_id"`
		VideoURL string          `json:"video_url"`
		AudioURL string          `json:"audio_url,omitempty"`
		Script   string          `json:"script"`
		Platform domain.Platform `json:"platform"`
		Style    string          `json:"style"`
		Nuance   EditNuance      `json:"nuance"`
	}{
		VideoID:  req.VideoID.String(),
		VideoURL: req.VideoURL,
		AudioURL: req.AudioURL,
		Script:   req.Script,
		Platform: req.Platform,
		Style:    req.Style,
		Nuance:   req.Nuance,
	}
	var resp EditResult
	if err := c.postJSON(ctx, "/edit", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PublishAgentClient talks to the publishing agent.
type PublishAgentClient struct {
	*agentClient
}

// NewPublishAgentClient creates a Publisher backed by the publishing agent
// at baseURL.
func NewPublishAgentClient(baseURL string, httpClient *http.Client, logger *slog.Logger) (*PublishAgentClient, error) {
	c, err := newAgentClient(baseURL, httpClient, logger, "publish_agent_client")
	if err != nil {
		return nil, err
	}
	return &PublishAgentClient{agentClient: c}, nil
}

func (c *PublishAgentClient) OptimalPostingTimes(ctx context.Context, platform domain.Platform) ([]TimeSlot, error) {
	body := struct {
		Platform domain.Platform `json:"platform"`
	}{Platform: platform}
	var resp struct {
		Slots []TimeSlot `json:"slots"`
	}
	if err := c.postJSON(ctx, "/posting-times", body, &resp); err != nil {
		return nil, err
	}
	return resp.Slots, nil
}

func (c *PublishAgentClient) ScheduleContent(ctx context.Context, req ScheduleRequest) error {
	return c.postJSON(ctx, "/schedule", req, nil)
}

func (c *PublishAgentClient) Publish(ctx context.Context, payload json.RawMessage) error {
	return c.postJSON(ctx, "/publish", payload, nil)
}
