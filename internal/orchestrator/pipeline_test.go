package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trendcast/trendcast-api/internal/domain"
	"github.com/trendcast/trendcast-api/internal/stage"
	"github.com/trendcast/trendcast-api/internal/store"
)

type pipelineFixture struct {
	discovery  *mockDiscovery
	content    *mockContent
	avatar     *mockAvatar
	production *mockProduction
	publisher  *mockPublisher
	trends     *mockTrendStore
	scripts    *mockScriptStore
	tasks      *mockTaskStore
	metrics    *mockMetricsStore
	pipeline   *Pipeline
}

func newPipelineFixture(t *testing.T) *pipelineFixture {
	t.Helper()

	f := &pipelineFixture{
		discovery:  &mockDiscovery{},
		content:    &mockContent{},
		avatar:     &mockAvatar{},
		production: &mockProduction{},
		publisher:  &mockPublisher{},
		trends:     newMockTrendStore(),
		scripts:    newMockScriptStore(),
		tasks:      newMockTaskStore(),
		metrics:    newMockMetricsStore(),
	}

	f.pipeline = NewPipeline(PipelineDeps{
		Discovery:  f.discovery,
		Content:    f.content,
		Avatar:     f.avatar,
		Production: f.production,
		Publisher:  f.publisher,
		Trends:     f.trends,
		Scripts:    f.scripts,
		Tasks:      f.tasks,
		Metrics:    f.metrics,
	}, testLogger())
	f.pipeline.now = func() time.Time {
		return time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	}
	return f
}

func mustTrend(t *testing.T, topic string, score float64) *domain.Trend {
	t.Helper()
	trend, err := domain.NewTrend(topic, "technology", score, "google_trends")
	require.NoError(t, err)
	return trend
}

// addScript registers a persisted script record for the trend on one
// platform and makes the content mock return it.
func (f *pipelineFixture) addScript(t *testing.T, trend *domain.Trend, platform domain.Platform, nuance map[string]any) *domain.Script {
	t.Helper()

	script := &domain.Script{
		ID:           uuid.New(),
		TopicID:      trend.ID,
		Platform:     platform,
		Title:        "Why " + trend.Topic + " matters",
		Body:         "script body for " + trend.Topic,
		Hashtags:     []string{"#" + string(platform)},
		CallToAction: "subscribe",
		Metadata:     domain.ScriptMetadata{NuanceParams: nuance},
		CreatedAt:    time.Now().UTC(),
	}
	f.scripts.add(script)
	return script
}

func TestRunDailyPipelineEmptyDiscovery(t *testing.T) {
	f := newPipelineFixture(t)
	// Default discovery mock returns ErrNoTrends.

	err := f.pipeline.RunDailyPipeline(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, f.content.requests)
	assert.Empty(t, f.tasks.byStatus(domain.TaskStatusPending))
}

func TestRunDailyPipelineTopThreeSelection(t *testing.T) {
	f := newPipelineFixture(t)

	trends := []*domain.Trend{
		mustTrend(t, "t10", 10),
		mustTrend(t, "t90", 90),
		mustTrend(t, "t50", 50),
		mustTrend(t, "t70", 70),
		mustTrend(t, "t30", 30),
	}
	f.discovery.fn = func(ctx context.Context) ([]*domain.Trend, error) {
		return trends, nil
	}

	err := f.pipeline.RunDailyPipeline(context.Background())
	require.NoError(t, err)

	var topics []string
	for _, req := range f.content.requests {
		topics = append(topics, req.Topic)
	}
	assert.Equal(t, []string{"t90", "t70", "t50"}, topics)

	// All five discovered trends are recorded for audit.
	assert.Len(t, f.trends.inserted, 5)
}

func TestTopTrendsStableTieBreak(t *testing.T) {
	a := mustTrend(t, "first", 50)
	b := mustTrend(t, "second", 50)
	c := mustTrend(t, "third", 50)

	top := topTrends([]*domain.Trend{a, b, c}, 2)

	require.Len(t, top, 2)
	assert.Equal(t, "first", top[0].Topic)
	assert.Equal(t, "second", top[1].Topic)
}

func TestProcessContentPipelineSchedulesAllPlatforms(t *testing.T) {
	f := newPipelineFixture(t)
	trend := mustTrend(t, "ai avatars", 90)

	var generated []*domain.Script
	for _, platform := range domain.Platforms() {
		generated = append(generated, f.addScript(t, trend, platform, nil))
	}
	f.content.fn = func(ctx context.Context, req stage.ScriptRequest) ([]*domain.Script, error) {
		return generated, nil
	}
	f.discovery.fn = func(ctx context.Context) ([]*domain.Trend, error) {
		return []*domain.Trend{trend}, nil
	}

	err := f.pipeline.RunDailyPipeline(context.Background())
	require.NoError(t, err)

	// One synthesis, one edit, one schedule, one publishing task per
	// platform.
	assert.Len(t, f.avatar.requests, 4)
	assert.Len(t, f.production.requests, 4)
	assert.Len(t, f.publisher.scheduled, 4)

	pending := f.tasks.byStatus(domain.TaskStatusPending)
	require.Len(t, pending, 4)
	for _, task := range pending {
		assert.Equal(t, domain.TaskTypePublishing, task.TaskType)
		assert.Equal(t, domain.PriorityPublishing, task.Priority)
	}

	// Trend advanced to processed.
	assert.Equal(t, domain.TrendStatusProcessed, f.trends.statuses[trend.ID])
}

func TestProcessContentPipelineNuanceFlowsDownstream(t *testing.T) {
	f := newPipelineFixture(t)
	trend := mustTrend(t, "ai avatars", 90)

	nuance := map[string]any{
		"microExpressionIntensity": 0.95,
		"colorGradingMood":         "cool",
	}
	script := f.addScript(t, trend, domain.PlatformYouTube, nuance)
	f.content.fn = func(ctx context.Context, req stage.ScriptRequest) ([]*domain.Script, error) {
		return []*domain.Script{script}, nil
	}
	f.discovery.fn = func(ctx context.Context) ([]*domain.Trend, error) {
		return []*domain.Trend{trend}, nil
	}

	err := f.pipeline.RunDailyPipeline(context.Background())
	require.NoError(t, err)

	require.Len(t, f.avatar.requests, 1)
	videoReq := f.avatar.requests[0]
	assert.Equal(t, 0.95, videoReq.Nuance.MicroExpressionIntensity)
	assert.Equal(t, 0.6, videoReq.Nuance.VoiceInflectionVariability)
	assert.Equal(t, "anna_professional", videoReq.AvatarType)
	assert.Equal(t, "en-US-AriaNeural", videoReq.VoiceID)

	require.Len(t, f.production.requests, 1)
	editReq := f.production.requests[0]
	assert.Equal(t, "cool", editReq.Nuance.ColorGradingMood)
	assert.Equal(t, postProductionStyle, editReq.Style)
}

func TestProcessContentPipelineScheduledTime(t *testing.T) {
	f := newPipelineFixture(t)
	trend := mustTrend(t, "ai avatars", 90)
	script := f.addScript(t, trend, domain.PlatformYouTube, nil)

	f.content.fn = func(ctx context.Context, req stage.ScriptRequest) ([]*domain.Script, error) {
		return []*domain.Script{script}, nil
	}
	f.discovery.fn = func(ctx context.Context) ([]*domain.Trend, error) {
		return []*domain.Trend{trend}, nil
	}

	err := f.pipeline.RunDailyPipeline(context.Background())
	require.NoError(t, err)

	// Pipeline clock is fixed at 10:00; default slots are 9, 14, 20, so
	// the next one is 14:00 today.
	require.Len(t, f.publisher.scheduled, 1)
	want := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, want, f.publisher.scheduled[0].ScheduledTime)
}

func TestProcessContentPipelineMissingScriptRecord(t *testing.T) {
	f := newPipelineFixture(t)
	trend := mustTrend(t, "ai avatars", 90)

	// Content claims two platforms, but only one record was persisted.
	persisted := f.addScript(t, trend, domain.PlatformYouTube, nil)
	orphan := &domain.Script{
		ID:       uuid.New(),
		TopicID:  trend.ID,
		Platform: domain.PlatformTikTok,
		Body:     "never persisted",
	}
	f.content.fn = func(ctx context.Context, req stage.ScriptRequest) ([]*domain.Script, error) {
		return []*domain.Script{persisted, orphan}, nil
	}
	f.discovery.fn = func(ctx context.Context) ([]*domain.Trend, error) {
		return []*domain.Trend{trend}, nil
	}

	err := f.pipeline.RunDailyPipeline(context.Background())
	require.NoError(t, err)

	// Only the persisted script moved through the stages.
	assert.Len(t, f.avatar.requests, 1)
	assert.Equal(t, persisted.ID, f.avatar.requests[0].ScriptID)
}

func TestProcessContentPipelineNoScriptsSkipsTrend(t *testing.T) {
	f := newPipelineFixture(t)
	trend := mustTrend(t, "quiet topic", 90)

	f.discovery.fn = func(ctx context.Context) ([]*domain.Trend, error) {
		return []*domain.Trend{trend}, nil
	}
	// Default content mock returns ErrNoScripts.

	err := f.pipeline.RunDailyPipeline(context.Background())
	require.NoError(t, err)
	assert.Empty(t, f.avatar.requests)
	assert.Empty(t, f.tasks.byStatus(domain.TaskStatusPending))
}

func TestRunDailyPipelineTrendFailureIsolation(t *testing.T) {
	f := newPipelineFixture(t)
	bad := mustTrend(t, "bad", 95)
	good := mustTrend(t, "good", 90)

	goodScript := f.addScript(t, good, domain.PlatformYouTube, nil)
	f.discovery.fn = func(ctx context.Context) ([]*domain.Trend, error) {
		return []*domain.Trend{bad, good}, nil
	}
	f.content.fn = func(ctx context.Context, req stage.ScriptRequest) ([]*domain.Script, error) {
		if req.Topic == "bad" {
			return nil, errors.New("generation backend down")
		}
		return []*domain.Script{goodScript}, nil
	}

	err := f.pipeline.RunDailyPipeline(context.Background())
	require.NoError(t, err)

	// The failing trend did not stop the good one.
	assert.Len(t, f.publisher.scheduled, 1)
	assert.Equal(t, domain.TrendStatusProcessed, f.trends.statuses[good.ID])
	assert.Equal(t, domain.TrendStatusSelected, f.trends.statuses[bad.ID])
}

func TestRecordTrendsToleratesDuplicates(t *testing.T) {
	f := newPipelineFixture(t)
	trend := mustTrend(t, "ai avatars", 90)
	f.trends.insertErr = store.ErrDuplicate

	f.discovery.fn = func(ctx context.Context) ([]*domain.Trend, error) {
		return []*domain.Trend{trend}, nil
	}

	// Duplicate audit rows never fail the run.
	err := f.pipeline.RunDailyPipeline(context.Background())
	assert.NoError(t, err)
}
