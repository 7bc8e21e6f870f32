package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/trendcast/trendcast-api/internal/domain"
	"github.com/trendcast/trendcast-api/internal/stage"
	"github.com/trendcast/trendcast-api/internal/store"
)

const (
	// defaultTopTrendCount is how many ranked trends one daily run turns
	// into content.
	defaultTopTrendCount = 3

	// postProductionStyle is the editing style requested for pipeline
	// videos.
	postProductionStyle = "viral"
)

// PipelineDeps bundles the collaborators and stores the pipeline needs.
type PipelineDeps struct {
	Discovery  stage.TrendDiscoverer
	Content    stage.ScriptGenerator
	Avatar     stage.VideoSynthesizer
	Production stage.PostProducer
	Publisher  stage.Publisher
	Trends     store.TrendStore
	Scripts    store.ScriptStore
	Tasks      store.TaskStore
	Metrics    store.MetricsStore
}

// Pipeline runs the fixed daily sequence: discover trends, rank them, and
// turn the top few into scheduled platform content. Every iteration
// boundary isolates failures, so one bad trend or script never starves
// the rest of the run.
type Pipeline struct {
	deps          PipelineDeps
	logger        *slog.Logger
	now           func() time.Time
	topTrendCount int
}

// NewPipeline creates a Pipeline over the given collaborators.
func NewPipeline(deps PipelineDeps, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		deps:          deps,
		logger:        logger.With("component", "pipeline"),
		now:           time.Now,
		topTrendCount: defaultTopTrendCount,
	}
}

// RunDailyPipeline executes one full discovery-to-scheduling run. Empty
// discovery ends the run without error; per-trend failures are logged and
// skipped.
func (p *Pipeline) RunDailyPipeline(ctx context.Context) error {
	p.logger.Info("starting daily content pipeline")

	trends, err := p.deps.Discovery.DiscoverTrends(ctx)
	if errors.Is(err, stage.ErrNoTrends) || (err == nil && len(trends) == 0) {
		p.logger.Info("no trends discovered, ending run")
		return nil
	}
	if err != nil {
		return fmt.Errorf("trend discovery failed: %w", err)
	}

	p.recordTrends(ctx, trends)

	top := topTrends(trends, p.topTrendCount)
	p.logger.Info("selected trends for content creation",
		"discovered", len(trends),
		"selected", len(top))

	for _, trend := range top {
		p.markTrend(ctx, trend, domain.TrendStatusSelected)

		if err := p.processContentPipeline(ctx, trend); err != nil {
			p.logger.Error("trend processing failed",
				"topic", trend.Topic,
				"trend_id", trend.ID,
				"error", err)
			continue
		}

		p.markTrend(ctx, trend, domain.TrendStatusProcessed)
		p.recordMetric(ctx, "trends_processed", trend.Topic)
	}

	p.logger.Info("daily pipeline completed")
	return nil
}

// processContentPipeline turns one trend into scheduled content across
// the platform set. Per-script failures are isolated.
func (p *Pipeline) processContentPipeline(ctx context.Context, trend *domain.Trend) error {
	log := p.logger.With("topic", trend.Topic, "trend_id", trend.ID)
	log.Info("processing content pipeline")

	scripts, err := p.deps.Content.GenerateScripts(ctx, stage.ScriptRequest{
		TopicID:  trend.ID,
		Topic:    trend.Topic,
		Category: trend.Category,
	})
	if errors.Is(err, stage.ErrNoScripts) {
		log.Warn("no scripts generated, skipping trend")
		return nil
	}
	if err != nil {
		return fmt.Errorf("script generation failed: %w", err)
	}
	if len(scripts) == 0 {
		log.Warn("no scripts generated, skipping trend")
		return nil
	}

	for _, script := range scripts {
		if err := p.processScript(ctx, trend, script.Platform); err != nil {
			log.Error("script processing failed",
				"platform", script.Platform,
				"error", err)
			continue
		}
	}

	return nil
}

// processScript runs synthesis, post-production, and scheduling for one
// platform's script.
func (p *Pipeline) processScript(ctx context.Context, trend *domain.Trend, platform domain.Platform) error {
	log := p.logger.With(
		"topic", trend.Topic,
		"platform", platform,
	)

	record, err := p.deps.Scripts.GetByTopicAndPlatform(ctx, trend.ID, platform)
	if errors.Is(err, store.ErrNotFound) {
		// Generated but never persisted; a consistency problem in the
		// content collaborator, not a pipeline failure.
		log.Warn("script record not found, skipping")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load script record: %w", err)
	}

	nuance := record.Metadata.NuanceParams

	log.Info("generating avatar video")
	video, err := p.deps.Avatar.SynthesizeVideo(ctx, stage.VideoRequest{
		ScriptID:       record.ID,
		Script:         record.Body,
		AvatarType:     stage.AvatarFor(platform),
		VoiceID:        stage.VoiceFor(platform),
		Platform:       platform,
		Nuance:         stage.VideoNuanceFrom(nuance),
		TargetAudience: record.TargetAudience,
	})
	if err != nil {
		return fmt.Errorf("video synthesis failed: %w", err)
	}

	log.Info("running post-production")
	cut, err := p.deps.Production.ProcessVideo(ctx, stage.EditRequest{
		VideoID:  record.ID,
		VideoURL: video.VideoURL,
		AudioURL: video.AudioURL,
		Script:   record.Body,
		Platform: platform,
		Style:    postProductionStyle,
		Nuance:   stage.EditNuanceFrom(nuance),
	})
	if err != nil {
		return fmt.Errorf("post-production failed: %w", err)
	}

	slots, err := p.deps.Publisher.OptimalPostingTimes(ctx, platform)
	if err != nil {
		return fmt.Errorf("failed to get posting times: %w", err)
	}
	scheduledTime := NextOptimalTime(slots, p.now())

	thumbnail := ""
	if len(cut.ThumbnailVariants) > 0 {
		thumbnail = cut.ThumbnailVariants[0]
	}

	err = p.deps.Publisher.ScheduleContent(ctx, stage.ScheduleRequest{
		VideoID:       record.ID,
		VideoURL:      cut.EditedVideoURL,
		Title:         record.Title,
		Description:   record.Body,
		Hashtags:      record.Hashtags,
		Platform:      platform,
		ScheduledTime: scheduledTime,
		ThumbnailURL:  thumbnail,
		SEOKeywords:   record.Metadata.SEOKeywords,
		CallToAction:  record.CallToAction,
	})
	if err != nil {
		return fmt.Errorf("scheduling failed: %w", err)
	}

	if err := p.enqueuePublishing(ctx, record, cut, scheduledTime, thumbnail); err != nil {
		return err
	}

	log.Info("content scheduled", "scheduled_time", scheduledTime)
	return nil
}

// enqueuePublishing inserts the publishing task the queue sweep will
// execute at its leisure.
func (p *Pipeline) enqueuePublishing(
	ctx context.Context,
	record *domain.Script,
	cut *stage.EditResult,
	scheduledTime time.Time,
	thumbnail string,
) error {
	payload := PublishingPayload{
		VideoID:       record.ID,
		VideoURL:      cut.EditedVideoURL,
		Title:         record.Title,
		Description:   record.Body,
		Hashtags:      record.Hashtags,
		Platform:      record.Platform,
		ScheduledTime: scheduledTime,
		ThumbnailURL:  thumbnail,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal publishing payload: %w", err)
	}

	task, err := domain.NewTask(domain.TaskTypePublishing, data, domain.PriorityPublishing)
	if err != nil {
		return fmt.Errorf("failed to build publishing task: %w", err)
	}

	if err := p.deps.Tasks.Insert(ctx, task); err != nil {
		return fmt.Errorf("failed to enqueue publishing task: %w", err)
	}

	return nil
}

// recordTrends persists the discovered crop for audit. Duplicates and
// other insert failures only warn; discovery output is advisory data.
func (p *Pipeline) recordTrends(ctx context.Context, trends []*domain.Trend) {
	for _, trend := range trends {
		if err := p.deps.Trends.Insert(ctx, trend); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				p.logger.Debug("trend already recorded", "trend_id", trend.ID)
				continue
			}
			p.logger.Warn("failed to record trend",
				"trend_id", trend.ID,
				"error", err)
		}
	}
}

func (p *Pipeline) markTrend(ctx context.Context, trend *domain.Trend, status domain.TrendStatus) {
	if err := p.deps.Trends.UpdateStatus(ctx, trend.ID, status); err != nil {
		p.logger.Warn("failed to update trend status",
			"trend_id", trend.ID,
			"status", status,
			"error", err)
	}
}

func (p *Pipeline) recordMetric(ctx context.Context, metricType, topic string) {
	metric := domain.NewAgentMetric(AgentName, metricType, 1)
	metric.Metadata = map[string]any{"topic": topic}

	if err := p.deps.Metrics.Record(ctx, metric); err != nil {
		p.logger.Warn("failed to record metric",
			"metric_type", metricType,
			"error", err)
	}
}

// topTrends returns the n highest-scoring trends. The sort is stable, so
// equal scores keep their discovery order.
func topTrends(trends []*domain.Trend, n int) []*domain.Trend {
	ranked := make([]*domain.Trend, len(trends))
	copy(ranked, trends)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TrendScore > ranked[j].TrendScore
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
