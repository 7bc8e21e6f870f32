package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/trendcast/trendcast-api/internal/config"
	"github.com/trendcast/trendcast-api/internal/events"
	"github.com/trendcast/trendcast-api/internal/orchestrator"
	"github.com/trendcast/trendcast-api/internal/platform/postgres"
	"github.com/trendcast/trendcast-api/internal/stage"
	"github.com/trendcast/trendcast-api/internal/store"
)

// application holds the shared application dependencies so wiring and
// shutdown live in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	taskStore    store.TaskStore
	trendStore   store.TrendStore
	scriptStore  store.ScriptStore
	metricsStore store.MetricsStore

	// Stage agent clients
	discovery  stage.TrendDiscoverer
	content    stage.ScriptGenerator
	avatar     stage.VideoSynthesizer
	production stage.PostProducer
	publisher  stage.Publisher

	// Orchestration
	dispatcher     *orchestrator.Dispatcher
	queueProcessor *orchestrator.QueueProcessor
	pipeline       *orchestrator.Pipeline
	scheduler      *orchestrator.Scheduler
	regeneration   *orchestrator.RegenerationService
	status         *orchestrator.StatusService

	// Event system
	eventEmitter events.EventEmitter
}

// newApplication wires every component. It accepts the core dependencies
// that must exist before anything else (config, logger, database).
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Stores
	app.taskStore = postgres.NewPostgresTaskStore(db)
	app.trendStore = postgres.NewPostgresTrendStore(db)
	app.scriptStore = postgres.NewPostgresScriptStore(db)
	app.metricsStore = postgres.NewPostgresMetricsStore(db)

	// Stage agent clients
	if err := app.setupStageClients(); err != nil {
		return nil, err
	}

	// Event system: API emits task requests, the enqueue handler persists
	// them as queue tasks.
	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(orchestrator.NewTaskEnqueueHandler(
		db,
		app.taskStore,
		app.metricsStore,
		logger,
	))
	app.eventEmitter = emitter

	// Orchestration
	app.dispatcher = orchestrator.NewDispatcher(
		app.discovery,
		app.content,
		app.avatar,
		app.publisher,
		logger,
	)
	app.queueProcessor = orchestrator.NewQueueProcessor(
		app.taskStore,
		app.metricsStore,
		app.dispatcher,
		orchestrator.DefaultQueueProcessorConfig(),
		logger,
	)
	app.pipeline = orchestrator.NewPipeline(orchestrator.PipelineDeps{
		Discovery:  app.discovery,
		Content:    app.content,
		Avatar:     app.avatar,
		Production: app.production,
		Publisher:  app.publisher,
		Trends:     app.trendStore,
		Scripts:    app.scriptStore,
		Tasks:      app.taskStore,
		Metrics:    app.metricsStore,
	}, logger)
	app.regeneration = orchestrator.NewRegenerationService(app.eventEmitter, logger)
	app.status = orchestrator.NewStatusService(app.taskStore, app.metricsStore, logger)

	// Scheduler: the daily pipeline run plus the queue sweep.
	app.scheduler = orchestrator.NewScheduler(logger)
	app.scheduler.AddDaily(
		"daily_pipeline",
		orchestrator.DefaultDailyHour,
		orchestrator.DefaultDailyMinute,
		app.pipeline.RunDailyPipeline,
	)
	app.scheduler.AddInterval(
		"queue_sweep",
		orchestrator.DefaultQueuePollInterval,
		app.queueProcessor.ProcessQueueOnce,
	)

	logger.Info("application initialized")
	return app, nil
}

// setupStageClients builds the HTTP clients for the external stage agents.
func (app *application) setupStageClients() error {
	var err error

	app.discovery, err = stage.NewTrendAgentClient(app.config.Agents.DiscoveryURL, nil, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create discovery agent client: %w", err)
	}
	app.content, err = stage.NewScriptAgentClient(app.config.Agents.ContentURL, nil, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create content agent client: %w", err)
	}
	app.avatar, err = stage.NewAvatarAgentClient(app.config.Agents.AvatarURL, nil, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create avatar agent client: %w", err)
	}
	app.production, err = stage.NewEditAgentClient(app.config.Agents.ProductionURL, nil, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create post-production agent client: %w", err)
	}
	app.publisher, err = stage.NewPublishAgentClient(app.config.Agents.PublisherURL, nil, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create publisher agent client: %w", err)
	}

	return nil
}

// Run starts the scheduler and the HTTP server, then blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	app.scheduler.Start()

	router := app.setupRouter()
	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles shutdown of background work and the database connection.
func (app *application) cleanup() {
	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
