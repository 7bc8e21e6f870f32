package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/trendcast/trendcast-api/internal/api"
	apiMiddleware "github.com/trendcast/trendcast-api/internal/api/middleware"
)

// setupRouter creates the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))

	regenerationHandler := api.NewRegenerationHandler(app.regeneration, app.logger)
	taskHandler := api.NewTaskHandler(app.taskStore, app.logger)
	pipelineHandler := api.NewPipelineHandler(app.pipeline, app.status, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/pipeline/run", pipelineHandler.RunPipeline)
		r.Post("/topics/{id}/regenerate", regenerationHandler.Regenerate)
		r.Get("/tasks/{id}", taskHandler.GetTask)
		r.Get("/status", pipelineHandler.GetStatus)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
