package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/halverson/recall-api/internal/api"
	apiMiddleware "github.com/halverson/recall-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	topicHandler := api.NewTopicHandler(app.topicService, app.logger)
	dashboardHandler := api.NewDashboardHandler(app.topicService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// Topic lifecycle
		r.Post("/topics", topicHandler.CreateTopic)
		r.Get("/topics", topicHandler.ListTopics)
		r.Get("/topics/{id}", topicHandler.GetTopic)
		r.Delete("/topics/{id}", topicHandler.DeleteTopic)
		r.Put("/topics/{id}/notes", topicHandler.UpdateNotes)

		// Review completion and advice
		r.Post("/topics/{id}/reviews/complete", topicHandler.CompleteReview)
		r.Get("/topics/{id}/advice", topicHandler.GetAdvice)

		// Dashboard projections
		r.Get("/dashboard/upcoming", dashboardHandler.Upcoming)
		r.Get("/dashboard/workload", dashboardHandler.Workload)
		r.Get("/dashboard/heatmap", dashboardHandler.Heatmap)

		// Display-only retention curve
		r.Get("/curve", dashboardHandler.Curve)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
