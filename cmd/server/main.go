// Package main implements the entry point for the recall API server, a
// personal spaced-repetition study planner: it schedules review sessions for
// learning topics, adapts them to review outcomes, and serves dashboard
// analytics over the accumulated review history.
package main

import (
	"context"
	"log"

	"github.com/halverson/recall-api/internal/redact"
)

// main wires the application and runs the HTTP server until a shutdown
// signal arrives.
func main() {
	ctx := context.Background()

	app, err := newApplication(ctx)
	if err != nil {
		// Startup errors can embed the database URL; scrub before logging
		log.Fatalf("Failed to initialize application: %s", redact.Error(err))
	}

	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		app.logger.Error("Server exited with error", "error", err)
	}
}
