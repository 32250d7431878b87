package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/halverson/recall-api/internal/analysis"
	"github.com/halverson/recall-api/internal/config"
	"github.com/halverson/recall-api/internal/domain/schedule"
	"github.com/halverson/recall-api/internal/platform/gemini"
	"github.com/halverson/recall-api/internal/platform/logger"
	"github.com/halverson/recall-api/internal/platform/postgres"
	"github.com/halverson/recall-api/internal/service"
)

// application holds all initialized dependencies for the server.
type application struct {
	config       *config.Config
	logger       *slog.Logger
	db           *sql.DB
	topicService *service.TopicService
}

// newApplication loads configuration and wires every component: logger,
// database (with migrations), analyzer, scheduler, and the topic service
// seeded from the persisted collection.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	db, err := setupDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	if err := postgres.Migrate(db); err != nil {
		closeQuietly(db, log)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	analyzer := setupAnalyzer(ctx, cfg, log)

	topicStore := postgres.NewPostgresTopicStore(db, log)
	topicService := service.NewTopicService(topicStore, analyzer, schedule.NewDefaultService(), log)

	// A load failure here is fatal, unlike the tolerated write-through
	// failures later on: starting with a partial collection would silently
	// drop the learner's history on the next save.
	if err := topicService.Load(ctx); err != nil {
		closeQuietly(db, log)
		return nil, fmt.Errorf("failed to load topic collection: %w", err)
	}

	return &application{
		config:       cfg,
		logger:       log,
		db:           db,
		topicService: topicService,
	}, nil
}

// setupDatabase establishes a connection to the database and configures
// connection pools. Returns the database connection if successful, or an
// error if the connection fails.
func setupDatabase(cfg *config.Config, log *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	// Reasonable pool defaults for a single-user service
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		closeQuietly(db, log)
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connection established")
	return db, nil
}

// setupAnalyzer builds the Gemini-backed analyzer when an API key is
// configured. Without a key, or when client construction fails, the service
// runs on the deterministic analysis fallback alone — never a startup error.
func setupAnalyzer(ctx context.Context, cfg *config.Config, log *slog.Logger) analysis.Analyzer {
	if cfg.Analysis.GeminiAPIKey == "" {
		log.Warn("no Gemini API key configured, topic analysis will use the fallback")
		return nil
	}

	analyzer, err := gemini.NewTopicAnalyzer(ctx, log, cfg.Analysis)
	if err != nil {
		log.Warn("failed to initialize Gemini analyzer, topic analysis will use the fallback",
			"error", err)
		return nil
	}

	log.Info("Gemini analyzer initialized", "model", cfg.Analysis.ModelName)
	return analyzer
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	closeQuietly(app.db, app.logger)
}

func closeQuietly(db *sql.DB, log *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		log.Error("failed to close database connection", "error", err)
	}
}
