package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/halverson/recall-api/internal/domain"
	"github.com/halverson/recall-api/internal/platform/logger"
	"github.com/halverson/recall-api/internal/redact"
	"github.com/halverson/recall-api/internal/store"
)

// PostgresTopicStore implements the store.TopicStore interface using a
// PostgreSQL-backed key-value table: the whole topic collection lives as one
// JSONB value under a single key and is rewritten wholesale on every save.
type PostgresTopicStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTopicStore creates a new PostgreSQL implementation of the
// TopicStore interface. It accepts a database connection or transaction that
// should be initialized and managed by the caller. If logger is nil, a
// default logger will be used.
func NewPostgresTopicStore(db store.DBTX, logger *slog.Logger) *PostgresTopicStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTopicStore{
		db:     db,
		logger: logger.With(slog.String("component", "topic_store")),
	}
}

// Ensure PostgresTopicStore implements store.TopicStore interface
var _ store.TopicStore = (*PostgresTopicStore)(nil)

// Load implements store.TopicStore.Load
// It reads the collection entry and deserializes the topic array. A missing
// entry means no state has ever been written; an empty collection is returned.
func (s *PostgresTopicStore) Load(ctx context.Context) ([]*domain.Topic, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT value FROM kv_entries WHERE key = $1
	`

	var payload []byte
	err := s.db.QueryRowContext(ctx, query, store.CollectionKey).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		log.Info("no persisted collection found, starting empty")
		return []*domain.Topic{}, nil
	}
	if err != nil {
		log.Error("failed to read persisted collection",
			slog.String("error", redact.Error(err)))
		return nil, fmt.Errorf("%w: %v", store.ErrLoadFailed, err)
	}

	var topics []*domain.Topic
	if err := json.Unmarshal(payload, &topics); err != nil {
		log.Error("failed to deserialize persisted collection",
			slog.String("error", redact.Error(err)),
			slog.Int("payload_bytes", len(payload)))
		return nil, fmt.Errorf("%w: %v", store.ErrLoadFailed, err)
	}

	log.Info("collection loaded",
		slog.Int("topic_count", len(topics)))
	return topics, nil
}

// Save implements store.TopicStore.Save
// It serializes the snapshot and upserts it under the collection key in a
// single statement, so readers never observe a partially written collection.
func (s *PostgresTopicStore) Save(ctx context.Context, topics []*domain.Topic) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if topics == nil {
		topics = []*domain.Topic{}
	}

	payload, err := json.Marshal(topics)
	if err != nil {
		log.Error("failed to serialize collection",
			slog.String("error", redact.Error(err)))
		return fmt.Errorf("%w: %v", store.ErrSaveFailed, err)
	}

	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	_, err = s.db.ExecContext(ctx, query, store.CollectionKey, payload, time.Now().UTC())
	if err != nil {
		log.Error("failed to write collection",
			slog.String("error", redact.Error(err)),
			slog.Int("topic_count", len(topics)))
		return fmt.Errorf("%w: %v", store.ErrSaveFailed, err)
	}

	log.Debug("collection saved",
		slog.Int("topic_count", len(topics)),
		slog.Int("payload_bytes", len(payload)))
	return nil
}
